package mail

import (
	"context"
	"strconv"

	"portfolio-api/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer sends over SMTP with STARTTLS and plain auth, authenticating
// as the configured sender address.
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	port := 587
	if p, err := strconv.Atoi(cfg.Port); err == nil && p > 0 {
		port = p
	}
	host := cfg.Host
	if host == "" {
		host = "smtp.gmail.com"
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		sender:   cfg.Sender,
		password: cfg.Password,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(m.sender); err != nil {
		return err
	}
	if err := mm.To(msg.To); err != nil {
		return err
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextPlain, msg.Body)

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.sender),
		gomail.WithPassword(m.password),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, mm)
}
