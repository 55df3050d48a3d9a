package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"portfolio-api/internal/entity"
	"portfolio-api/internal/mail"
)

// ErrMailDelivery hides the transport failure from the caller; the cause is
// only logged.
var ErrMailDelivery = fmt.Errorf("%w: failed to send email", ErrInternal)

type ContactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Contact composes and sends the contact-form message. Nothing is persisted.
type Contact struct {
	mailer mail.Mailer
	// recipient is the configured sender identity; the form mails to itself.
	recipient string
}

func NewContact(mailer mail.Mailer, recipient string) *Contact {
	return &Contact{mailer: mailer, recipient: recipient}
}

func (u *Contact) Send(ctx context.Context, in ContactInput) error {
	if err := validateContact(in); err != nil {
		return err
	}

	msg := mail.Message{
		To:      u.recipient,
		Subject: fmt.Sprintf("Portfolio Contact from %s %s", in.FirstName, in.LastName),
		Body: fmt.Sprintf(
			"New contact form submission:\n\nName: %s %s\nEmail: %s\n\nMessage:\n%s\n",
			in.FirstName, in.LastName, in.Email, in.Message,
		),
	}

	if err := u.mailer.Send(ctx, msg); err != nil {
		log.Printf("contact mail delivery failed: %v", err)
		return ErrMailDelivery
	}
	return nil
}

func validateContact(in ContactInput) error {
	required := []struct{ name, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
		{"message", in.Message},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &entity.ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	return nil
}
