// Package mail is the outbound mail transport used by the contact form.
package mail

import "context"

type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a plain-text message from the configured sender identity.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
