package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio-api/internal/entity"
	"portfolio-api/internal/mail"
)

type mockMailer struct {
	sent []mail.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func validContact() ContactInput {
	return ContactInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Message:   "Hello there",
	}
}

func TestContact_SendComposesMessage(t *testing.T) {
	m := &mockMailer{}
	uc := NewContact(m, "owner@example.com")

	if err := uc.Send(context.Background(), validContact()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(m.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(m.sent))
	}

	msg := m.sent[0]
	if msg.To != "owner@example.com" {
		t.Fatalf("unexpected recipient: %q", msg.To)
	}
	if msg.Subject != "Portfolio Contact from Jane Doe" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{"Jane Doe", "jane@example.com", "Hello there"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestContact_MissingFields(t *testing.T) {
	uc := NewContact(&mockMailer{}, "owner@example.com")

	for _, tc := range []struct {
		field  string
		mutate func(*ContactInput)
	}{
		{"first_name", func(in *ContactInput) { in.FirstName = "" }},
		{"last_name", func(in *ContactInput) { in.LastName = " " }},
		{"email", func(in *ContactInput) { in.Email = "" }},
		{"message", func(in *ContactInput) { in.Message = "" }},
	} {
		in := validContact()
		tc.mutate(&in)

		var ve *entity.ValidationError
		if err := uc.Send(context.Background(), in); !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.field, err)
		} else if ve.Field != tc.field {
			t.Fatalf("expected %s violation, got %q", tc.field, ve.Field)
		}
	}
}

func TestContact_DeliveryFailureIsGeneric(t *testing.T) {
	uc := NewContact(&mockMailer{err: errors.New("smtp: auth failed for owner")}, "owner@example.com")

	err := uc.Send(context.Background(), validContact())
	if !errors.Is(err, ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
	// The transport cause must not reach the caller.
	if strings.Contains(err.Error(), "auth failed") {
		t.Fatalf("transport detail leaked: %v", err)
	}
}
