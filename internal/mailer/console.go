package mailer

import (
	"context"
	"log"
)

// ConsoleMailer logs messages instead of sending them. Default backend for
// development and tests.
type ConsoleMailer struct{}

func NewConsole() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[Mail] to=%s <%s> subject=%q attachments=%d", msg.ToName, msg.ToEmail, msg.Subject, len(msg.Attachments))
	log.Printf("[Mail] body:\n%s", msg.Body)
	return nil
}
