// Package mailer abstracts outbound email behind a small Send interface so
// the notification consumer does not care which provider delivers it.
package mailer

import "context"

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Message struct {
	ToName      string
	ToEmail     string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
