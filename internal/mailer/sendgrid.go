package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendgrid(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	sgMsg := mail.NewSingleEmail(m.from, msg.Subject, to, msg.Body, "")

	for _, at := range msg.Attachments {
		a := mail.NewAttachment()
		a.SetFilename(at.Filename)
		a.SetType(at.ContentType)
		a.SetContent(base64.StdEncoding.EncodeToString(at.Content))
		a.SetDisposition("attachment")
		sgMsg.AddAttachment(a)
	}

	resp, err := m.client.SendWithContext(ctx, sgMsg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
