package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/campushub/campus-events/internal/mailer"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/monitoring"
	"github.com/campushub/campus-events/internal/ticket"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	mailer  mailer.Mailer
	baseURL string
}

func NewConsumer(m mailer.Mailer, baseURL string) *Consumer {
	return &Consumer{mailer: m, baseURL: baseURL}
}

// Start processes notification messages until the channel closes.
func (n *Consumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			n.handleMessage(msg)
		}
		log.Println("[Notifier] channel closed, stopping consumer")
	}()
}

func (n *Consumer) handleMessage(msg amqp.Delivery) {
	var err error
	switch msg.RoutingKey {
	case RouteTicketIssued:
		err = n.handleTicketIssued(msg.Body)
	case RouteEventApproved, RouteEventRejected:
		err = n.handleEventStatus(msg.Body)
	case RouteFeedbackRequest:
		err = n.handleFeedbackRequest(msg.Body)
	default:
		log.Printf("[Notifier] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Ack(false)
		return
	}

	// Delivery is best-effort: failures are logged and the message is acked
	// so a broken mailbox can never replay or block state changes.
	if err != nil {
		log.Printf("[Notifier] %s: %v", msg.RoutingKey, err)
		monitoring.ObserveNotification(msg.RoutingKey, "error")
	} else {
		monitoring.ObserveNotification(msg.RoutingKey, "sent")
	}
	msg.Ack(false)
}

func (n *Consumer) handleTicketIssued(body []byte) error {
	var payload TicketIssued
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("unmarshal ticket.issued: %w", err)
	}

	where := payload.Location
	if where == "" && payload.StreamURL != "" {
		where = payload.StreamURL
	}

	msg := mailer.Message{
		ToName:  payload.AttendeeName,
		ToEmail: payload.AttendeeEmail,
		Subject: fmt.Sprintf("Your Ticket for %s", payload.EventTitle),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYou are registered for %q.\n\nWhen: %s - %s\nWhere: %s\nTicket: %s\n\nSee you there!\n",
			payload.AttendeeName,
			payload.EventTitle,
			payload.StartAt.Format("Mon, 02 Jan 2006 15:04"),
			payload.EndAt.Format("15:04"),
			where,
			payload.Token,
		),
	}

	// Online-only events have no entrance to scan at, so skip the PDF.
	if payload.EventMode != models.ModeOnline {
		pdf, err := ticket.PDF(ticket.Details{
			EventTitle:   payload.EventTitle,
			Location:     payload.Location,
			StartAt:      payload.StartAt,
			EndAt:        payload.EndAt,
			AttendeeName: payload.AttendeeName,
			Token:        payload.Token,
		})
		if err != nil {
			return err
		}
		msg.Attachments = append(msg.Attachments, mailer.Attachment{
			Filename:    fmt.Sprintf("Ticket-%s.pdf", payload.EventTitle),
			ContentType: "application/pdf",
			Content:     pdf,
		})
	}

	return n.mailer.Send(context.Background(), msg)
}

func (n *Consumer) handleEventStatus(body []byte) error {
	var payload EventStatusChanged
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("unmarshal event status: %w", err)
	}

	var subject, detail string
	switch payload.Status {
	case models.EventApproved:
		subject = fmt.Sprintf("Your Event %q has been Approved", payload.EventTitle)
		detail = fmt.Sprintf("Assigned location: %s", payload.Location)
	case models.EventRejected:
		subject = fmt.Sprintf("Update on your Event: %q", payload.EventTitle)
		detail = fmt.Sprintf("Reason: %s", payload.Reason)
	default:
		return fmt.Errorf("unexpected status %q", payload.Status)
	}

	return n.mailer.Send(context.Background(), mailer.Message{
		ToName:  payload.OrganizerName,
		ToEmail: payload.OrganizerEmail,
		Subject: subject,
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour event %q is now %s.\n%s\n",
			payload.OrganizerName, payload.EventTitle, payload.Status, detail,
		),
	})
}

func (n *Consumer) handleFeedbackRequest(body []byte) error {
	var payload FeedbackRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("unmarshal feedback.request: %w", err)
	}

	return n.mailer.Send(context.Background(), mailer.Message{
		ToName:  payload.AttendeeName,
		ToEmail: payload.AttendeeEmail,
		Subject: fmt.Sprintf("How was %s? We'd love your feedback!", payload.EventTitle),
		Body: fmt.Sprintf(
			"Hi %s,\n\nThanks for attending %q. Tell us how it went:\n%s/api/v1/events/%d/feedback\n",
			payload.AttendeeName, payload.EventTitle, n.baseURL, payload.EventID,
		),
	})
}
