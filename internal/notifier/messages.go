// Package notifier carries state changes out of the request path: core
// services publish notification messages to RabbitMQ and the consumer in
// this package turns them into emails, best-effort.
package notifier

import (
	"time"

	"github.com/campushub/campus-events/internal/models"
)

// Routing keys on the notifications exchange.
const (
	RouteTicketIssued    = "ticket.issued"
	RouteEventApproved   = "event.approved"
	RouteEventRejected   = "event.rejected"
	RouteFeedbackRequest = "feedback.request"
)

// TicketIssued carries everything needed to render and mail a ticket, so
// the consumer never has to reach back into the database.
type TicketIssued struct {
	RegistrationID uint             `json:"registration_id"`
	AttendeeName   string           `json:"attendee_name"`
	AttendeeEmail  string           `json:"attendee_email"`
	EventTitle     string           `json:"event_title"`
	EventMode      models.EventMode `json:"event_mode"`
	Location       string           `json:"location,omitempty"`
	StreamURL      string           `json:"stream_url,omitempty"`
	StartAt        time.Time        `json:"start_at"`
	EndAt          time.Time        `json:"end_at"`
	Token          string           `json:"token"`
}

// EventStatusChanged notifies the organizer of an approval or rejection.
type EventStatusChanged struct {
	EventID        uint               `json:"event_id"`
	EventTitle     string             `json:"event_title"`
	OrganizerName  string             `json:"organizer_name"`
	OrganizerEmail string             `json:"organizer_email"`
	Status         models.EventStatus `json:"status"`
	Location       string             `json:"location,omitempty"`
	Reason         string             `json:"reason,omitempty"`
}

// FeedbackRequest asks an attendee to rate a completed event.
type FeedbackRequest struct {
	EventID       uint   `json:"event_id"`
	EventTitle    string `json:"event_title"`
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
}
