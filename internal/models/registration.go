package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registration links a participant to an approved event. The pair is
// unique, and the ticket token is unique system-wide. CheckedIn only ever
// flips false -> true.
type Registration struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     uint       `gorm:"not null;uniqueIndex:idx_event_attendee" json:"event_id"`
	AttendeeID  uint       `gorm:"not null;uniqueIndex:idx_event_attendee" json:"attendee_id"`
	TicketToken string     `gorm:"uniqueIndex;not null" json:"ticket_token"`
	CheckedIn   bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	// AmountPaid is the entry fee settled at registration; zero for free
	// events.
	AmountPaid decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"amount_paid"`
	// FeedbackRequestSentAt keeps the sweeper from mailing the same
	// attendee twice.
	FeedbackRequestSentAt *time.Time `json:"feedback_request_sent_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	Event    *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	Attendee *User  `gorm:"foreignKey:AttendeeID;constraint:OnDelete:CASCADE" json:"attendee,omitempty"`
}
