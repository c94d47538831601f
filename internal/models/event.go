package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventRejected  EventStatus = "rejected"
	EventCompleted EventStatus = "completed"
)

type EventMode string

const (
	ModeInPerson EventMode = "in_person"
	ModeOnline   EventMode = "online"
	ModeHybrid   EventMode = "hybrid"
)

// Streamed reports whether the event has an online component, which
// requires a stream URL and relaxes the check-in requirement for feedback.
func (m EventMode) Streamed() bool {
	return m == ModeOnline || m == ModeHybrid
}

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	StartAt     time.Time `gorm:"not null" json:"start_at"`
	EndAt       time.Time `gorm:"not null;index" json:"end_at"`
	Mode        EventMode `gorm:"type:varchar(20);not null;default:'in_person'" json:"mode"`
	Location    string    `json:"location,omitempty"` // assigned by HOD on approval
	StreamURL   string    `json:"stream_url,omitempty"`
	Capacity    int       `gorm:"not null;default:0" json:"capacity"` // 0 = unlimited
	// FeeAmount zero means free entry; paid events route registration
	// through the payment endpoint.
	FeeAmount   decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"fee_amount"`
	Budget      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"budget"`
	OrganizerID uint            `gorm:"not null;index" json:"organizer_id"`
	Status      EventStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// RejectionReason is set by the HOD when rejecting and cleared when the
	// organizer edits and resubmits.
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Organizer *User `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
}

// Paid reports whether registration requires payment of the entry fee.
func (e *Event) Paid() bool {
	return e.FeeAmount.IsPositive()
}

// Editable reports whether the owning organizer may still edit or delete
// the event. Approved and completed events are locked.
func (e *Event) Editable() bool {
	return e.Status == EventPending || e.Status == EventRejected
}
