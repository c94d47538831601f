package models

import "time"

type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;uniqueIndex:idx_event_feedback" json:"event_id"`
	AttendeeID uint      `gorm:"not null;uniqueIndex:idx_event_feedback" json:"attendee_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	Event    *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	Attendee *User  `gorm:"foreignKey:AttendeeID;constraint:OnDelete:CASCADE" json:"attendee,omitempty"`
}
