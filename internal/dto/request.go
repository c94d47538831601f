package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=150"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=participant organizer hod"`
}

type EventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,min=20"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
	Mode        string    `json:"mode" validate:"omitempty,oneof=in_person online hybrid"`
	StreamURL   string    `json:"stream_url" validate:"omitempty,url"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	// Decimal strings ("25.00") and JSON numbers are both accepted.
	FeeAmount decimal.Decimal `json:"fee_amount"`
	Budget    decimal.Decimal `json:"budget"`
}

type ApproveEventRequest struct {
	Location string `json:"location" validate:"max=255"`
}

type RejectEventRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type CheckInRequest struct {
	Token string `json:"token" validate:"required"`
}

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
