package dto

import (
	"time"

	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/service"
	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type EventResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	StartAt         time.Time          `json:"start_at"`
	EndAt           time.Time          `json:"end_at"`
	Mode            models.EventMode   `json:"mode"`
	Location        string             `json:"location,omitempty"`
	StreamURL       string             `json:"stream_url,omitempty"`
	Capacity        int                `json:"capacity"`
	FeeAmount       decimal.Decimal    `json:"fee_amount"`
	Budget          decimal.Decimal    `json:"budget"`
	OrganizerID     uint               `json:"organizer_id"`
	Status          models.EventStatus `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		StartAt:         e.StartAt,
		EndAt:           e.EndAt,
		Mode:            e.Mode,
		Location:        e.Location,
		StreamURL:       e.StreamURL,
		Capacity:        e.Capacity,
		FeeAmount:       e.FeeAmount,
		Budget:          e.Budget,
		OrganizerID:     e.OrganizerID,
		Status:          e.Status,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
}

type RegistrationResponse struct {
	ID          uint            `json:"id"`
	EventID     uint            `json:"event_id"`
	AttendeeID  uint            `json:"attendee_id"`
	TicketToken string          `json:"ticket_token"`
	CheckedIn   bool            `json:"checked_in"`
	CheckedInAt *time.Time      `json:"checked_in_at,omitempty"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	CreatedAt   time.Time       `json:"created_at"`

	EventTitle   string `json:"event_title,omitempty"`
	AttendeeName string `json:"attendee_name,omitempty"`
}

func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:          r.ID,
		EventID:     r.EventID,
		AttendeeID:  r.AttendeeID,
		TicketToken: r.TicketToken,
		CheckedIn:   r.CheckedIn,
		CheckedInAt: r.CheckedInAt,
		AmountPaid:  r.AmountPaid,
		CreatedAt:   r.CreatedAt,
	}
	if r.Event != nil {
		resp.EventTitle = r.Event.Title
	}
	if r.Attendee != nil {
		resp.AttendeeName = r.Attendee.Name
	}
	return resp
}

// CheckInResponse is what the scanner displays after redeeming a ticket.
type CheckInResponse struct {
	RegistrationID uint       `json:"registration_id"`
	AttendeeName   string     `json:"attendee_name"`
	EventTitle     string     `json:"event_title"`
	CheckedInAt    *time.Time `json:"checked_in_at"`
}

func ToCheckInResponse(r *models.Registration) CheckInResponse {
	resp := CheckInResponse{
		RegistrationID: r.ID,
		CheckedInAt:    r.CheckedInAt,
	}
	if r.Attendee != nil {
		resp.AttendeeName = r.Attendee.Name
	}
	if r.Event != nil {
		resp.EventTitle = r.Event.Title
	}
	return resp
}

type FeedbackResponse struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	AttendeeName string    `json:"attendee_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToFeedbackResponse(f *models.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:        f.ID,
		EventID:   f.EventID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
	if f.Attendee != nil {
		resp.AttendeeName = f.Attendee.Name
	}
	return resp
}

type AnalyticsResponse struct {
	EventID        uint               `json:"event_id"`
	Responses      int64              `json:"responses"`
	AverageRating  float64            `json:"average_rating"`
	RatingCounts   map[int]int64      `json:"rating_counts"`
	RecentComments []FeedbackResponse `json:"recent_comments"`
}

func ToAnalyticsResponse(a *service.Analytics) AnalyticsResponse {
	comments := make([]FeedbackResponse, len(a.RecentComments))
	for i := range a.RecentComments {
		comments[i] = ToFeedbackResponse(&a.RecentComments[i])
	}
	return AnalyticsResponse{
		EventID:        a.EventID,
		Responses:      a.Responses,
		AverageRating:  a.AverageRating,
		RatingCounts:   a.RatingCounts,
		RecentComments: comments,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
