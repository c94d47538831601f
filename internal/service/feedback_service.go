package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/campushub/campus-events/internal/apperr"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/repository"
	"gorm.io/gorm"
)

const recentCommentLimit = 10

// Analytics holds on-demand aggregates for one event.
type Analytics struct {
	EventID        uint
	Responses      int64
	AverageRating  float64
	RatingCounts   map[int]int64
	RecentComments []models.Feedback
}

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, actor *models.User, eventID uint, rating int, comment string) (*models.Feedback, error)
	EventAnalytics(ctx context.Context, actor *models.User, eventID uint) (*Analytics, error)
}

type feedbackService struct {
	feedback repository.FeedbackRepository
	events   repository.EventRepository
	regs     repository.RegistrationRepository
}

func NewFeedbackService(
	feedback repository.FeedbackRepository,
	events repository.EventRepository,
	regs repository.RegistrationRepository,
) FeedbackService {
	return &feedbackService{feedback: feedback, events: events, regs: regs}
}

func (s *feedbackService) SubmitFeedback(ctx context.Context, actor *models.User, eventID uint, rating int, comment string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validationf("rating must be between 1 and 5")
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}
	if event.Status != models.EventCompleted {
		return nil, apperr.Statef("feedback opens once the event is completed")
	}

	reg, err := s.regs.FindByEventAndAttendee(ctx, s.regs.GetDB(), eventID, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Permissionf("only registered attendees may leave feedback")
		}
		return nil, err
	}
	// Attendance proof: checked in, unless the event was streamed.
	if !reg.CheckedIn && !event.Mode.Streamed() {
		return nil, apperr.Permissionf("feedback requires check-in at the event")
	}

	exists, err := s.feedback.Exists(ctx, eventID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflictf("feedback has already been submitted for this event")
	}

	fb := &models.Feedback{
		EventID:    eventID,
		AttendeeID: actor.ID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

func (s *feedbackService) EventAnalytics(ctx context.Context, actor *models.User, eventID uint) (*Analytics, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}
	if event.OrganizerID != actor.ID && actor.Role != models.RoleHOD {
		return nil, apperr.Permissionf("only the owning organizer may view analytics")
	}

	count, avg, err := s.feedback.CountAndAverage(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ratingCounts, err := s.feedback.RatingCounts(ctx, eventID)
	if err != nil {
		return nil, err
	}
	comments, err := s.feedback.RecentComments(ctx, eventID, recentCommentLimit)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		EventID:        eventID,
		Responses:      count,
		AverageRating:  math.Round(avg*100) / 100,
		RatingCounts:   ratingCounts,
		RecentComments: comments,
	}, nil
}
