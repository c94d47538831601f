package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/campushub/campus-events/internal/apperr"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/notifier"
	"github.com/campushub/campus-events/internal/repository"
	"gorm.io/gorm"
)

// NotificationPublisher is satisfied by rabbitmq.Publisher. A nil publisher
// disables notifications (used in tests).
type NotificationPublisher interface {
	Publish(routingKey string, payload any) error
}

type EventService interface {
	CreateEvent(ctx context.Context, actor *models.User, event *models.Event) error
	GetEvent(ctx context.Context, actor *models.User, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, actor *models.User, titleQuery string) ([]models.Event, error)
	ListPending(ctx context.Context, actor *models.User) ([]models.Event, error)
	UpdateEvent(ctx context.Context, actor *models.User, id uint, updated *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, actor *models.User, id uint) error
	ApproveEvent(ctx context.Context, actor *models.User, id uint, location string) (*models.Event, error)
	RejectEvent(ctx context.Context, actor *models.User, id uint, reason string) (*models.Event, error)
	CompletePastEvents(ctx context.Context, now time.Time) (int, error)
	SendFeedbackRequests(ctx context.Context, now time.Time, grace time.Duration) (int, error)
}

type eventService struct {
	events    repository.EventRepository
	regs      repository.RegistrationRepository
	feedback  repository.FeedbackRepository
	users     repository.UserRepository
	publisher NotificationPublisher
}

func NewEventService(
	events repository.EventRepository,
	regs repository.RegistrationRepository,
	feedback repository.FeedbackRepository,
	users repository.UserRepository,
	publisher NotificationPublisher,
) EventService {
	return &eventService{
		events:    events,
		regs:      regs,
		feedback:  feedback,
		users:     users,
		publisher: publisher,
	}
}

const maxScheduleHorizon = 365 * 24 * time.Hour

func validateEvent(event *models.Event, isNew bool, now time.Time) error {
	if event.Title == "" {
		return apperr.Validationf("title is required")
	}
	if len(event.Description) < 20 {
		return apperr.Validationf("description must be at least 20 characters long")
	}
	if !event.EndAt.After(event.StartAt) {
		return apperr.Validationf("end time must be after the start time")
	}
	if isNew && event.StartAt.Before(now) {
		return apperr.Validationf("start time must be in the future")
	}
	if event.EndAt.After(now.Add(maxScheduleHorizon)) {
		return apperr.Validationf("end time cannot be more than one year from now")
	}
	if event.Mode.Streamed() && event.StreamURL == "" {
		return apperr.Validationf("a stream URL is required for online or hybrid events")
	}
	if event.Capacity < 0 {
		return apperr.Validationf("capacity must not be negative")
	}
	if event.FeeAmount.IsNegative() {
		return apperr.Validationf("entry fee must not be negative")
	}
	if event.Budget.IsNegative() {
		return apperr.Validationf("budget must not be negative")
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, actor *models.User, event *models.Event) error {
	if actor.Role != models.RoleOrganizer {
		return apperr.Permissionf("only organizers may create events")
	}
	if event.Mode == "" {
		event.Mode = models.ModeInPerson
	}
	if err := validateEvent(event, true, time.Now()); err != nil {
		return err
	}

	event.OrganizerID = actor.ID
	event.Status = models.EventPending
	event.Location = ""
	event.RejectionReason = ""

	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, actor *models.User, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", id)
		}
		return nil, err
	}

	// Unapproved events are invisible to everyone but the owner and the HOD.
	if event.Status != models.EventApproved && event.Status != models.EventCompleted {
		if actor == nil || (actor.ID != event.OrganizerID && actor.Role != models.RoleHOD) {
			return nil, apperr.NotFoundf("event %d not found", id)
		}
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, actor *models.User, titleQuery string) ([]models.Event, error) {
	if actor != nil && actor.Role == models.RoleOrganizer {
		return s.events.FindByOrganizer(ctx, actor.ID)
	}
	return s.events.FindApproved(ctx, titleQuery)
}

func (s *eventService) ListPending(ctx context.Context, actor *models.User) ([]models.Event, error) {
	if actor.Role != models.RoleHOD {
		return nil, apperr.Permissionf("only the HOD may review pending events")
	}
	return s.events.FindPending(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, actor *models.User, id uint, updated *models.Event) (*models.Event, error) {
	event, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !event.Editable() {
		return nil, apperr.Statef("event is %s and can no longer be edited", event.Status)
	}

	event.Title = updated.Title
	event.Description = updated.Description
	event.StartAt = updated.StartAt
	event.EndAt = updated.EndAt
	event.Mode = updated.Mode
	event.StreamURL = updated.StreamURL
	event.Capacity = updated.Capacity
	event.FeeAmount = updated.FeeAmount
	event.Budget = updated.Budget
	if event.Mode == "" {
		event.Mode = models.ModeInPerson
	}
	if err := validateEvent(event, false, time.Now()); err != nil {
		return nil, err
	}

	// Editing resubmits for approval and clears any prior rejection.
	event.Status = models.EventPending
	event.RejectionReason = ""
	event.Location = ""

	if err := s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor *models.User, id uint) error {
	event, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if !event.Editable() {
		return apperr.Statef("event is %s and can no longer be deleted", event.Status)
	}
	if err := s.events.Delete(ctx, event.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ApproveEvent(ctx context.Context, actor *models.User, id uint, location string) (*models.Event, error) {
	if actor.Role != models.RoleHOD {
		return nil, apperr.Permissionf("only the HOD may approve events")
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", id)
		}
		return nil, err
	}
	if event.Status != models.EventPending {
		return nil, apperr.Statef("event is %s, only pending events can be approved", event.Status)
	}
	if location == "" && event.Mode != models.ModeOnline {
		return nil, apperr.Validationf("a location must be assigned on approval")
	}
	if location != "" {
		conflicts, err := s.events.CountLocationConflicts(ctx, location, event.StartAt, event.EndAt, event.ID)
		if err != nil {
			return nil, fmt.Errorf("check location conflicts: %w", err)
		}
		if conflicts > 0 {
			return nil, apperr.Conflictf("location %q is already booked for an overlapping time slot", location)
		}
	}

	event.Status = models.EventApproved
	event.Location = location
	event.RejectionReason = ""
	if err := s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("approve event: %w", err)
	}

	s.notifyStatusChange(ctx, event)
	return event, nil
}

func (s *eventService) RejectEvent(ctx context.Context, actor *models.User, id uint, reason string) (*models.Event, error) {
	if actor.Role != models.RoleHOD {
		return nil, apperr.Permissionf("only the HOD may reject events")
	}
	if reason == "" {
		return nil, apperr.Validationf("a rejection reason is required")
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", id)
		}
		return nil, err
	}
	if event.Status != models.EventPending {
		return nil, apperr.Statef("event is %s, only pending events can be rejected", event.Status)
	}

	event.Status = models.EventRejected
	event.RejectionReason = reason
	if err := s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("reject event: %w", err)
	}

	s.notifyStatusChange(ctx, event)
	return event, nil
}

// CompletePastEvents transitions approved events whose end time has passed.
// Safe to re-run: already-completed events no longer match the query.
func (s *eventService) CompletePastEvents(ctx context.Context, now time.Time) (int, error) {
	events, err := s.events.FindEndedApproved(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find ended events: %w", err)
	}

	completed := 0
	for i := range events {
		events[i].Status = models.EventCompleted
		if err := s.events.Save(ctx, &events[i]); err != nil {
			return completed, fmt.Errorf("complete event %d: %w", events[i].ID, err)
		}
		completed++
	}
	return completed, nil
}

// SendFeedbackRequests enqueues one feedback request per eligible
// registration of completed events past the grace period. Each registration
// is stamped after publishing, so re-runs are no-ops.
func (s *eventService) SendFeedbackRequests(ctx context.Context, now time.Time, grace time.Duration) (int, error) {
	events, err := s.events.FindFeedbackDue(ctx, now.Add(-grace))
	if err != nil {
		return 0, fmt.Errorf("find feedback-due events: %w", err)
	}

	sent := 0
	for i := range events {
		event := &events[i]
		regs, err := s.regs.FindFeedbackPending(ctx, event.ID)
		if err != nil {
			return sent, fmt.Errorf("find pending registrations for event %d: %w", event.ID, err)
		}

		for _, reg := range regs {
			// Check-in is the attendance proof for in-person events; streamed
			// events accept any registrant.
			if !reg.CheckedIn && !event.Mode.Streamed() {
				continue
			}
			submitted, err := s.feedback.Exists(ctx, event.ID, reg.AttendeeID)
			if err != nil {
				return sent, err
			}
			if submitted {
				continue
			}
			if reg.Attendee == nil || reg.Attendee.Email == "" {
				continue
			}

			if s.publisher != nil {
				err := s.publisher.Publish(notifier.RouteFeedbackRequest, notifier.FeedbackRequest{
					EventID:       event.ID,
					EventTitle:    event.Title,
					AttendeeName:  reg.Attendee.Name,
					AttendeeEmail: reg.Attendee.Email,
				})
				if err != nil {
					log.Printf("[EventService] publish feedback request for registration %d: %v", reg.ID, err)
					continue
				}
			}
			if err := s.regs.MarkFeedbackRequested(ctx, reg.ID, now); err != nil {
				return sent, fmt.Errorf("mark feedback requested for registration %d: %w", reg.ID, err)
			}
			sent++
		}
	}
	return sent, nil
}

func (s *eventService) findOwned(ctx context.Context, actor *models.User, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", id)
		}
		return nil, err
	}
	if event.OrganizerID != actor.ID {
		return nil, apperr.Permissionf("only the owning organizer may modify this event")
	}
	return event, nil
}

func (s *eventService) notifyStatusChange(ctx context.Context, event *models.Event) {
	if s.publisher == nil {
		return
	}

	organizer := event.Organizer
	if organizer == nil {
		var err error
		organizer, err = s.users.FindByID(ctx, event.OrganizerID)
		if err != nil {
			log.Printf("[EventService] load organizer %d: %v", event.OrganizerID, err)
			return
		}
	}

	route := notifier.RouteEventApproved
	if event.Status == models.EventRejected {
		route = notifier.RouteEventRejected
	}
	err := s.publisher.Publish(route, notifier.EventStatusChanged{
		EventID:        event.ID,
		EventTitle:     event.Title,
		OrganizerName:  organizer.Name,
		OrganizerEmail: organizer.Email,
		Status:         event.Status,
		Location:       event.Location,
		Reason:         event.RejectionReason,
	})
	if err != nil {
		// Notification failures never roll back the status change.
		log.Printf("[EventService] publish %s for event %d: %v", route, event.ID, err)
	}
}
