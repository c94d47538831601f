package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/campushub/campus-events/internal/apperr"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/monitoring"
	"github.com/campushub/campus-events/internal/notifier"
	"github.com/campushub/campus-events/internal/repository"
	"github.com/campushub/campus-events/internal/ticket"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegistrationService interface {
	Register(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error)
	ProcessPayment(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error)
	CheckIn(ctx context.Context, actor *models.User, eventID uint, token string) (*models.Registration, error)
	ListByEvent(ctx context.Context, actor *models.User, eventID uint) ([]models.Registration, error)
	ListMine(ctx context.Context, actor *models.User) ([]models.Registration, error)
}

type registrationService struct {
	regs      repository.RegistrationRepository
	events    repository.EventRepository
	publisher NotificationPublisher
}

func NewRegistrationService(
	regs repository.RegistrationRepository,
	events repository.EventRepository,
	publisher NotificationPublisher,
) RegistrationService {
	return &registrationService{regs: regs, events: events, publisher: publisher}
}

// Register creates a registration for a free event. Paid events must go
// through ProcessPayment instead.
func (s *registrationService) Register(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error) {
	return s.register(ctx, actor, eventID, false)
}

// ProcessPayment settles the entry fee and registers in one step. There is
// no external gateway; payment is taken on trust, as a processor callback
// would land here too.
func (s *registrationService) ProcessPayment(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error) {
	return s.register(ctx, actor, eventID, true)
}

// register creates a registration with a fresh ticket token. The event row
// is locked for the duration of the transaction so the duplicate check and
// the capacity count cannot race with concurrent registrations.
func (s *registrationService) register(ctx context.Context, actor *models.User, eventID uint, paying bool) (*models.Registration, error) {
	if actor.Role != models.RoleParticipant {
		monitoring.ObserveRegistration("denied")
		return nil, apperr.Permissionf("only participants may register for events")
	}

	var result *models.Registration
	var event *models.Event

	err := s.regs.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		// 1. Lock the event row; serializes concurrent registrations
		event, err = s.events.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("event %d not found", eventID)
			}
			return err
		}

		// 2. Only approved events accept registrations
		if event.Status != models.EventApproved {
			return apperr.Statef("event is %s and not open for registration", event.Status)
		}

		// 3. Paid events register via the payment endpoint, free ones do not
		if event.Paid() && !paying {
			return apperr.Statef("event requires payment of the %s entry fee", event.FeeAmount.StringFixed(2))
		}
		if !event.Paid() && paying {
			return apperr.Statef("event is free to attend, register directly")
		}

		// 4. Reject duplicates for the (event, attendee) pair
		_, err = s.regs.FindByEventAndAttendee(ctx, tx, eventID, actor.ID)
		if err == nil {
			return apperr.Conflictf("you are already registered for this event")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 5. Enforce capacity (0 = unlimited)
		if event.Capacity > 0 {
			count, err := s.regs.CountByEvent(ctx, tx, eventID)
			if err != nil {
				return err
			}
			if count >= int64(event.Capacity) {
				return apperr.Conflictf("event is at capacity")
			}
		}

		// 6. Issue the ticket and persist
		token, err := ticket.NewToken()
		if err != nil {
			return err
		}
		amount := decimal.Zero
		if paying {
			amount = event.FeeAmount
		}
		reg := &models.Registration{
			EventID:     eventID,
			AttendeeID:  actor.ID,
			TicketToken: token,
			AmountPaid:  amount,
		}
		if err := s.regs.Create(ctx, tx, reg); err != nil {
			return err
		}
		result = reg
		return nil
	})
	if err != nil {
		monitoring.ObserveRegistration(registrationOutcome(err))
		return nil, err
	}
	monitoring.ObserveRegistration("created")

	// Ticket delivery happens off the request path; the registration is
	// already committed either way.
	if s.publisher != nil {
		err := s.publisher.Publish(notifier.RouteTicketIssued, notifier.TicketIssued{
			RegistrationID: result.ID,
			AttendeeName:   actor.Name,
			AttendeeEmail:  actor.Email,
			EventTitle:     event.Title,
			EventMode:      event.Mode,
			Location:       event.Location,
			StreamURL:      event.StreamURL,
			StartAt:        event.StartAt,
			EndAt:          event.EndAt,
			Token:          result.TicketToken,
		})
		if err != nil {
			log.Printf("[RegistrationService] publish ticket.issued for registration %d: %v", result.ID, err)
		}
	}

	return result, nil
}

// CheckIn redeems a ticket token, at most once. The flag flip is a single
// conditional update, so two concurrent scans of the same token cannot both
// succeed.
func (s *registrationService) CheckIn(ctx context.Context, actor *models.User, eventID uint, token string) (*models.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}
	if event.OrganizerID != actor.ID {
		monitoring.ObserveCheckIn("denied")
		return nil, apperr.Permissionf("only the owning organizer may run check-in for this event")
	}

	reg, err := s.regs.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.ObserveCheckIn("not_found")
			return nil, apperr.NotFoundf("ticket not found")
		}
		return nil, err
	}
	if reg.EventID != eventID {
		monitoring.ObserveCheckIn("wrong_event")
		return nil, apperr.Statef("this ticket is for a different event")
	}

	now := time.Now()
	rows, err := s.regs.MarkCheckedIn(ctx, token, now)
	if err != nil {
		return nil, fmt.Errorf("mark checked in: %w", err)
	}
	if rows == 0 {
		monitoring.ObserveCheckIn("already_used")
		return nil, apperr.Conflictf("ticket has already been used")
	}
	monitoring.ObserveCheckIn("ok")

	reg.CheckedIn = true
	reg.CheckedInAt = &now
	return reg, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, actor *models.User, eventID uint) ([]models.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event %d not found", eventID)
		}
		return nil, err
	}
	if event.OrganizerID != actor.ID && actor.Role != models.RoleHOD {
		return nil, apperr.Permissionf("only the owning organizer may list registrations")
	}
	return s.regs.FindByEvent(ctx, eventID)
}

func (s *registrationService) ListMine(ctx context.Context, actor *models.User) ([]models.Registration, error) {
	return s.regs.FindByAttendee(ctx, actor.ID)
}

func registrationOutcome(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindConflict:
		return "conflict"
	case apperr.KindState:
		return "closed"
	case apperr.KindNotFound:
		return "not_found"
	default:
		return "error"
	}
}
