package service

import (
	"context"
	"time"

	"github.com/campushub/campus-events/internal/models"
	"gorm.io/gorm"
)

// Func-field mocks shared by the service tests. Unset fields fall back to
// empty results or gorm.ErrRecordNotFound.

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn            func(ctx context.Context, event *models.Event) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Event, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	findApprovedFn      func(ctx context.Context, q string) ([]models.Event, error)
	findByOrganizerFn   func(ctx context.Context, organizerID uint) ([]models.Event, error)
	findPendingFn       func(ctx context.Context) ([]models.Event, error)
	countConflictsFn    func(ctx context.Context, location string, startAt, endAt time.Time, excludeID uint) (int64, error)
	findEndedFn         func(ctx context.Context, now time.Time) ([]models.Event, error)
	findFeedbackDueFn   func(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	saveFn              func(ctx context.Context, event *models.Event) error
	deleteFn            func(ctx context.Context, id uint) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	event.ID = 1
	return nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	if m.findByIDForUpdateFn != nil {
		return m.findByIDForUpdateFn(ctx, tx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *mockEventRepo) FindApproved(ctx context.Context, q string) ([]models.Event, error) {
	if m.findApprovedFn != nil {
		return m.findApprovedFn(ctx, q)
	}
	return nil, nil
}

func (m *mockEventRepo) FindByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	if m.findByOrganizerFn != nil {
		return m.findByOrganizerFn(ctx, organizerID)
	}
	return nil, nil
}

func (m *mockEventRepo) FindPending(ctx context.Context) ([]models.Event, error) {
	if m.findPendingFn != nil {
		return m.findPendingFn(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) CountLocationConflicts(ctx context.Context, location string, startAt, endAt time.Time, excludeID uint) (int64, error) {
	if m.countConflictsFn != nil {
		return m.countConflictsFn(ctx, location, startAt, endAt, excludeID)
	}
	return 0, nil
}

func (m *mockEventRepo) FindEndedApproved(ctx context.Context, now time.Time) ([]models.Event, error) {
	if m.findEndedFn != nil {
		return m.findEndedFn(ctx, now)
	}
	return nil, nil
}

func (m *mockEventRepo) FindFeedbackDue(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	if m.findFeedbackDueFn != nil {
		return m.findFeedbackDueFn(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockEventRepo) Save(ctx context.Context, event *models.Event) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock RegistrationRepository ---

type mockRegRepo struct {
	createFn              func(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	findByTokenFn         func(ctx context.Context, token string) (*models.Registration, error)
	findByPairFn          func(ctx context.Context, tx *gorm.DB, eventID, attendeeID uint) (*models.Registration, error)
	countByEventFn        func(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	findByEventFn         func(ctx context.Context, eventID uint) ([]models.Registration, error)
	findByAttendeeFn      func(ctx context.Context, attendeeID uint) ([]models.Registration, error)
	findFeedbackPendingFn func(ctx context.Context, eventID uint) ([]models.Registration, error)
	markCheckedInFn       func(ctx context.Context, token string, at time.Time) (int64, error)
	markFeedbackSentFn    func(ctx context.Context, regID uint, at time.Time) error
}

func (m *mockRegRepo) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, reg)
	}
	reg.ID = 1
	return nil
}

func (m *mockRegRepo) FindByToken(ctx context.Context, token string) (*models.Registration, error) {
	if m.findByTokenFn != nil {
		return m.findByTokenFn(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegRepo) FindByEventAndAttendee(ctx context.Context, tx *gorm.DB, eventID, attendeeID uint) (*models.Registration, error) {
	if m.findByPairFn != nil {
		return m.findByPairFn(ctx, tx, eventID, attendeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegRepo) CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	if m.countByEventFn != nil {
		return m.countByEventFn(ctx, tx, eventID)
	}
	return 0, nil
}

func (m *mockRegRepo) FindByEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	if m.findByEventFn != nil {
		return m.findByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockRegRepo) FindByAttendee(ctx context.Context, attendeeID uint) ([]models.Registration, error) {
	if m.findByAttendeeFn != nil {
		return m.findByAttendeeFn(ctx, attendeeID)
	}
	return nil, nil
}

func (m *mockRegRepo) FindFeedbackPending(ctx context.Context, eventID uint) ([]models.Registration, error) {
	if m.findFeedbackPendingFn != nil {
		return m.findFeedbackPendingFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockRegRepo) MarkCheckedIn(ctx context.Context, token string, at time.Time) (int64, error) {
	if m.markCheckedInFn != nil {
		return m.markCheckedInFn(ctx, token, at)
	}
	return 0, nil
}

func (m *mockRegRepo) MarkFeedbackRequested(ctx context.Context, regID uint, at time.Time) error {
	if m.markFeedbackSentFn != nil {
		return m.markFeedbackSentFn(ctx, regID, at)
	}
	return nil
}

func (m *mockRegRepo) GetDB() *gorm.DB { return nil }

// --- Mock FeedbackRepository ---

type mockFeedbackRepo struct {
	createFn          func(ctx context.Context, fb *models.Feedback) error
	existsFn          func(ctx context.Context, eventID, attendeeID uint) (bool, error)
	countAndAverageFn func(ctx context.Context, eventID uint) (int64, float64, error)
	ratingCountsFn    func(ctx context.Context, eventID uint) (map[int]int64, error)
	recentCommentsFn  func(ctx context.Context, eventID uint, limit int) ([]models.Feedback, error)
}

func (m *mockFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) error {
	if m.createFn != nil {
		return m.createFn(ctx, fb)
	}
	fb.ID = 1
	return nil
}

func (m *mockFeedbackRepo) Exists(ctx context.Context, eventID, attendeeID uint) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, eventID, attendeeID)
	}
	return false, nil
}

func (m *mockFeedbackRepo) CountAndAverage(ctx context.Context, eventID uint) (int64, float64, error) {
	if m.countAndAverageFn != nil {
		return m.countAndAverageFn(ctx, eventID)
	}
	return 0, 0, nil
}

func (m *mockFeedbackRepo) RatingCounts(ctx context.Context, eventID uint) (map[int]int64, error) {
	if m.ratingCountsFn != nil {
		return m.ratingCountsFn(ctx, eventID)
	}
	return map[int]int64{}, nil
}

func (m *mockFeedbackRepo) RecentComments(ctx context.Context, eventID uint, limit int) ([]models.Feedback, error) {
	if m.recentCommentsFn != nil {
		return m.recentCommentsFn(ctx, eventID, limit)
	}
	return nil, nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *models.User) error
	findByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

// --- Mock NotificationPublisher ---

type published struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	err      error
	messages []published
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, published{routingKey: routingKey, payload: payload})
	return nil
}

// --- Shared fixtures ---

func organizer() *models.User {
	return &models.User{ID: 10, Name: "Olan", Email: "olan@campus.edu", Role: models.RoleOrganizer}
}

func participant() *models.User {
	return &models.User{ID: 20, Name: "Pim", Email: "pim@campus.edu", Role: models.RoleParticipant}
}

func hod() *models.User {
	return &models.User{ID: 30, Name: "Dr. Head", Email: "hod@campus.edu", Role: models.RoleHOD}
}

func pendingEvent() *models.Event {
	return &models.Event{
		ID:          1,
		Title:       "Intro to Distributed Systems",
		Description: "A hands-on workshop covering the basics of distributed systems.",
		StartAt:     time.Now().Add(24 * time.Hour),
		EndAt:       time.Now().Add(27 * time.Hour),
		Mode:        models.ModeInPerson,
		Capacity:    50,
		OrganizerID: 10,
		Status:      models.EventPending,
	}
}

func approvedEvent() *models.Event {
	e := pendingEvent()
	e.Status = models.EventApproved
	e.Location = "Auditorium B"
	return e
}
