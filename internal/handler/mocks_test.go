package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mw "github.com/campushub/campus-events/internal/middleware"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// Func-field service mocks for the handler tests. Unset fields return a
// zero value, so each test only wires the call it exercises.

type mockEventService struct {
	createFn      func(ctx context.Context, actor *models.User, event *models.Event) error
	getFn         func(ctx context.Context, actor *models.User, id uint) (*models.Event, error)
	listFn        func(ctx context.Context, actor *models.User, q string) ([]models.Event, error)
	listPendingFn func(ctx context.Context, actor *models.User) ([]models.Event, error)
	updateFn      func(ctx context.Context, actor *models.User, id uint, updated *models.Event) (*models.Event, error)
	deleteFn      func(ctx context.Context, actor *models.User, id uint) error
	approveFn     func(ctx context.Context, actor *models.User, id uint, location string) (*models.Event, error)
	rejectFn      func(ctx context.Context, actor *models.User, id uint, reason string) (*models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, actor *models.User, event *models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, actor, event)
	}
	event.ID = 1
	return nil
}

func (m *mockEventService) GetEvent(ctx context.Context, actor *models.User, id uint) (*models.Event, error) {
	if m.getFn != nil {
		return m.getFn(ctx, actor, id)
	}
	return &models.Event{ID: id}, nil
}

func (m *mockEventService) ListEvents(ctx context.Context, actor *models.User, q string) ([]models.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx, actor, q)
	}
	return nil, nil
}

func (m *mockEventService) ListPending(ctx context.Context, actor *models.User) ([]models.Event, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx, actor)
	}
	return nil, nil
}

func (m *mockEventService) UpdateEvent(ctx context.Context, actor *models.User, id uint, updated *models.Event) (*models.Event, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actor, id, updated)
	}
	updated.ID = id
	return updated, nil
}

func (m *mockEventService) DeleteEvent(ctx context.Context, actor *models.User, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, id)
	}
	return nil
}

func (m *mockEventService) ApproveEvent(ctx context.Context, actor *models.User, id uint, location string) (*models.Event, error) {
	if m.approveFn != nil {
		return m.approveFn(ctx, actor, id, location)
	}
	return &models.Event{ID: id, Status: models.EventApproved, Location: location}, nil
}

func (m *mockEventService) RejectEvent(ctx context.Context, actor *models.User, id uint, reason string) (*models.Event, error) {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, actor, id, reason)
	}
	return &models.Event{ID: id, Status: models.EventRejected, RejectionReason: reason}, nil
}

func (m *mockEventService) CompletePastEvents(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func (m *mockEventService) SendFeedbackRequests(ctx context.Context, now time.Time, grace time.Duration) (int, error) {
	return 0, nil
}

type mockRegService struct {
	registerFn    func(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error)
	payFn         func(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error)
	checkInFn     func(ctx context.Context, actor *models.User, eventID uint, token string) (*models.Registration, error)
	listByEventFn func(ctx context.Context, actor *models.User, eventID uint) ([]models.Registration, error)
	listMineFn    func(ctx context.Context, actor *models.User) ([]models.Registration, error)
}

func (m *mockRegService) Register(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, actor, eventID)
	}
	return &models.Registration{ID: 1, EventID: eventID, AttendeeID: actor.ID, TicketToken: "TKT-TEST"}, nil
}

func (m *mockRegService) ProcessPayment(ctx context.Context, actor *models.User, eventID uint) (*models.Registration, error) {
	if m.payFn != nil {
		return m.payFn(ctx, actor, eventID)
	}
	return &models.Registration{ID: 1, EventID: eventID, AttendeeID: actor.ID, TicketToken: "TKT-TEST"}, nil
}

func (m *mockRegService) CheckIn(ctx context.Context, actor *models.User, eventID uint, token string) (*models.Registration, error) {
	if m.checkInFn != nil {
		return m.checkInFn(ctx, actor, eventID, token)
	}
	now := time.Now()
	return &models.Registration{ID: 1, EventID: eventID, TicketToken: token, CheckedIn: true, CheckedInAt: &now}, nil
}

func (m *mockRegService) ListByEvent(ctx context.Context, actor *models.User, eventID uint) ([]models.Registration, error) {
	if m.listByEventFn != nil {
		return m.listByEventFn(ctx, actor, eventID)
	}
	return nil, nil
}

func (m *mockRegService) ListMine(ctx context.Context, actor *models.User) ([]models.Registration, error) {
	if m.listMineFn != nil {
		return m.listMineFn(ctx, actor)
	}
	return nil, nil
}

type mockFeedbackService struct {
	submitFn    func(ctx context.Context, actor *models.User, eventID uint, rating int, comment string) (*models.Feedback, error)
	analyticsFn func(ctx context.Context, actor *models.User, eventID uint) (*service.Analytics, error)
}

func (m *mockFeedbackService) SubmitFeedback(ctx context.Context, actor *models.User, eventID uint, rating int, comment string) (*models.Feedback, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, actor, eventID, rating, comment)
	}
	return &models.Feedback{ID: 1, EventID: eventID, AttendeeID: actor.ID, Rating: rating, Comment: comment}, nil
}

func (m *mockFeedbackService) EventAnalytics(ctx context.Context, actor *models.User, eventID uint) (*service.Analytics, error) {
	if m.analyticsFn != nil {
		return m.analyticsFn(ctx, actor, eventID)
	}
	return &service.Analytics{EventID: eventID}, nil
}

type mockUserService struct {
	createFn func(ctx context.Context, user *models.User) error
	getFn    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &models.User{ID: id, Name: "Pim", Email: "pim@campus.edu", Role: models.RoleParticipant}, nil
}

// --- request helpers ---

type testRequest struct {
	method string
	target string
	body   string
	actor  *models.User
	params map[string]string
}

// do runs one handler through a test Echo instance, routing any returned
// error through the production error handler so tests see real status codes.
func do(t *testing.T, h echo.HandlerFunc, req testRequest) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var body *strings.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	} else {
		body = strings.NewReader("")
	}

	httpReq := httptest.NewRequest(req.method, req.target, body)
	if req.body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)

	names := make([]string, 0, len(req.params))
	values := make([]string, 0, len(req.params))
	for k, v := range req.params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if req.actor != nil {
		mw.SetCurrentUser(c, req.actor)
	}

	if err := h(c); err != nil {
		mw.ErrorHandler(err, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func organizer() *models.User {
	return &models.User{ID: 10, Name: "Olan", Email: "olan@campus.edu", Role: models.RoleOrganizer}
}

func participant() *models.User {
	return &models.User{ID: 20, Name: "Pim", Email: "pim@campus.edu", Role: models.RoleParticipant}
}

func hod() *models.User {
	return &models.User{ID: 30, Name: "Dr. Head", Email: "hod@campus.edu", Role: models.RoleHOD}
}
