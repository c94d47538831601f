package handler

import (
	"net/http"

	"github.com/campushub/campus-events/internal/dto"
	mw "github.com/campushub/campus-events/internal/middleware"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/service"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// RegisterRoutes mounts the event-scoped routes on the events group and the
// attendee-scoped listing on the api group.
func (h *RegistrationHandler) RegisterRoutes(events *echo.Group, api *echo.Group) {
	events.POST("/:id/registrations", h.Register)
	events.POST("/:id/payment", h.ProcessPayment)
	events.GET("/:id/registrations", h.ListByEvent)
	events.POST("/:id/checkin", h.CheckIn)
	api.GET("/my/registrations", h.ListMine)
}

func (h *RegistrationHandler) Register(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	reg, err := h.svc.Register(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

// ProcessPayment settles the entry fee of a paid event and issues the
// ticket in the same step.
func (h *RegistrationHandler) ProcessPayment(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	reg, err := h.svc.ProcessPayment(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reg, err := h.svc.CheckIn(c.Request().Context(), actor, id, req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToCheckInResponse(reg))
}

func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	regs, err := h.svc.ListByEvent(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRegistrationResponses(regs))
}

func (h *RegistrationHandler) ListMine(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}

	regs, err := h.svc.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRegistrationResponses(regs))
}

func toRegistrationResponses(regs []models.Registration) []dto.RegistrationResponse {
	resp := make([]dto.RegistrationResponse, len(regs))
	for i := range regs {
		resp[i] = dto.ToRegistrationResponse(&regs[i])
	}
	return resp
}
