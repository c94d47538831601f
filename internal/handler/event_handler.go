package handler

import (
	"net/http"
	"strconv"

	"github.com/campushub/campus-events/internal/dto"
	mw "github.com/campushub/campus-events/internal/middleware"
	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
	g.GET("/pending", h.ListPending)
	g.GET("/:id", h.GetEvent)
	g.PUT("/:id", h.UpdateEvent)
	g.DELETE("/:id", h.DeleteEvent)
	g.POST("/:id/approve", h.ApproveEvent)
	g.POST("/:id/reject", h.RejectEvent)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event := eventFromRequest(&req)
	if err := h.svc.CreateEvent(c.Request().Context(), actor, event); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	// Identity is optional here: anonymous callers see approved events only.
	actor, _ := mw.CurrentUser(c)

	event, err := h.svc.GetEvent(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	actor, _ := mw.CurrentUser(c)

	events, err := h.svc.ListEvents(c.Request().Context(), actor, c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) ListPending(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}

	events, err := h.svc.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), actor, id, eventFromRequest(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), actor, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) ApproveEvent(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.ApproveEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.ApproveEvent(c.Request().Context(), actor, id, req.Location)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) RejectEvent(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.RejectEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.svc.RejectEvent(c.Request().Context(), actor, id, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func eventID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return uint(id), nil
}

func eventFromRequest(req *dto.EventRequest) *models.Event {
	return &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Mode:        models.EventMode(req.Mode),
		StreamURL:   req.StreamURL,
		Capacity:    req.Capacity,
		FeeAmount:   req.FeeAmount,
		Budget:      req.Budget,
	}
}

func toEventResponses(events []models.Event) []dto.EventResponse {
	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return resp
}
