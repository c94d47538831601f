package handler

import (
	"net/http"

	"github.com/campushub/campus-events/internal/dto"
	mw "github.com/campushub/campus-events/internal/middleware"
	"github.com/campushub/campus-events/internal/service"
	"github.com/labstack/echo/v4"
)

type FeedbackHandler struct {
	svc service.FeedbackService
}

func NewFeedbackHandler(svc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) RegisterRoutes(events *echo.Group) {
	events.POST("/:id/feedback", h.SubmitFeedback)
	events.GET("/:id/analytics", h.EventAnalytics)
}

func (h *FeedbackHandler) SubmitFeedback(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fb, err := h.svc.SubmitFeedback(c.Request().Context(), actor, id, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToFeedbackResponse(fb))
}

func (h *FeedbackHandler) EventAnalytics(c echo.Context) error {
	actor, err := mw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := eventID(c)
	if err != nil {
		return err
	}

	analytics, err := h.svc.EventAnalytics(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToAnalyticsResponse(analytics))
}
