package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/booking-api/internal/dto"
	"github.com/clinicdesk/booking-api/internal/middleware"
	"github.com/clinicdesk/booking-api/internal/service"
)

type SlotHandler struct {
	svc service.SlotService
}

func NewSlotHandler(svc service.SlotService) *SlotHandler {
	return &SlotHandler{svc: svc}
}

func (h *SlotHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/slots")
	g.GET("", h.ListSlots)
	g.POST("", h.CreateSlot, auth)
	g.POST("/bulk", h.CreateSlots, auth)
}

func (h *SlotHandler) ListSlots(c echo.Context) error {
	slots, err := h.svc.ListAvailable(c.Request().Context(), time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		resp[i] = dto.ToSlotResponse(&s)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SlotHandler) CreateSlot(c echo.Context) error {
	var req dto.CreateSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Start.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start is required")
	}

	slot, err := h.svc.CreateSlot(c.Request().Context(), middleware.RequesterFrom(c), req.Start, req.DoctorID)
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToSlotResponse(slot))
}

func (h *SlotHandler) CreateSlots(c echo.Context) error {
	var req dto.BulkCreateSlotsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Starts) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "starts must not be empty")
	}

	slots, err := h.svc.CreateSlots(c.Request().Context(), middleware.RequesterFrom(c), req.Starts, req.DoctorID)
	if err != nil {
		return bookingHTTPError(err)
	}

	resp := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		resp[i] = dto.ToSlotResponse(&s)
	}
	return c.JSON(http.StatusCreated, resp)
}
