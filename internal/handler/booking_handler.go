package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/booking-api/internal/dto"
	"github.com/clinicdesk/booking-api/internal/middleware"
	"github.com/clinicdesk/booking-api/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth, optionalAuth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/bookings")
	g.GET("", h.ListBookings, optionalAuth)
	g.POST("", h.CreateBooking, auth)
	g.GET("/mine", h.ListMine, auth)
	g.GET("/:id", h.GetBooking, auth)
	g.PATCH("/:id", h.UpdateBooking, auth)
	g.POST("/:id/cancel", h.CancelBooking, auth)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SlotID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "slot_id is required")
	}

	requester := middleware.RequesterFrom(c)
	booking, err := h.svc.CreateBooking(c.Request().Context(), req.SlotID, requester, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDoctorCannotBook), errors.Is(err, service.ErrNotAllowed):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSlotInPast),
			errors.Is(err, service.ErrSlotTaken),
			errors.Is(err, service.ErrAlreadyBooked):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), uint(id), middleware.RequesterFrom(c))
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id), middleware.RequesterFrom(c))
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateReason(c.Request().Context(), uint(id), middleware.RequesterFrom(c), req.Reason)
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMine(c echo.Context) error {
	bookings, err := h.svc.ListMine(c.Request().Context(), middleware.RequesterFrom(c))
	if err != nil {
		return bookingHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// ListBookings serves both the administrator's full listing and the per-slot
// listing selected with ?slot=ID.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	requester := middleware.RequesterFrom(c)
	ctx := c.Request().Context()

	if raw := c.QueryParam("slot"); raw != "" {
		slotID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid slot id")
		}
		bookings, err := h.svc.ListBySlot(ctx, uint(slotID), requester)
		if err != nil {
			return bookingHTTPError(err)
		}
		return c.JSON(http.StatusOK, toBookingResponses(bookings))
	}

	bookings, err := h.svc.ListAll(ctx, requester)
	if err != nil {
		return bookingHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}
