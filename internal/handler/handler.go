package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/booking-api/internal/dto"
	"github.com/clinicdesk/booking-api/internal/models"
	"github.com/clinicdesk/booking-api/internal/service"
)

// bookingHTTPError maps service sentinel errors onto HTTP status codes:
// missing resources are 404, permission failures 403, rule violations 400.
func bookingHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAllowed),
		errors.Is(err, service.ErrDoctorCannotBook):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSlotInPast),
		errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrAlreadyBooked),
		errors.Is(err, service.ErrNotADoctor):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func toBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return resp
}
