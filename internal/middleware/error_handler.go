package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/booking-api/internal/dto"
)

// ErrorHandler renders every error as the API's JSON error shape. Non-HTTP
// errors are reported as 500 without leaking internals to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if err := c.JSON(code, dto.ErrorResponse{Message: msg}); err != nil {
		c.Logger().Error(err)
	}
}
