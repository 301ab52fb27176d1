package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/booking-api/internal/auth"
	"github.com/clinicdesk/booking-api/internal/models"
)

const requesterKey = "requester"

// Auth rejects requests without a valid bearer token.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			c.Set(requesterKey, claims.Requester())
			return next(c)
		}
	}
}

// OptionalAuth attaches the requester identity when a valid token is present
// and lets anonymous requests through.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := parseBearer(c, secret); err == nil {
				c.Set(requesterKey, claims.Requester())
			}
			return next(c)
		}
	}
}

// RequesterFrom returns the identity set by Auth/OptionalAuth. The zero
// value (anonymous) is returned when no valid token was presented.
func RequesterFrom(c echo.Context) models.Requester {
	if r, ok := c.Get(requesterKey).(models.Requester); ok {
		return r
	}
	return models.Requester{}
}

func parseBearer(c echo.Context, secret string) (*auth.Claims, error) {
	raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	if raw == "" {
		return nil, auth.ErrBadToken
	}
	return auth.ParseToken(raw, secret)
}
