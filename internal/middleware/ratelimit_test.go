package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func limitedCall(t *testing.T, mw echo.MiddlewareFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return h(c)
}

func TestRateLimitBurstExhaustion(t *testing.T) {
	rl := NewRateLimiter(0, 2)
	defer rl.Stop()
	mw := RateLimit(rl)

	assert.NoError(t, limitedCall(t, mw))
	assert.NoError(t, limitedCall(t, mw))

	err := limitedCall(t, mw)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
}

func TestRateLimiterUsableAfterStop(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()

	mw := RateLimit(rl)
	assert.NoError(t, limitedCall(t, mw))
}
