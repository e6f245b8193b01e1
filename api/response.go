package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"api_ledger/internal/expenses"
	"api_ledger/internal/sales"
)

// envelope is the shape of every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondFail(ctx *gin.Context, status int, message string, err error) {
	body := envelope{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	ctx.JSON(status, body)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sales.ErrValidation), errors.Is(err, expenses.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, sales.ErrNotFound), errors.Is(err, expenses.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateOnly,
}

const dateOnly = "2006-01-02"

// parseDate accepts RFC 3339 timestamps, HTML datetime-local values and
// plain dates. Values without a zone are read in local time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// optionalDate parses s when it is not empty.
func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
