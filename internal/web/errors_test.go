package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"parse", core.ParseError("empty file"), http.StatusBadRequest},
		{"format", core.ErrUnknownFormat, http.StatusBadRequest},
		{"field", core.NewFieldError("code", "", core.ErrFieldMissing), http.StatusBadRequest},
		{"date", core.NewFieldError("startDate", "x", core.ErrInvalidDate), http.StatusBadRequest},
		{"request", fmt.Errorf("%w: limit", errBadRequest), http.StatusBadRequest},
		{"actor", core.ErrNoActingUser, http.StatusUnauthorized},
		{"kind", fmt.Errorf("%w: poultry", core.ErrUnknownKind), http.StatusNotFound},
		{"not found", core.ErrNotFound, http.StatusNotFound},
		{"duplicate", fmt.Errorf("create: %w", core.ErrDuplicate), http.StatusConflict},
		{"too large", errTooLarge, http.StatusRequestEntityTooLarge},
		{"busy", core.ErrImportBusy, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC)
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     2,
		window:   time.Minute,
		now:      func() time.Time { return now },
	}

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "limits are per client")

	now = now.Add(61 * time.Second)
	assert.True(t, rl.allow("10.0.0.1"))
}
