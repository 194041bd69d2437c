package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantCode   int
		wantStatus string
		wantData   map[string]any
	}{
		{
			name:       "all up",
			deps:       map[string]Pinger{"postgres": up, "redis": up},
			wantCode:   http.StatusOK,
			wantStatus: "OK",
			wantData:   map[string]any{"postgres": "ok", "redis": "ok"},
		},
		{
			name:       "redis down",
			deps:       map[string]Pinger{"postgres": up, "redis": down},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "Error",
			wantData:   map[string]any{"postgres": "ok", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), tt.deps)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])
			assert.Equal(t, tt.wantData, got["data"])
		})
	}
}
