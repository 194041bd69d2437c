package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/flash"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var cookies = config.Session{CookieName: "nutriede_session"}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		logoutErr error
	}{
		{name: "revokes session", token: "signed.jwt"},
		{name: "revocation failure still logs out", token: "signed.jwt", logoutErr: errors.New("redis down")},
		{name: "no session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			svc.On("Logout", mock.Anything, tt.token).Return(tt.logoutErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/sistema/logout", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: cookies.CookieName, Value: tt.token})
			}
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc, cookies).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))

			var cleared, flashed bool
			for _, c := range rec.Result().Cookies() {
				switch c.Name {
				case cookies.CookieName:
					cleared = c.MaxAge < 0
				case flash.CookieName:
					flashed = c.Value != ""
				}
			}
			assert.True(t, cleared)
			assert.True(t, flashed)
			svc.AssertExpectations(t)
		})
	}
}
