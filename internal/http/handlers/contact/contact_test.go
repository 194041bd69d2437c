package contact

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nutriede/internal/http/flash"
	"github.com/magabrotheeeer/nutriede/internal/models"
	contactsvc "github.com/magabrotheeeer/nutriede/internal/services/contact"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Submit(ctx context.Context, sub models.Submission) contactsvc.Outcome {
	args := m.Called(ctx, sub)
	return args.Get(0).(contactsvc.Outcome)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func urlencoded(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/enviar-contato", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("curriculo", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/enviar-contato", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// flashes читает уведомления, выставленные ответом.
func flashes(rec *httptest.ResponseRecorder) []flash.Message {
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return flash.Pop(httptest.NewRecorder(), next)
}

func TestHandler_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		outcome  contactsvc.Outcome
		category string
		text     string
	}{
		{name: "sent", outcome: contactsvc.OutcomeSent, category: flash.Success, text: flash.MsgContactSent},
		{name: "unknown form", outcome: contactsvc.OutcomeUnknownFormType, category: flash.Warning, text: flash.MsgUnknownForm},
		{name: "invalid", outcome: contactsvc.OutcomeValidationFailed, category: flash.Warning, text: flash.MsgContactInvalid},
		{name: "send failed", outcome: contactsvc.OutcomeSendFailed, category: flash.Danger, text: flash.MsgContactFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Submit", mock.Anything, mock.MatchedBy(func(sub models.Submission) bool {
				return sub.FormType == "orcamento" &&
					sub.Fields["nome"] == "Ana" &&
					sub.Fields["empresa"] == "ACME" &&
					sub.Attachment == nil
			})).Return(tt.outcome).Once()

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc, 1<<20).ServeHTTP(rec, urlencoded(url.Values{
				"form_type": {"orcamento"},
				"nome":      {"Ana"},
				"empresa":   {"ACME"},
				"email":     {"ana@acme.com"},
			}))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/#contato", rec.Header().Get("Location"))
			assert.Equal(t, []flash.Message{{Category: tt.category, Text: tt.text}}, flashes(rec))
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_MultipartWithResume(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(sub models.Submission) bool {
		return sub.FormType == "trabalhe_conosco" &&
			sub.Fields["candidato_nome"] == "Ana Lima" &&
			sub.Attachment != nil &&
			sub.Attachment.Filename == "cv.pdf" &&
			string(sub.Attachment.Data) == "%PDF-1.4"
	})).Return(contactsvc.OutcomeSent).Once()

	req := multipartRequest(t, map[string]string{
		"form_type":          "trabalhe_conosco",
		"candidato_nome":     "Ana Lima",
		"candidato_email":    "ana@x.com",
		"candidato_telefone": "11 99999-0000",
	}, "cv.pdf", []byte("%PDF-1.4"))
	rec := httptest.NewRecorder()

	New(newNoopLogger(), svc, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_MultipartWithoutResume(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(sub models.Submission) bool {
		return sub.FormType == "trabalhe_conosco" && sub.Attachment == nil
	})).Return(contactsvc.OutcomeValidationFailed).Once()

	req := multipartRequest(t, map[string]string{"form_type": "trabalhe_conosco", "candidato_nome": "Ana"}, "", nil)
	rec := httptest.NewRecorder()

	New(newNoopLogger(), svc, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, []flash.Message{{Category: flash.Warning, Text: flash.MsgContactInvalid}}, flashes(rec))
	svc.AssertExpectations(t)
}

func TestHandler_OversizedBody(t *testing.T) {
	svc := new(ServiceMock)

	req := multipartRequest(t, map[string]string{"form_type": "trabalhe_conosco"}, "cv.pdf", bytes.Repeat([]byte("x"), 4096))
	rec := httptest.NewRecorder()

	New(newNoopLogger(), svc, 1024).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/#contato", rec.Header().Get("Location"))
	assert.Equal(t, []flash.Message{{Category: flash.Warning, Text: flash.MsgContactInvalid}}, flashes(rec))
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
