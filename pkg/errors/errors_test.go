package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("query handler failed: %w", NewForbiddenError(""))

	assert.True(t, IsForbidden(err))
	assert.False(t, IsUnauthenticated(err))
	assert.Equal(t, "forbidden", GetAppError(err).Message)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	notFound := Wrap(NewNotFoundError("Week", "w9"), "failed to load week")
	assert.True(t, IsNotFound(notFound))
	assert.Contains(t, notFound.Error(), "failed to load week: Week with id w9 not found")

	plain := stderrors.New("disk on fire")
	wrapped := Wrap(plain, "failed to list")
	assert.True(t, IsType(wrapped, ErrorTypeInternal))
	assert.ErrorIs(t, wrapped, plain)
}

func TestErrorHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   ErrorType
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest, ErrorTypeValidation},
		{"unauthenticated", NewUnauthenticatedError(""), http.StatusUnauthorized, ErrorTypeUnauthenticated},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden, ErrorTypeForbidden},
		{"not found", NewNotFoundError("Card", "c1"), http.StatusNotFound, ErrorTypeNotFound},
		{"rate limit", NewRateLimitError(5, "minute"), http.StatusTooManyRequests, ErrorTypeRateLimit},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError, ErrorTypeInternal},
	}

	h := NewErrorHandler(zap.NewNop(), false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.Error)
			assert.Equal(t, string(tt.wantType), body.Type)
		})
	}
}

func TestErrorHandler_HidesInternalMessagesOutsideDebug(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorHandler(zap.NewNop(), false).Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), stderrors.New("secret detail"))
	assert.NotContains(t, rec.Body.String(), "secret detail")

	rec = httptest.NewRecorder()
	NewErrorHandler(zap.NewNop(), true).Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), stderrors.New("secret detail"))
	assert.Contains(t, rec.Body.String(), "secret detail")
}

func TestErrorHandler_MiddlewareRecoversPanics(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	panicky := h.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	panicky.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
