package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayo6706/payment-instructions/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddlewareRecordsRequest(t *testing.T) {
	cases := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{name: "executed", status: http.StatusOK, level: zapcore.InfoLevel},
		{name: "rejected", status: http.StatusBadRequest, level: zapcore.InfoLevel},
		{name: "fallback", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			r := chi.NewRouter()
			r.Use(middleware.LoggingMiddleware(zap.New(core)))
			r.Post("/payment-instructions", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			})

			req := httptest.NewRequest(http.MethodPost, "/payment-instructions", nil)
			req.Header.Set(middleware.IdempotencyHeader, "key-7")
			r.ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.FilterMessage("request_completed").All()
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tc.level, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "/payment-instructions", fields["route"])
			assert.EqualValues(t, tc.status, fields["status"])
			assert.EqualValues(t, len(`{"status":"ok"}`), fields["response_bytes"])
			assert.Equal(t, "key-7", fields["idempotency_key"])
		})
	}
}

func TestLoggingMiddlewareOmitsEmptyIdempotencyKey(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := middleware.LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.NotContains(t, fields, "idempotency_key")
	assert.Equal(t, "/healthz", fields["route"])
}
