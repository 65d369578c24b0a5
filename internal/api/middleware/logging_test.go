package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLoggerRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("генерируется при отсутствии", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registry", nil))

		if w.Header().Get("X-Request-Id") == "" {
			t.Error("заголовок X-Request-Id не установлен")
		}
	})

	t.Run("сохраняется из запроса", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/registry", nil)
		req.Header.Set("X-Request-Id", "proxy-id-123")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-Id"); got != "proxy-id-123" {
			t.Errorf("X-Request-Id = %q, ожидается proxy-id-123", got)
		}
	})
}
