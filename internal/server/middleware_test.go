package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RahulNewbie/rest-app/internal/logging"
)

func TestLogRequests_AssignsRequestID(t *testing.T) {
	var seen string
	handler := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}), testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestLogRequests_KeepsInboundRequestID(t *testing.T) {
	handler := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/movies/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestLogRequests_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	handler := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}), log)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies/", nil))

	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/movies/")
}

func TestLogRequests_RecoversPanic(t *testing.T) {
	handler := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogRequests_RequestIDReachesHandlerLogs(t *testing.T) {
	var buf bytes.Buffer
	log, _ := logging.New(logging.Options{Writer: &buf})
	handler := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "refresh started")
	}), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/movies/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "msg=\"refresh started\" request_id=abc-123")
}
