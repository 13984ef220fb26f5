package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

func TestHealthLive(t *testing.T) {
	r := httptest.NewRequest("GET", "/health/live", nil)
	w := httptest.NewRecorder()
	HealthLive()(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHealthReady(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/health/ready", nil)
		w := httptest.NewRecorder()
		HealthReady(testLogger(), &stubPinger{})(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("db unreachable is 503", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/health/ready", nil)
		w := httptest.NewRecorder()
		HealthReady(testLogger(), &stubPinger{err: errors.New("connection refused")})(w, r)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
