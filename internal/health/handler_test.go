package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRunChecks(t *testing.T) {
	h := NewHandler("test")
	h.Register("ok", func(ctx context.Context) (Status, error) {
		return StatusHealthy, nil
	})
	h.Register("broken", func(ctx context.Context) (Status, error) {
		return StatusUnhealthy, errors.New("storage unreachable")
	})

	resp := h.RunChecks(context.Background())
	if resp.Status != StatusUnhealthy {
		t.Errorf("Expected overall unhealthy, got %s", resp.Status)
	}
	if resp.Checks["broken"].Error != "storage unreachable" {
		t.Errorf("Expected check error to surface, got %q", resp.Checks["broken"].Error)
	}
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		h := NewHandler("test")
		h.Register("ok", func(ctx context.Context) (Status, error) {
			return StatusHealthy, nil
		})

		rec := httptest.NewRecorder()
		h.ReadinessHandler()(rec, httptest.NewRequest("GET", "/ready", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})

	t.Run("Unhealthy", func(t *testing.T) {
		h := NewHandler("test")
		h.Register("broken", func(ctx context.Context) (Status, error) {
			return StatusUnhealthy, errors.New("down")
		})

		rec := httptest.NewRecorder()
		h.ReadinessHandler()(rec, httptest.NewRequest("GET", "/ready", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", rec.Code)
		}
	})
}

func TestLivenessHandler(t *testing.T) {
	h := NewHandler("1.2.3")
	rec := httptest.NewRecorder()
	h.LivenessHandler()(rec, httptest.NewRequest("GET", "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Version != "1.2.3" {
		t.Errorf("Expected version 1.2.3, got %s", resp.Version)
	}
}
