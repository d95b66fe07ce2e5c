package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", nil, "")
	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("no reachable servers") })

	tests := []struct {
		name     string
		deps     map[string]ports.Pinger
		wantCode int
		wantText string
	}{
		{"all up", map[string]ports.Pinger{"mongodb": ok}, http.StatusOK, "ok"},
		{"store down", map[string]ports.Pinger{"mongodb": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/health/ready", nil, "")
			if err := NewHealthHandler(tt.deps).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeBody(t, rec); resp["status"] != tt.wantText {
				t.Fatalf("unexpected status: %v", resp)
			}
		})
	}
}
