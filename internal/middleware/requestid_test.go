package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func TestRequestID_Generated(t *testing.T) {
	dummy := &dummyHandler{}
	rec := httptest.NewRecorder()
	RequestID(dummy).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("response request id %q is not a UUID: %v", id, err)
	}
	if got := GetRequestID(dummy.ctx); got != id {
		t.Errorf("context request id = %q; want %q", got, id)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	dummy := &dummyHandler{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	RequestID(dummy).ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("response request id = %q; want %q", got, "abc-123")
	}
	if got := GetRequestID(dummy.ctx); got != "abc-123" {
		t.Errorf("context request id = %q; want %q", got, "abc-123")
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty string for missing id, got %q", got)
	}
}
