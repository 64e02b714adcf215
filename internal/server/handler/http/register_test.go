package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/feather/internal/challenge"
	"github.com/atinyakov/feather/internal/envelope"
	"github.com/atinyakov/feather/internal/middleware"
	"github.com/atinyakov/feather/internal/models"
)

// fakeRegistrationService implements RegistrationService for testing.
type fakeRegistrationService struct {
	called bool
	got    *models.RegistrationInput
	user   *models.User
	err    error
}

func (f *fakeRegistrationService) Register(_ context.Context, in *models.RegistrationInput) (*models.User, error) {
	f.called = true
	f.got = in
	return f.user, f.err
}

const validBody = `{"username":"tommy","email":"tom@x.com","password":"h4sh","question_index":0,"answer":"4"}`

func newValidatedRegister(t *testing.T, h *RegisterHandler) http.Handler {
	t.Helper()
	bank, err := challenge.NewBank([]string{"2+2=?"}, []string{"4"}, nil)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	return middleware.ValidateRegistration(bank)(http.HandlerFunc(h.Register))
}

func decodeUserEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope.Envelope[models.UserResponse] {
	t.Helper()
	var env envelope.Envelope[models.UserResponse]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	return env
}

func TestRegisterHandler_Outcomes(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeRegistrationService
		expectedCode int
		expectedErrs []string
	}{
		{
			name: "success",
			service: &fakeRegistrationService{user: &models.User{
				ID: 1, Username: "tommy", Email: "tom@x.com", PasswordHash: "h4sh",
			}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "duplicate email",
			service:      &fakeRegistrationService{err: &models.UniqueViolationError{Field: models.FieldEmail}},
			expectedCode: http.StatusConflict,
			expectedErrs: []string{"email: already exists"},
		},
		{
			name:         "storage unavailable",
			service:      &fakeRegistrationService{err: fmt.Errorf("%w: pool exhausted", models.ErrStorageUnavailable)},
			expectedCode: http.StatusServiceUnavailable,
			expectedErrs: []string{"storage: temporarily unavailable, please retry later"},
		},
		{
			name:         "unexpected error",
			service:      &fakeRegistrationService{err: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
			expectedErrs: []string{"server: internal error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &RegisterHandler{Service: tt.service, Log: zap.NewNop()}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/register", bytes.NewBufferString(validBody))
			newValidatedRegister(t, h).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !tt.service.called {
				t.Fatal("expected RegistrationService.Register to be called")
			}
			want := models.RegistrationInput{Username: "tommy", Email: "tom@x.com", Password: "h4sh"}
			if *tt.service.got != want {
				t.Errorf("service input = %+v; want %+v", *tt.service.got, want)
			}

			env := decodeUserEnvelope(t, rec)
			if env.Code != rec.Code {
				t.Errorf("envelope code %d disagrees with status %d", env.Code, rec.Code)
			}
			if tt.expectedCode == http.StatusOK {
				if !env.Success || env.Data == nil {
					t.Fatalf("expected successful envelope with data, got %+v", env)
				}
				wantData := models.UserResponse{ID: 1, Username: "tommy", Email: "tom@x.com", Verified: false}
				if *env.Data != wantData {
					t.Errorf("data = %+v; want %+v", *env.Data, wantData)
				}
				if sniff := rec.Header().Get("X-Content-Type-Options"); sniff != "" {
					t.Errorf("unexpected X-Content-Type-Options %q on success", sniff)
				}
				return
			}

			if env.Success || env.Data != nil {
				t.Errorf("expected failure envelope without data, got %+v", env)
			}
			if fmt.Sprint(env.Errors) != fmt.Sprint(tt.expectedErrs) {
				t.Errorf("errors = %q; want %q", env.Errors, tt.expectedErrs)
			}
			if sniff := rec.Header().Get("X-Content-Type-Options"); sniff != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q; want nosniff", sniff)
			}
		})
	}
}

func TestRegisterHandler_MissingInput(t *testing.T) {
	svc := &fakeRegistrationService{}
	h := &RegisterHandler{Service: svc}
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest("POST", "/api/v1/register", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if svc.called {
		t.Error("service must not be called without validated input")
	}
	env := decodeUserEnvelope(t, rec)
	if env.Success || len(env.Errors) == 0 {
		t.Errorf("expected failure envelope with errors, got %+v", env)
	}
}

func TestRegisterHandler_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := &RegisterHandler{
		Service: &fakeRegistrationService{err: models.ErrStorageUnavailable},
		Log:     zap.New(core),
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/register", bytes.NewBufferString(validBody))
	newValidatedRegister(t, h).ServeHTTP(rec, req)

	entries := logs.FilterMessage("registration failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 failure log, got %d", len(entries))
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Errorf("level = %v; want error", entries[0].Level)
	}
}
