// Package envelope defines the uniform JSON body returned by every API endpoint.
package envelope

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope wraps an endpoint payload of type T.
// Errors and Data are omitted from JSON when absent.
type Envelope[T any] struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	Data      *T       `json:"data,omitempty"`
	Timestamp string   `json:"timestamp"`
	Code      int      `json:"code"`
}

// now is replaced in tests.
var now = time.Now

func timestamp() string {
	return now().UTC().Format(time.RFC3339)
}

// OK returns a successful envelope with status 200 carrying data.
func OK[T any](message string, data T) *Envelope[T] {
	return &Envelope[T]{
		Success:   true,
		Message:   message,
		Data:      &data,
		Timestamp: timestamp(),
		Code:      http.StatusOK,
	}
}

// Fail returns an error envelope with the given status.
// A nil or empty errs is replaced by a single entry equal to message.
func Fail[T any](code int, message string, errs ...string) *Envelope[T] {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return &Envelope[T]{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: timestamp(),
		Code:      code,
	}
}

// Write encodes e as JSON using e.Code as the HTTP status.
// Failure envelopes disable MIME sniffing on the client.
func Write[T any](w http.ResponseWriter, e *Envelope[T]) {
	w.Header().Set("Content-Type", "application/json")
	if !e.Success {
		w.Header().Set("X-Content-Type-Options", "nosniff")
	}
	w.WriteHeader(e.Code)
	_ = json.NewEncoder(w).Encode(e)
}
