// Package http provides the HTTP handlers of the service: the greeting,
// verification questions and user registration.
package http

import (
	"net/http"
)

// Greeting is the body returned by Hello.
const Greeting = "hello purecpp"

// Hello answers liveness checks on "/".
func Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Greeting))
}
