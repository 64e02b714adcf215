package service

import "errors"

// ErrMalformedInput is returned when no validated registration input reached the service.
var ErrMalformedInput = errors.New("malformed registration input")
