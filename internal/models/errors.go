package models

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable is returned when the user store cannot serve a request:
// the gateway is not configured, the pool is exhausted, the connection failed
// or the query timed out.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Unique user fields as reported in UniqueViolationError.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	// FieldUser is reported when the violated key is not one of the above.
	FieldUser = "user"
)

// UniqueViolationError reports an insert rejected because Field already exists.
type UniqueViolationError struct {
	Field string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}
