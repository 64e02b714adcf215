// Package models defines the core data structures for questions, users
// and registration requests.
package models

// Question is a single verification challenge shown to a client.
type Question struct {
	// Index is the position of the question in the catalog.
	Index int `json:"index"`
	// Text is the question itself.
	Text string `json:"text"`
}

// RegistrationInput carries the validated fields of a registration request.
type RegistrationInput struct {
	// Username is the requested login name.
	Username string
	// Email is the contact address of the user.
	Email string
	// Password is the already processed credential value. It is stored as is.
	Password string
}

// RegisterRequest is the JSON body of POST /api/v1/register.
// Username has no length floor beyond being present.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,max=64"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,max=255"`
	QuestionIndex *int   `json:"question_index" validate:"required"`
	Answer        string `json:"answer" validate:"required"`
}

// User is a persisted user record.
type User struct {
	// ID is assigned by storage on insert; zero before that.
	ID uint64
	// Username is unique across users.
	Username string
	// Email is unique across users.
	Email string
	// PasswordHash is the opaque credential value, unique across users.
	PasswordHash string
	// Verified reports whether the user finished verification.
	Verified bool
	// CreatedAt is the creation time in unix milliseconds.
	CreatedAt uint64
	// LastActiveAt is the last activity time in unix milliseconds.
	LastActiveAt uint64
}

// UserResponse is the payload returned after a successful registration.
type UserResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// NewUserResponse builds the public view of u.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Verified: u.Verified,
	}
}
