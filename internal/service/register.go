// Package service provides the registration business logic,
// delegating persistence to a UserRepository.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/feather/internal/models"
)

// UserRepository defines the persistence operations
// required by the registration service.
type UserRepository interface {
	// InsertUser stores u and returns its generated id.
	// It fails with *models.UniqueViolationError on duplicates and
	// with models.ErrStorageUnavailable on any other failure.
	InsertUser(ctx context.Context, u *models.User) (uint64, error)
}

// RegistrationService turns validated registration input into stored users.
type RegistrationService struct {
	// repo is nil when the user store is not configured.
	repo    UserRepository
	timeout time.Duration
	now     func() time.Time
}

// NewRegistrationService constructs a RegistrationService.
// A nil repo makes every registration fail with models.ErrStorageUnavailable.
// timeout bounds a single insert; zero disables the bound.
func NewRegistrationService(repo UserRepository, timeout time.Duration) *RegistrationService {
	return &RegistrationService{repo: repo, timeout: timeout, now: time.Now}
}

// Register stores a new unverified user built from in.
// The password is persisted verbatim as the credential hash.
func (s *RegistrationService) Register(ctx context.Context, in *models.RegistrationInput) (*models.User, error) {
	if in == nil {
		return nil, ErrMalformedInput
	}
	if s.repo == nil {
		return nil, fmt.Errorf("%w: user store not configured", models.ErrStorageUnavailable)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.Password,
		Verified:     false,
		CreatedAt:    uint64(s.now().UnixMilli()),
	}

	id, err := s.repo.InsertUser(ctx, user)
	if err != nil {
		var uv *models.UniqueViolationError
		if errors.As(err, &uv) || errors.Is(err, models.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}

	user.ID = id
	return user, nil
}
