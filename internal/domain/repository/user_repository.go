package repository

import (
	"context"
	"errors"

	"github.com/devconnect/api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already
	// registered. The storage layer's unique constraint is the authoritative
	// arbiter, so concurrent creations resolve to exactly one winner.
	ErrDuplicateEmail = errors.New("email already registered")
)

// CreateUserInput carries the fields for a new account. Password is the
// plaintext credential; the creation path hashes it before anything is
// persisted.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// ProfileUpdate carries the mutable profile fields. Empty fields are left
// unchanged; auth-owned fields (email, password, role, status) are not
// reachable through it.
type ProfileUpdate struct {
	Name     string
	PhotoURL string
	Bio      string
	Skills   []string
}

// UserRepository is the persistence contract for account records.
type UserRepository interface {
	Create(ctx context.Context, in CreateUserInput) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdateStatus(ctx context.Context, id string, status entity.Status) error
	ListExcept(ctx context.Context, id string) ([]*entity.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*entity.User, error)
}
