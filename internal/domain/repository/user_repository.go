// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserEmailTaken is returned when the email is already registered.
	ErrUserEmailTaken = errors.New("user email already registered")
)

// UserFilter narrows user listings. Nil fields do not filter.
type UserFilter struct {
	Role           *entity.Role
	ApprovalStatus *entity.ApprovalStatus
	IsActive       *bool
	Page
}

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a user and, for LSP accounts, their profile.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. ErrUserEmailTaken on duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// UpdateContact updates name, phone and company name.
	UpdateContact(ctx context.Context, user *entity.User) error

	// UpdateApprovalStatus sets the admin approval gate.
	UpdateApprovalStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) error

	// SetActive activates or deactivates an account.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// List returns a page of users and the total matching count.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int64, error)

	// CountByRole counts users per role.
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}
