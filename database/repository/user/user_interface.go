package userRepo

import (
	"context"
	"errors"

	"styledecor/models"
)

// ErrNotFound means no user with the given id or email exists.
var ErrNotFound = errors.New("user not found")

// UserRepository is the persistence abstraction over user accounts. Identity
// verification lives with the token verifier; this store only holds profiles
// and roles.
type UserRepository interface {
	// CreateIfAbsent inserts the user unless the email is already registered.
	// Reports whether this call created it.
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	// GetByEmail returns the user for an email, or nil when none exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// RoleOf resolves the role for an email, defaulting to "user" for
	// unknown accounts.
	RoleOf(ctx context.Context, email string) (string, error)
	// UpdateRole changes the role of the account with the given id and
	// returns the updated user.
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	// Search lists users, optionally filtered by a case-insensitive match on
	// display name or email.
	Search(ctx context.Context, text string) ([]models.User, error)
}
