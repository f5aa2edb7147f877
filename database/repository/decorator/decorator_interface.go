package decoratorRepo

import (
	"context"
	"errors"

	"styledecor/models"
)

// ErrNotFound means no decorator with the given id exists.
var ErrNotFound = errors.New("decorator not found")

// Filter selects decorators by typed parameters.
type Filter struct {
	ApproveStatus string
	WorkStatus    string
	Location      string
	Specialty     string
}

// ApprovalInfo is the profile an administrator supplies when approving a
// decorator.
type ApprovalInfo struct {
	Location    string
	Ratings     float64
	Specialties []string
}

// DecoratorRepository is the persistence abstraction over decorator profiles.
type DecoratorRepository interface {
	// CreateIfAbsent inserts the profile unless one already exists for the
	// same userId. Reports whether this call created it.
	CreateIfAbsent(ctx context.Context, decorator *models.Decorator) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Decorator, error)
	List(ctx context.Context, f Filter) ([]models.Decorator, error)
	// Top returns the highest-rated decorators.
	Top(ctx context.Context, limit int) ([]models.Decorator, error)
	// Approve marks the decorator approved and available with the supplied
	// profile.
	Approve(ctx context.Context, id string, info ApprovalInfo) error
	// Reject marks the decorator rejected and clears the profile fields.
	Reject(ctx context.Context, id string) error
	SetWorkStatus(ctx context.Context, id, workStatus string) error
	// Delete removes the profile and returns the removed document so the
	// caller can demote the linked user account.
	Delete(ctx context.Context, id string) (*models.Decorator, error)
}
