package catalogRepo

import (
	"context"
	"errors"

	"styledecor/models"
)

// ErrNotFound means no catalog service with the given id exists.
var ErrNotFound = errors.New("service not found")

// Filter selects catalog services by typed parameters.
type Filter struct {
	SearchText string
	Category   string
	MinBudget  float64
	MaxBudget  float64
}

// ServiceUpdate carries admin edits to a catalog entry. Nil fields are left
// untouched.
type ServiceUpdate struct {
	ServiceName *string
	Category    *string
	Cost        *float64
	Description *string
	PhotoURL    *string
}

// CatalogRepository is the persistence abstraction over the service catalog.
type CatalogRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, f Filter) ([]models.Service, error)
	Update(ctx context.Context, id string, update ServiceUpdate) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}
