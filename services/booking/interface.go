package booking

import (
	"context"

	bookingRepo "styledecor/database/repository/booking"
	"styledecor/models"
)

// StatusService validates and applies booking status transitions.
type StatusService interface {
	// ApplyTransition moves the booking to target on behalf of actor,
	// enforcing the transition table, role gating and the date gate.
	ApplyTransition(ctx context.Context, bookingID string, target models.BookingStatus, actor models.Actor) (*models.Booking, error)
	// Reject returns an assigned, non-completed booking to pending-decorator
	// and clears its decorator fields.
	Reject(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error)
}

// AssignmentService decides whether a decorator may take a booking and
// applies the assignment.
type AssignmentService interface {
	Assign(ctx context.Context, bookingID string, ref models.DecoratorRef) (*models.Booking, error)
}

// ReconcileResult is the outcome of a payment reconciliation.
type ReconcileResult struct {
	AlreadyProcessed bool            `json:"alreadyProcessed"`
	Booking          *models.Booking `json:"booking,omitempty"`
	Payment          *models.Payment `json:"payment,omitempty"`
}

// ReconcileService turns gateway payment confirmations into exactly-once
// state changes.
type ReconcileService interface {
	Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error)
}

// DecoratorListScope selects which of a decorator's bookings to list.
type DecoratorListScope string

const (
	ScopeActive    DecoratorListScope = "active"
	ScopeToday     DecoratorListScope = "today"
	ScopeCompleted DecoratorListScope = "completed"
)

// CreateBookingInput is the validated payload for creating a booking.
type CreateBookingInput struct {
	ServiceID   string
	BookingDate string
	Location    string
}

// CrudService covers the client-facing booking operations around the core
// lifecycle components.
type CrudService interface {
	Create(ctx context.Context, clientEmail string, input CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	ListForClient(ctx context.Context, clientEmail string, status models.BookingStatus) ([]models.Booking, error)
	ListForDecorator(ctx context.Context, decoratorEmail string, scope DecoratorListScope) ([]models.Booking, error)
	UpdateDetails(ctx context.Context, id, clientEmail string, fields bookingRepo.UpdateFields) (*models.Booking, error)
	Delete(ctx context.Context, id, clientEmail string) error
}
