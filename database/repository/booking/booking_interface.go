package bookingRepo

import (
	"context"
	"errors"

	"styledecor/models"
)

// Store-level outcomes. Conditional-update misses and unique-index violations
// are translated to these at the repository boundary, never leaked as raw
// driver errors.
var (
	// ErrNotFound means no booking with the given id exists.
	ErrNotFound = errors.New("booking not found")
	// ErrStaleStatus means the booking exists but its stored status no longer
	// matches the expected pre-transition status.
	ErrStaleStatus = errors.New("booking status changed concurrently")
	// ErrDecoratorBusy means the unique (decoratorId, bookingDate) constraint
	// over busy statuses rejected the write.
	ErrDecoratorBusy = errors.New("decorator already committed on that date")
)

// Query selects bookings by typed parameters.
type Query struct {
	ClientEmail     string
	DecoratorEmail  string
	Status          models.BookingStatus
	ExcludeStatuses []models.BookingStatus
	BookingDate     string
	SortByDate      bool
}

// UpdateFields are the client-editable booking attributes. Nil fields are
// left untouched. Edits are accepted only while the booking is still
// pending payment, so bookingDate is immutable from the moment it is paid.
type UpdateFields struct {
	BookingDate *string
	Location    *string
}

// BookingRepository is the persistence abstraction over booking records.
// Every status-changing method is a single conditional write: the filter
// encodes the expected pre-state, so concurrent writers cannot both succeed.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, q Query) ([]models.Booking, error)

	// UpdateDetails applies client edits while the booking is pending payment.
	UpdateDetails(ctx context.Context, id string, fields UpdateFields) (*models.Booking, error)
	// Delete removes a booking, permitted only while it is pending payment;
	// paid bookings are never hard-deleted.
	Delete(ctx context.Context, id string) error

	// UpdateStatus moves the booking from one status to another only if the
	// stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	// AssignDecorator stamps the decorator onto a pending-decorator booking
	// and moves it to decorator-assigned in one conditional write. Returns
	// ErrDecoratorBusy when the decorator already holds a busy booking on the
	// same date.
	AssignDecorator(ctx context.Context, id string, ref models.DecoratorRef) (*models.Booking, error)
	// ClearDecorator unsets decorator fields and returns the booking to
	// pending-decorator, permitted from any busy status.
	ClearDecorator(ctx context.Context, id string) (*models.Booking, error)
	// MarkPaid moves a pending-payment booking to pending-decorator and sets
	// paymentStatus to paid. The bool result reports whether this call
	// performed the transition; false means it had already happened.
	MarkPaid(ctx context.Context, id string) (*models.Booking, bool, error)

	// FindScheduleConflict returns any other booking holding the decorator in
	// a busy status on the given date, or nil when there is none.
	FindScheduleConflict(ctx context.Context, decoratorID, bookingDate, excludeBookingID string) (*models.Booking, error)
}
