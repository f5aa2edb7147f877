package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "styledecor/database/repository/booking"
	catalogRepo "styledecor/database/repository/catalog"
	"styledecor/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCrudService implements the client-facing booking operations.
// Pricing and category come from the catalog entry, never from the request
// body.
type DefaultCrudService struct {
	Repo    bookingRepo.BookingRepository
	Catalog catalogRepo.CatalogRepository
	Logger  *zap.Logger
}

// Create opens a new booking in pending-payment for the given client.
func (s *DefaultCrudService) Create(ctx context.Context, clientEmail string, input CreateBookingInput) (*models.Booking, error) {
	if _, err := time.Parse(models.BookingDateLayout, input.BookingDate); err != nil {
		return nil, NewError(CodePolicyViolation, "bookingDate must be in YYYY-MM-DD format")
	}

	service, err := s.Catalog.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "service not found")
		}
		return nil, err
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		ClientEmail:   clientEmail,
		ServiceID:     service.ID,
		ServiceName:   service.ServiceName,
		Category:      service.Category,
		Location:      input.Location,
		BookingDate:   input.BookingDate,
		TotalCost:     service.Cost,
		Status:        models.StatusPendingPayment,
		PaymentStatus: models.PaymentUnpaid,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("client", clientEmail),
		zap.String("bookingDate", booking.BookingDate),
	)
	return booking, nil
}

// Get returns a single booking.
func (s *DefaultCrudService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return booking, nil
}

// ListForClient returns a client's bookings sorted by booking date.
func (s *DefaultCrudService) ListForClient(ctx context.Context, clientEmail string, status models.BookingStatus) ([]models.Booking, error) {
	return s.Repo.List(ctx, bookingRepo.Query{
		ClientEmail: clientEmail,
		Status:      status,
		SortByDate:  true,
	})
}

// ListForDecorator returns a decorator's bookings for the requested scope.
func (s *DefaultCrudService) ListForDecorator(ctx context.Context, decoratorEmail string, scope DecoratorListScope) ([]models.Booking, error) {
	q := bookingRepo.Query{DecoratorEmail: decoratorEmail, SortByDate: true}

	switch scope {
	case ScopeCompleted:
		q.Status = models.StatusCompleted
	case ScopeToday:
		q.BookingDate = time.Now().Format(models.BookingDateLayout)
		q.ExcludeStatuses = []models.BookingStatus{models.StatusCompleted}
	default:
		q.ExcludeStatuses = []models.BookingStatus{models.StatusCompleted}
	}
	return s.Repo.List(ctx, q)
}

// UpdateDetails applies client edits to their own pending-payment booking.
func (s *DefaultCrudService) UpdateDetails(ctx context.Context, id, clientEmail string, fields bookingRepo.UpdateFields) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if booking.ClientEmail != clientEmail {
		return nil, NewError(CodeForbidden, "booking belongs to another client")
	}

	if fields.BookingDate != nil {
		if _, err := time.Parse(models.BookingDateLayout, *fields.BookingDate); err != nil {
			return nil, NewError(CodePolicyViolation, "bookingDate must be in YYYY-MM-DD format")
		}
	}

	updated, err := s.Repo.UpdateDetails(ctx, id, fields)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			return nil, NewError(CodePolicyViolation, "booking can no longer be edited after payment")
		}
		return nil, translateStoreErr(err)
	}
	return updated, nil
}

// Delete removes a client's own booking, permitted only before payment.
func (s *DefaultCrudService) Delete(ctx context.Context, id, clientEmail string) error {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return translateStoreErr(err)
	}
	if booking.ClientEmail != clientEmail {
		return NewError(CodeForbidden, "booking belongs to another client")
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			return NewError(CodePolicyViolation, "paid bookings cannot be deleted")
		}
		return translateStoreErr(err)
	}

	s.Logger.Info("booking deleted", zap.String("bookingId", id), zap.String("client", clientEmail))
	return nil
}
