package booking

import (
	"context"
	"fmt"

	bookingRepo "styledecor/database/repository/booking"
	decoratorRepo "styledecor/database/repository/decorator"
	"styledecor/models"

	"go.uber.org/zap"
)

// DefaultAssignmentService assigns decorators to bookings. The pre-check in
// Assign produces a friendly conflict error in the common case; the partial
// unique index on (decoratorId, bookingDate) behind AssignDecorator is what
// actually guarantees one decorator serves at most one booking per date when
// two assignments race.
type DefaultAssignmentService struct {
	Repo       bookingRepo.BookingRepository
	Decorators decoratorRepo.DecoratorRepository
	Logger     *zap.Logger
}

// Assign stamps the decorator onto the booking and moves it to
// decorator-assigned, provided the decorator is eligible and free that date.
func (s *DefaultAssignmentService) Assign(ctx context.Context, bookingID string, ref models.DecoratorRef) (*models.Booking, error) {
	target, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if target.Status != models.StatusPendingDecorator {
		return nil, NewError(CodeInvalidTransition,
			fmt.Sprintf("booking is not awaiting a decorator (status %q)", target.Status))
	}

	decorator, err := s.Decorators.GetByID(ctx, ref.DecoratorID)
	if err != nil {
		if err == decoratorRepo.ErrNotFound {
			return nil, NewError(CodeNotFound, "decorator not found")
		}
		return nil, err
	}
	if decorator.ApproveStatus != models.ApproveApproved || decorator.WorkStatus != models.WorkAvailable {
		return nil, NewError(CodePolicyViolation, "decorator is not available for assignment")
	}

	conflict, err := s.Repo.FindScheduleConflict(ctx, ref.DecoratorID, target.BookingDate, target.ID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, NewError(CodeConflict, "decorator already assigned on this date")
	}

	updated, err := s.Repo.AssignDecorator(ctx, bookingID, ref)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	s.Logger.Info("decorator assigned",
		zap.String("bookingId", bookingID),
		zap.String("decoratorId", ref.DecoratorID),
		zap.String("bookingDate", updated.BookingDate),
	)
	return updated, nil
}
