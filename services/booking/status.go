package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "styledecor/database/repository/booking"
	"styledecor/models"

	"go.uber.org/zap"
)

// workChain is the forward progression a decorator drives after assignment.
var workChain = []models.BookingStatus{
	models.StatusDecoratorAssigned,
	models.StatusMaterialsPrepared,
	models.StatusOnTheWay,
	models.StatusSetupInProgress,
	models.StatusCompleted,
}

// dateGated are the statuses that may not be entered before the booking's
// calendar date.
var dateGated = map[models.BookingStatus]bool{
	models.StatusOnTheWay:        true,
	models.StatusSetupInProgress: true,
	models.StatusCompleted:       true,
}

// DefaultStatusService is the booking status state machine. Transitions are
// applied with a compare-and-swap against the store, so a concurrent writer
// on the same booking cannot cause a lost update.
type DefaultStatusService struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger

	// StrictSequencing requires decorators to advance the work chain one
	// step at a time. When false, forward jumps within the chain are allowed
	// (a decorator may go straight to completed on site).
	StrictSequencing bool

	// Now is the clock used by the date gate. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultStatusService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ApplyTransition moves the booking to target on behalf of actor.
func (s *DefaultStatusService) ApplyTransition(ctx context.Context, bookingID string, target models.BookingStatus, actor models.Actor) (*models.Booking, error) {
	if _, err := models.ParseBookingStatus(string(target)); err != nil {
		return nil, NewError(CodeInvalidTransition, err.Error())
	}

	// Returning to pending-decorator is the reject transition.
	if target == models.StatusPendingDecorator {
		return s.Reject(ctx, bookingID, actor)
	}

	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	if err := s.authorize(current, actor); err != nil {
		return nil, err
	}
	if err := s.checkReachable(current.Status, target); err != nil {
		return nil, err
	}
	if err := s.checkDateGate(current, target); err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateStatus(ctx, bookingID, current.Status, target)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	s.Logger.Info("booking status updated",
		zap.String("bookingId", bookingID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(target)),
		zap.String("actor", actor.Email),
	)
	return updated, nil
}

// Reject returns an assigned, non-completed booking to pending-decorator and
// clears its decorator fields, freeing the decorator's date.
func (s *DefaultStatusService) Reject(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	if err := s.authorize(current, actor); err != nil {
		return nil, err
	}
	if !current.Status.Busy() {
		return nil, NewError(CodeInvalidTransition,
			fmt.Sprintf("cannot reject a booking in status %q", current.Status))
	}

	updated, err := s.Repo.ClearDecorator(ctx, bookingID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	s.Logger.Info("booking rejected back to pending-decorator",
		zap.String("bookingId", bookingID),
		zap.String("decorator", current.DecoratorEmail),
		zap.String("actor", actor.Email),
	)
	return updated, nil
}

// authorize gates transitions to administrators and the assigned decorator.
func (s *DefaultStatusService) authorize(b *models.Booking, actor models.Actor) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleDecorator:
		if b.DecoratorEmail == "" || b.DecoratorEmail != actor.Email {
			return NewError(CodeForbidden, "booking is not assigned to this decorator")
		}
		return nil
	default:
		return NewError(CodeForbidden, "only the assigned decorator or an administrator may change booking status")
	}
}

// checkReachable enforces the transition table. Entry into the work chain
// happens only through the assignment coordinator and the payment reconciler;
// inside the chain, movement is forward-only.
func (s *DefaultStatusService) checkReachable(from, to models.BookingStatus) error {
	fromIdx := chainIndex(from)
	toIdx := chainIndex(to)

	if fromIdx < 0 || toIdx < 0 {
		return NewError(CodeInvalidTransition,
			fmt.Sprintf("transition %s -> %s is not allowed", from, to))
	}
	if from == models.StatusCompleted {
		return NewError(CodeInvalidTransition, "booking is already completed")
	}
	if toIdx <= fromIdx {
		return NewError(CodeInvalidTransition,
			fmt.Sprintf("transition %s -> %s would move the booking backwards", from, to))
	}
	if s.StrictSequencing && toIdx != fromIdx+1 {
		return NewError(CodeInvalidTransition,
			fmt.Sprintf("transition %s -> %s skips %s", from, to, workChain[fromIdx+1]))
	}
	return nil
}

// checkDateGate blocks on-site statuses until the booking's calendar date,
// ignoring time-of-day.
func (s *DefaultStatusService) checkDateGate(b *models.Booking, target models.BookingStatus) error {
	if !dateGated[target] {
		return nil
	}

	bookingDate, err := time.Parse(models.BookingDateLayout, b.BookingDate)
	if err != nil {
		return NewError(CodePolicyViolation,
			fmt.Sprintf("booking %s has an invalid booking date %q", b.ID, b.BookingDate))
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(bookingDate) {
		return NewError(CodePolicyViolation, "status cannot be updated before the booking date")
	}
	return nil
}

func chainIndex(status models.BookingStatus) int {
	for i, s := range workChain {
		if s == status {
			return i
		}
	}
	return -1
}

// translateStoreErr maps repository outcomes onto domain errors.
func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrNotFound):
		return NewError(CodeNotFound, "booking not found")
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		return NewError(CodeConflict, "booking was modified concurrently, retry")
	case errors.Is(err, bookingRepo.ErrDecoratorBusy):
		return NewError(CodeConflict, "decorator already assigned on this date")
	default:
		return err
	}
}
