package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "styledecor/database/repository/booking"
	paymentRepo "styledecor/database/repository/payment"
	"styledecor/models"

	"go.uber.org/zap"
)

// DefaultReconcileService turns a gateway's asynchronous payment confirmation
// into a durable, exactly-once state change. Reconcile is idempotent: the
// booking transition is a compare-and-swap and the payment row an
// insert-if-absent keyed on the gateway transaction id, so replays and
// concurrent duplicate deliveries settle to a single applied outcome.
type DefaultReconcileService struct {
	Gateway  PaymentGateway
	Bookings bookingRepo.BookingRepository
	Payments paymentRepo.PaymentRepository
	Logger   *zap.Logger
}

// Reconcile processes the checkout session with the given id.
func (s *DefaultReconcileService) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	session, err := s.Gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		// Transient gateway failures are safe to retry end to end.
		return nil, NewGatewayError("failed to retrieve checkout session", err)
	}

	transactionID := session.PaymentIntentID
	if transactionID != "" {
		existing, err := s.Payments.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result := &ReconcileResult{AlreadyProcessed: true, Payment: existing}
			if b, gerr := s.Bookings.GetByID(ctx, existing.BookingID); gerr == nil {
				result.Booking = b
			}
			return result, nil
		}
	}

	// Abandoned or still-pending sessions record nothing.
	if session.PaymentStatus != SessionPaid {
		return &ReconcileResult{}, nil
	}

	// A settled session always carries a payment intent. Without one the
	// payment row could not be keyed, so refuse rather than record a charge
	// that later deliveries would misread as a duplicate.
	if transactionID == "" {
		return nil, NewGatewayError("checkout session is missing a payment intent", nil)
	}

	bookingID := session.Metadata["bookingId"]
	if bookingID == "" {
		return nil, NewGatewayError("checkout session is missing booking metadata", nil)
	}

	// Booking first, payment second: if a crash lands between the two, a
	// retried reconcile finds no payment row, the CAS no-ops, and the upsert
	// completes the pair.
	updated, transitioned, err := s.Bookings.MarkPaid(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "booking referenced by the payment session not found")
		}
		return nil, err
	}

	payment := &models.Payment{
		TransactionID: transactionID,
		BookingID:     bookingID,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		CustomerEmail: session.CustomerEmail,
		ServiceName:   session.Metadata["serviceName"],
		Location:      session.Metadata["location"],
		BookingDate:   session.Metadata["bookingDate"],
		PaidAt:        time.Now(),
	}

	created, err := s.Payments.InsertIfAbsent(ctx, payment)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the race to a concurrent reconciliation of the same session.
		if stored, gerr := s.Payments.GetByTransactionID(ctx, transactionID); gerr == nil && stored != nil {
			payment = stored
		}
	}

	if created && transitioned {
		s.Logger.Info("payment reconciled",
			zap.String("bookingId", bookingID),
			zap.String("transactionId", transactionID),
			zap.Float64("amount", payment.Amount),
		)
	}

	return &ReconcileResult{
		AlreadyProcessed: !created,
		Booking:          updated,
		Payment:          payment,
	}, nil
}
