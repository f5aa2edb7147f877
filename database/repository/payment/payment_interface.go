package paymentRepo

import (
	"context"

	"styledecor/models"
)

// Query selects payments by typed parameters.
type Query struct {
	CustomerEmail string
	Page          int
	Limit         int
}

// PaymentRepository is the persistence abstraction over payment records.
// Payments are immutable; the only write is an insert-if-absent keyed on the
// gateway transaction id.
type PaymentRepository interface {
	// GetByTransactionID returns the payment for a transaction, or nil when
	// none exists.
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// InsertIfAbsent records the payment unless one with the same
	// transactionId already exists. Reports whether this call created it.
	InsertIfAbsent(ctx context.Context, payment *models.Payment) (bool, error)
	List(ctx context.Context, q Query) ([]models.Payment, error)
}
