package models

import "time"

// Payment is an immutable record of one successful charge. TransactionID is
// the gateway's payment-intent id and the sole idempotency key: at most one
// Payment per TransactionID ever exists.
type Payment struct {
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	BookingID     string    `bson:"bookingId" json:"bookingId"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	ServiceName   string    `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	BookingDate   string    `bson:"bookingDate,omitempty" json:"bookingDate,omitempty"`
	PaidAt        time.Time `bson:"paidAt" json:"paidAt"`
}
