package models

import (
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPendingPayment    BookingStatus = "pending-payment"
	StatusPendingDecorator  BookingStatus = "pending-decorator"
	StatusDecoratorAssigned BookingStatus = "decorator-assigned"
	StatusMaterialsPrepared BookingStatus = "materials-prepared"
	StatusOnTheWay          BookingStatus = "on-the-way"
	StatusSetupInProgress   BookingStatus = "setup-in-progress"
	StatusCompleted         BookingStatus = "completed"
)

// Payment states of a booking.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// BookingDateLayout is the calendar-date format bookings are stored with.
// Time-of-day is not tracked.
const BookingDateLayout = "2006-01-02"

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPendingPayment, StatusPendingDecorator, StatusDecoratorAssigned,
		StatusMaterialsPrepared, StatusOnTheWay, StatusSetupInProgress, StatusCompleted:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

// BusyStatuses are the states in which a decorator is actively committed to a
// booking. A decorator holds at most one booking per date in any of these.
func BusyStatuses() []BookingStatus {
	return []BookingStatus{
		StatusDecoratorAssigned,
		StatusMaterialsPrepared,
		StatusOnTheWay,
		StatusSetupInProgress,
	}
}

// Busy reports whether s is one of the busy statuses.
func (s BookingStatus) Busy() bool {
	switch s {
	case StatusDecoratorAssigned, StatusMaterialsPrepared, StatusOnTheWay, StatusSetupInProgress:
		return true
	}
	return false
}

// Booking represents one decoration-service engagement.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	ClientEmail   string        `bson:"clientEmail" json:"clientEmail"`
	ServiceID     string        `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServiceName   string        `bson:"serviceName" json:"serviceName"`
	Category      string        `bson:"category" json:"category"`
	Location      string        `bson:"location" json:"location"`
	BookingDate   string        `bson:"bookingDate" json:"bookingDate"` // "YYYY-MM-DD"
	TotalCost     float64       `bson:"totalCost" json:"totalCost"`
	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus string        `bson:"paymentStatus" json:"paymentStatus"`

	// Decorator fields are all set or all absent; cleared together on reject.
	DecoratorID    string `bson:"decoratorId,omitempty" json:"decoratorId,omitempty"`
	DecoratorName  string `bson:"decoratorName,omitempty" json:"decoratorName,omitempty"`
	DecoratorEmail string `bson:"decoratorEmail,omitempty" json:"decoratorEmail,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DecoratorRef is the denormalized decorator identity stamped onto a booking
// when an assignment is made.
type DecoratorRef struct {
	DecoratorID    string
	DecoratorName  string
	DecoratorEmail string
}
