// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// UpdateDetails applies client edits, accepted only while the booking is
// still pending payment.
func (r *MongoBookingRepo) UpdateDetails(ctx context.Context, id string, fields UpdateFields) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if fields.BookingDate != nil {
		set["bookingDate"] = *fields.BookingDate
	}
	if fields.Location != nil {
		set["location"] = *fields.Location
	}

	filter := bson.M{"id": id, "status": models.StatusPendingPayment}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOrNotFound(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return &booking, nil
}

// Delete removes a booking while it is still pending payment.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "status": models.StatusPendingPayment})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return r.missOrNotFound(ctx, id)
	}
	return nil
}

// missOrNotFound disambiguates a conditional-write miss: either the booking
// is gone, or it exists in a status the filter excluded.
func (r *MongoBookingRepo) missOrNotFound(ctx context.Context, id string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to look up booking %s: %w", id, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrStaleStatus
}
