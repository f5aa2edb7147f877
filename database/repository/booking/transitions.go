// File: database/repository/booking/transitions.go
//
// Every transition here is a single FindOneAndUpdate whose filter encodes the
// expected pre-state. Two concurrent writers racing on the same booking can
// never both match, and the partial unique index on (decoratorId, bookingDate)
// closes the cross-document assignment race.
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

// UpdateStatus applies a status transition only if the stored status still
// equals from.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOrNotFound(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition booking %s: %w", id, err)
	}
	return &booking, nil
}

// AssignDecorator stamps the decorator onto a pending-decorator booking and
// moves it to decorator-assigned.
func (r *MongoBookingRepo) AssignDecorator(ctx context.Context, id string, ref models.DecoratorRef) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.StatusPendingDecorator}
	update := bson.M{"$set": bson.M{
		"decoratorId":    ref.DecoratorID,
		"decoratorName":  ref.DecoratorName,
		"decoratorEmail": ref.DecoratorEmail,
		"status":         models.StatusDecoratorAssigned,
		"updatedAt":      time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDecoratorBusy
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOrNotFound(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign decorator to booking %s: %w", id, err)
	}
	return &booking, nil
}

// ClearDecorator unsets the decorator fields and returns the booking to
// pending-decorator. Permitted from any busy status.
func (r *MongoBookingRepo) ClearDecorator(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	busy := bson.A{}
	for _, s := range models.BusyStatuses() {
		busy = append(busy, string(s))
	}

	filter := bson.M{"id": id, "status": bson.M{"$in": busy}}
	update := bson.M{
		"$unset": bson.M{
			"decoratorId":    "",
			"decoratorName":  "",
			"decoratorEmail": "",
		},
		"$set": bson.M{"status": models.StatusPendingDecorator, "updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOrNotFound(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clear decorator on booking %s: %w", id, err)
	}
	return &booking, nil
}

// MarkPaid moves a pending-payment booking to pending-decorator and records
// the paid payment status. Idempotent: when the transition already happened,
// the current document is returned with transitioned=false.
func (r *MongoBookingRepo) MarkPaid(ctx context.Context, id string) (*models.Booking, bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.StatusPendingPayment}
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentPaid,
		"status":        models.StatusPendingDecorator,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		current, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return nil, false, gerr
		}
		return current, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to mark booking %s paid: %w", id, err)
	}
	return &booking, true, nil
}
