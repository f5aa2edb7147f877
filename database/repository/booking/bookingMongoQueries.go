// File: database/repository/booking/bookingMongoQueries.go
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

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// listFilter builds the Mongo filter for a Query. Status and ExcludeStatuses
// compose into a single status clause rather than overwriting each other.
func listFilter(q Query) bson.M {
	filter := bson.M{}
	if q.ClientEmail != "" {
		filter["clientEmail"] = q.ClientEmail
	}
	if q.DecoratorEmail != "" {
		filter["decoratorEmail"] = q.DecoratorEmail
	}
	statusCond := bson.M{}
	if q.Status != "" {
		statusCond["$eq"] = string(q.Status)
	}
	if len(q.ExcludeStatuses) > 0 {
		excluded := bson.A{}
		for _, s := range q.ExcludeStatuses {
			excluded = append(excluded, string(s))
		}
		statusCond["$nin"] = excluded
	}
	if len(statusCond) > 0 {
		filter["status"] = statusCond
	}
	if q.BookingDate != "" {
		filter["bookingDate"] = q.BookingDate
	}
	return filter
}

// List returns bookings matching the typed query parameters.
func (r *MongoBookingRepo) List(ctx context.Context, q Query) ([]models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := listFilter(q)

	opts := options.Find()
	if q.SortByDate {
		opts.SetSort(bson.D{{Key: "bookingDate", Value: 1}})
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// FindScheduleConflict returns any other booking holding the decorator in a
// busy status on the given date.
func (r *MongoBookingRepo) FindScheduleConflict(ctx context.Context, decoratorID, bookingDate, excludeBookingID string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	busy := bson.A{}
	for _, s := range models.BusyStatuses() {
		busy = append(busy, string(s))
	}

	filter := bson.M{
		"decoratorId": decoratorID,
		"bookingDate": bookingDate,
		"status":      bson.M{"$in": busy},
	}
	if excludeBookingID != "" {
		filter["id"] = bson.M{"$ne": excludeBookingID}
	}

	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check decorator schedule: %w", err)
	}
	return &booking, nil
}
