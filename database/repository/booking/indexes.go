package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries, plus
// the partial unique index that enforces one decorator per calendar date.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	busy := bson.A{}
	for _, s := range models.BusyStatuses() {
		busy = append(busy, string(s))
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientEmail", Value: 1}, {Key: "bookingDate", Value: 1}}},
		{Keys: bson.D{{Key: "decoratorEmail", Value: 1}, {Key: "status", Value: 1}}},
		// At most one busy booking per (decorator, date). The index only
		// covers documents in a busy status, so completed or rejected jobs
		// free the date again. Requires MongoDB 6.0+ for $in in partial
		// filter expressions.
		{
			Keys: bson.D{{Key: "decoratorId", Value: 1}, {Key: "bookingDate", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": busy}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
