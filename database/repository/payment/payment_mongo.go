package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.DB().Collection("paymentDetails")
	repo := &MongoPaymentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// The transaction id is the sole idempotency key: at most one payment
		// per transaction can ever exist.
		{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerEmail", Value: 1}, {Key: "paidAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByTransactionID returns the payment for a transaction, or nil when none
// exists.
func (r *MongoPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", transactionID, err)
	}
	return &payment, nil
}

// InsertIfAbsent records the payment with an upsert that only writes on
// insert, so a concurrent duplicate reconciliation is a no-op rather than a
// second row.
func (r *MongoPaymentRepo) InsertIfAbsent(ctx context.Context, payment *models.Payment) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"transactionId": payment.TransactionID}
	update := bson.M{"$setOnInsert": payment}
	opts := options.Update().SetUpsert(true)

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the upsert race to a concurrent reconciliation.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to record payment %s: %w", payment.TransactionID, err)
	}
	return res.UpsertedCount == 1, nil
}

// List returns payments sorted by paidAt descending, paginated.
func (r *MongoPaymentRepo) List(ctx context.Context, q Query) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.CustomerEmail != "" {
		filter["customerEmail"] = q.CustomerEmail
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "paidAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}
