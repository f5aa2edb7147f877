package decoratorRepo

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

// MongoDecoratorRepo implements DecoratorRepository using MongoDB.
type MongoDecoratorRepo struct {
	coll *mongo.Collection
}

// NewMongoDecoratorRepo creates a new instance of DecoratorRepository using MongoDB.
func NewMongoDecoratorRepo() DecoratorRepository {
	coll := database.DB().Collection("decorators")
	repo := &MongoDecoratorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create decorator indexes: %v\n", err)
	}
	return repo
}

func (r *MongoDecoratorRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One profile per user account.
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ratings", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CreateIfAbsent inserts the profile unless one exists for the same userId.
func (r *MongoDecoratorRepo) CreateIfAbsent(ctx context.Context, decorator *models.Decorator) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	decorator.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, decorator)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create decorator: %w", err)
	}
	return true, nil
}

// GetByID retrieves a decorator by its unique ID.
func (r *MongoDecoratorRepo) GetByID(ctx context.Context, id string) (*models.Decorator, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var decorator models.Decorator
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&decorator)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch decorator %s: %w", id, err)
	}
	return &decorator, nil
}

// List returns decorators matching the filter.
func (r *MongoDecoratorRepo) List(ctx context.Context, f Filter) ([]models.Decorator, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.ApproveStatus != "" {
		filter["approveStatus"] = f.ApproveStatus
	}
	if f.WorkStatus != "" {
		filter["workStatus"] = f.WorkStatus
	}
	if f.Location != "" {
		filter["location"] = f.Location
	}
	if f.Specialty != "" {
		filter["specialties"] = bson.M{"$in": bson.A{f.Specialty}}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list decorators: %w", err)
	}
	defer cursor.Close(ctx)

	var decorators []models.Decorator
	if err := cursor.All(ctx, &decorators); err != nil {
		return nil, fmt.Errorf("failed to decode decorators: %w", err)
	}
	return decorators, nil
}

// Top returns the highest-rated decorators.
func (r *MongoDecoratorRepo) Top(ctx context.Context, limit int) ([]models.Decorator, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "ratings", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list top decorators: %w", err)
	}
	defer cursor.Close(ctx)

	var decorators []models.Decorator
	if err := cursor.All(ctx, &decorators); err != nil {
		return nil, fmt.Errorf("failed to decode decorators: %w", err)
	}
	return decorators, nil
}

// Approve marks the decorator approved and available with the supplied profile.
func (r *MongoDecoratorRepo) Approve(ctx context.Context, id string, info ApprovalInfo) error {
	update := bson.M{"$set": bson.M{
		"approveStatus": models.ApproveApproved,
		"workStatus":    models.WorkAvailable,
		"location":      info.Location,
		"ratings":       info.Ratings,
		"specialties":   info.Specialties,
	}}
	return r.updateOne(ctx, id, update)
}

// Reject marks the decorator rejected and clears the profile fields.
func (r *MongoDecoratorRepo) Reject(ctx context.Context, id string) error {
	update := bson.M{
		"$set": bson.M{"approveStatus": models.ApproveRejected},
		"$unset": bson.M{
			"workStatus":  "",
			"location":    "",
			"ratings":     "",
			"specialties": "",
		},
	}
	return r.updateOne(ctx, id, update)
}

// SetWorkStatus enables or disables an approved decorator.
func (r *MongoDecoratorRepo) SetWorkStatus(ctx context.Context, id, workStatus string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"workStatus": workStatus}})
}

// Delete removes the profile and returns the removed document.
func (r *MongoDecoratorRepo) Delete(ctx context.Context, id string) (*models.Decorator, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var decorator models.Decorator
	err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&decorator)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete decorator %s: %w", id, err)
	}
	return &decorator, nil
}

func (r *MongoDecoratorRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update decorator %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
