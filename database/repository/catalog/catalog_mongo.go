package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	coll := database.DB().Collection("services")
	repo := &MongoCatalogRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "cost", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new catalog entry.
func (r *MongoCatalogRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// GetByID retrieves a catalog entry by its unique ID.
func (r *MongoCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &service, nil
}

// List returns catalog entries matching the filter.
func (r *MongoCatalogRepo) List(ctx context.Context, f Filter) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.SearchText != "" {
		filter["serviceName"] = bson.M{"$regex": f.SearchText, "$options": "i"}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.MinBudget > 0 || f.MaxBudget > 0 {
		cost := bson.M{}
		if f.MinBudget > 0 {
			cost["$gte"] = f.MinBudget
		}
		if f.MaxBudget > 0 {
			cost["$lte"] = f.MaxBudget
		}
		filter["cost"] = cost
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// Update applies admin edits to a catalog entry.
func (r *MongoCatalogRepo) Update(ctx context.Context, id string, update ServiceUpdate) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if update.ServiceName != nil {
		set["serviceName"] = *update.ServiceName
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Cost != nil {
		set["cost"] = *update.Cost
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.PhotoURL != nil {
		set["photoURL"] = *update.PhotoURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var service models.Service
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service %s: %w", id, err)
	}
	return &service, nil
}

// Delete removes a catalog entry.
func (r *MongoCatalogRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
