package locationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo constructs a new instance of MongoLocationRepo.
func NewMongoLocationRepo() LocationRepository {
	coll := database.DB().Collection("locations")
	repo := &MongoLocationRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		fmt.Printf("failed to create location indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new location document.
func (r *MongoLocationRepo) Create(ctx context.Context, loc *models.Location) error {
	if _, err := r.coll.InsertOne(ctx, loc); err != nil {
		return fmt.Errorf("insert location failed: %w", err)
	}
	return nil
}

// GetByID retrieves a location document by ID.
func (r *MongoLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&loc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching location %s: %w", id, err)
	}
	return &loc, nil
}

func (r *MongoLocationRepo) list(ctx context.Context, filter bson.M) ([]models.Location, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing locations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Location
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding locations: %w", err)
	}
	return out, nil
}

// List retrieves all locations.
func (r *MongoLocationRepo) List(ctx context.Context) ([]models.Location, error) {
	return r.list(ctx, bson.M{})
}

// ListByOwner retrieves all locations owned by a host.
func (r *MongoLocationRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Location, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}
