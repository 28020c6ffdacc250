package mongodb

import (
	"context"
	"fmt"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type locationRepository struct {
	collection *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) interfaces.LocationRepository {
	return &locationRepository{
		collection: db.Collection("locations"),
	}
}

func (r *locationRepository) Create(ctx context.Context, location *models.BranchLocation) error {
	location.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, location)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflict("location code %s already exists", location.Code)
		}
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BranchLocation, error) {
	var location models.BranchLocation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("location %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

func (r *locationRepository) GetByCode(ctx context.Context, code string) (*models.BranchLocation, error) {
	var location models.BranchLocation
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("location %s", code)
		}
		return nil, fmt.Errorf("failed to get location by code: %w", err)
	}

	return &location, nil
}

func (r *locationRepository) List(ctx context.Context) ([]*models.BranchLocation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.BranchLocation
	for cursor.Next(ctx) {
		var location models.BranchLocation
		if err := cursor.Decode(&location); err != nil {
			return nil, fmt.Errorf("failed to decode location: %w", err)
		}
		locations = append(locations, &location)
	}

	return locations, nil
}

func (r *locationRepository) Update(ctx context.Context, location *models.BranchLocation) error {
	location.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": location.ID}, location)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("location %s", location.ID.Hex())
	}

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NewNotFound("location %s", id.Hex())
	}

	return nil
}
