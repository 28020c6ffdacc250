package mongodb

import (
	"context"
	"fmt"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/services"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type carRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewCarRepository(db *mongo.Database, cache services.CacheService) interfaces.CarRepository {
	return &carRepository{
		collection: db.Collection("cars"),
		cache:      cache,
	}
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	if cached := r.getCachedCar(ctx, id); cached != nil {
		return cached, nil
	}

	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("car %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	r.cacheCar(ctx, &car)
	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, car *models.Car) error {
	car.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": car.ID}, car)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("car %s", car.ID.Hex())
	}

	r.invalidateCar(ctx, car.ID)
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NewNotFound("car %s", id.Hex())
	}

	r.invalidateCar(ctx, id)
	return nil
}

func (r *carRepository) Search(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	query := bson.M{}

	if filter != nil {
		if filter.Brand != "" {
			query["brand"] = bson.M{"$regex": filter.Brand, "$options": "i"}
		}
		if filter.Model != "" {
			query["model"] = bson.M{"$regex": filter.Model, "$options": "i"}
		}
		if filter.Category != "" {
			query["category"] = filter.Category
		}
		if filter.Transmission != "" {
			query["transmission"] = filter.Transmission
		}
		if filter.FuelType != "" {
			query["fuel_type"] = filter.FuelType
		}
		if filter.Seats > 0 {
			query["seats"] = bson.M{"$gte": filter.Seats}
		}
		if filter.MinDailyRate > 0 || filter.MaxDailyRate > 0 {
			rateFilter := bson.M{}
			if filter.MinDailyRate > 0 {
				rateFilter["$gte"] = filter.MinDailyRate
			}
			if filter.MaxDailyRate > 0 {
				rateFilter["$lte"] = filter.MaxDailyRate
			}
			query["daily_rate"] = rateFilter
		}
		if filter.LocationID != nil {
			query["location_id"] = *filter.LocationID
		}
		if filter.Status != nil {
			query["status"] = *filter.Status
		}
	}

	if params != nil && params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"brand", "model"})
		if len(searchFilter) > 0 {
			query = bson.M{"$and": []bson.M{query, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "daily_rate", Value: 1}})
	if params != nil {
		findOptions = params.GetSortOptions()
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search cars: %w", err)
	}
	defer cursor.Close(ctx)

	cars, err := decodeCars(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

func (r *carRepository) GetByLocation(ctx context.Context, locationID primitive.ObjectID) ([]*models.Car, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"location_id": locationID})
	if err != nil {
		return nil, fmt.Errorf("failed to get cars by location: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeCars(ctx, cursor)
}

func (r *carRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update car status: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("car %s", id.Hex())
	}

	r.invalidateCar(ctx, id)
	return nil
}

func (r *carRepository) getCachedCar(ctx context.Context, id primitive.ObjectID) *models.Car {
	if r.cache == nil {
		return nil
	}

	var car models.Car
	if err := r.cache.Get(ctx, carCacheKey(id), &car); err != nil {
		return nil
	}
	return &car
}

func (r *carRepository) cacheCar(ctx context.Context, car *models.Car) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, carCacheKey(car.ID), car, utils.CatalogCacheTTL)
}

func (r *carRepository) invalidateCar(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, carCacheKey(id))
}

func carCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("car:%s", id.Hex())
}

func decodeCars(ctx context.Context, cursor *mongo.Cursor) ([]*models.Car, error) {
	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}
