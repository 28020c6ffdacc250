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

type reservationRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewReservationRepository(db *mongo.Database, cache services.CacheService) interfaces.ReservationRepository {
	return &reservationRepository{
		collection: db.Collection("reservations"),
		cache:      cache,
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	reservation.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflict("reservation number %s already exists", reservation.ReservationNumber)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	// Cache active reservations for quick lookup
	if reservation.IsActive() {
		r.cacheReservation(ctx, reservation)
	}

	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	if reservation := r.getReservationFromCache(ctx, id.Hex()); reservation != nil {
		return reservation, nil
	}

	var reservation models.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("reservation %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.IsActive() {
		r.cacheReservation(ctx, &reservation)
	}

	return &reservation, nil
}

func (r *reservationRepository) GetByNumber(ctx context.Context, reservationNumber string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.collection.FindOne(ctx, bson.M{"reservation_number": reservationNumber}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("reservation %s", reservationNumber)
		}
		return nil, fmt.Errorf("failed to get reservation by number: %w", err)
	}

	return &reservation, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": reservation.ID}, reservation)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("reservation %s", reservation.ID.Hex())
	}

	r.invalidateReservationCache(ctx, reservation.ID.Hex())

	return nil
}

func (r *reservationRepository) FindActiveByCar(ctx context.Context, carID primitive.ObjectID) ([]*models.Reservation, error) {
	filter := bson.M{
		"car_id": carID,
		"status": models.ReservationStatusActive,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "pick_up_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find active reservations: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeReservations(ctx, cursor)
}

func (r *reservationRepository) FindByMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.Reservation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"member_id": memberID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find member reservations: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeReservations(ctx, cursor)
}

func (r *reservationRepository) FindByCar(ctx context.Context, carID primitive.ObjectID, status *models.ReservationStatus) ([]*models.Reservation, error) {
	filter := bson.M{"car_id": carID}
	if status != nil {
		filter["status"] = *status
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "pick_up_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find car reservations: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeReservations(ctx, cursor)
}

func (r *reservationRepository) List(ctx context.Context, status *models.ReservationStatus, params *utils.PaginationParams) ([]*models.Reservation, int64, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}

	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"reservation_number", "notes"})
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations, err := decodeReservations(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

func (r *reservationRepository) NextReservationNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < utils.ReservationNumberAttempts; attempt++ {
		candidate := utils.GenerateReservationNumber()

		count, err := r.collection.CountDocuments(ctx, bson.M{"reservation_number": candidate})
		if err != nil {
			return "", fmt.Errorf("failed to verify reservation number: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("failed to allocate a unique reservation number after %d attempts", utils.ReservationNumberAttempts)
}

func (r *reservationRepository) CountByStatus(ctx context.Context) (map[models.ReservationStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.ReservationStatus]int64)
	for cursor.Next(ctx) {
		var result struct {
			ID    models.ReservationStatus `bson:"_id"`
			Count int64                    `bson:"count"`
		}
		if err := cursor.Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[result.ID] = result.Count
	}

	return counts, nil
}

func (r *reservationRepository) CompletedRevenue(ctx context.Context, startDate, endDate time.Time) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": models.ReservationStatusCompleted,
			"pick_up_date": bson.M{
				"$gte": startDate,
				"$lte": endDate,
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"total_revenue": bson.M{"$sum": "$total_cost"},
			"total_count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get revenue stats: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		TotalRevenue float64 `bson:"total_revenue"`
		TotalCount   int64   `bson:"total_count"`
	}

	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("failed to decode revenue stats: %w", err)
		}
	}

	return result.TotalRevenue, result.TotalCount, nil
}

func decodeReservations(ctx context.Context, cursor *mongo.Cursor) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	for cursor.Next(ctx) {
		var reservation models.Reservation
		if err := cursor.Decode(&reservation); err != nil {
			return nil, fmt.Errorf("failed to decode reservation: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}

// Cache operations
func (r *reservationRepository) cacheReservation(ctx context.Context, reservation *models.Reservation) {
	if r.cache != nil {
		cacheKey := fmt.Sprintf("reservation:%s", reservation.ID.Hex())
		r.cache.Set(ctx, cacheKey, reservation, utils.ReservationCacheTTL)
	}
}

func (r *reservationRepository) getReservationFromCache(ctx context.Context, reservationID string) *models.Reservation {
	if r.cache == nil {
		return nil
	}

	cacheKey := fmt.Sprintf("reservation:%s", reservationID)
	var reservation models.Reservation
	if err := r.cache.Get(ctx, cacheKey, &reservation); err != nil {
		return nil
	}

	return &reservation
}

func (r *reservationRepository) invalidateReservationCache(ctx context.Context, reservationID string) {
	if r.cache != nil {
		cacheKey := fmt.Sprintf("reservation:%s", reservationID)
		r.cache.Delete(ctx, cacheKey)
	}
}
