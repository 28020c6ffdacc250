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

type addOnRepository struct {
	services  *mongo.Collection
	equipment *mongo.Collection
}

func NewAddOnRepository(db *mongo.Database) interfaces.AddOnRepository {
	return &addOnRepository{
		services:  db.Collection("additional_services"),
		equipment: db.Collection("equipment"),
	}
}

func (r *addOnRepository) CreateService(ctx context.Context, service *models.AdditionalService) error {
	service.ID = primitive.NewObjectID()

	_, err := r.services.InsertOne(ctx, service)
	if err != nil {
		return fmt.Errorf("failed to create additional service: %w", err)
	}

	return nil
}

func (r *addOnRepository) GetServiceByID(ctx context.Context, id primitive.ObjectID) (*models.AdditionalService, error) {
	var service models.AdditionalService
	err := r.services.FindOne(ctx, bson.M{"_id": id}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("additional service %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get additional service: %w", err)
	}

	return &service, nil
}

func (r *addOnRepository) GetServicesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.AdditionalService, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.services.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get additional services: %w", err)
	}
	defer cursor.Close(ctx)

	found := make(map[primitive.ObjectID]*models.AdditionalService, len(ids))
	for cursor.Next(ctx) {
		var service models.AdditionalService
		if err := cursor.Decode(&service); err != nil {
			return nil, fmt.Errorf("failed to decode additional service: %w", err)
		}
		s := service
		found[s.ID] = &s
	}

	result := make([]*models.AdditionalService, 0, len(ids))
	for _, id := range ids {
		service, ok := found[id]
		if !ok {
			return nil, apperrors.NewNotFound("additional service %s", id.Hex())
		}
		result = append(result, service)
	}

	return result, nil
}

func (r *addOnRepository) ListServices(ctx context.Context) ([]*models.AdditionalService, error) {
	cursor, err := r.services.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list additional services: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*models.AdditionalService
	for cursor.Next(ctx) {
		var service models.AdditionalService
		if err := cursor.Decode(&service); err != nil {
			return nil, fmt.Errorf("failed to decode additional service: %w", err)
		}
		result = append(result, &service)
	}

	return result, nil
}

func (r *addOnRepository) UpdateService(ctx context.Context, service *models.AdditionalService) error {
	service.UpdatedAt = time.Now()

	result, err := r.services.ReplaceOne(ctx, bson.M{"_id": service.ID}, service)
	if err != nil {
		return fmt.Errorf("failed to update additional service: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("additional service %s", service.ID.Hex())
	}

	return nil
}

func (r *addOnRepository) DeleteService(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.services.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete additional service: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NewNotFound("additional service %s", id.Hex())
	}

	return nil
}

func (r *addOnRepository) CreateEquipment(ctx context.Context, equipment *models.Equipment) error {
	equipment.ID = primitive.NewObjectID()

	_, err := r.equipment.InsertOne(ctx, equipment)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	return nil
}

func (r *addOnRepository) GetEquipmentByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.equipment.FindOne(ctx, bson.M{"_id": id}).Decode(&equipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("equipment %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return &equipment, nil
}

func (r *addOnRepository) GetEquipmentByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Equipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.equipment.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	defer cursor.Close(ctx)

	found := make(map[primitive.ObjectID]*models.Equipment, len(ids))
	for cursor.Next(ctx) {
		var equipment models.Equipment
		if err := cursor.Decode(&equipment); err != nil {
			return nil, fmt.Errorf("failed to decode equipment: %w", err)
		}
		e := equipment
		found[e.ID] = &e
	}

	result := make([]*models.Equipment, 0, len(ids))
	for _, id := range ids {
		equipment, ok := found[id]
		if !ok {
			return nil, apperrors.NewNotFound("equipment %s", id.Hex())
		}
		result = append(result, equipment)
	}

	return result, nil
}

func (r *addOnRepository) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	cursor, err := r.equipment.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*models.Equipment
	for cursor.Next(ctx) {
		var equipment models.Equipment
		if err := cursor.Decode(&equipment); err != nil {
			return nil, fmt.Errorf("failed to decode equipment: %w", err)
		}
		result = append(result, &equipment)
	}

	return result, nil
}

func (r *addOnRepository) UpdateEquipment(ctx context.Context, equipment *models.Equipment) error {
	equipment.UpdatedAt = time.Now()

	result, err := r.equipment.ReplaceOne(ctx, bson.M{"_id": equipment.ID}, equipment)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("equipment %s", equipment.ID.Hex())
	}

	return nil
}

func (r *addOnRepository) DeleteEquipment(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.equipment.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NewNotFound("equipment %s", id.Hex())
	}

	return nil
}
