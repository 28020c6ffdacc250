package memory

import (
	"context"
	"sync"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addOnRepository struct {
	mu        sync.RWMutex
	services  map[primitive.ObjectID]*models.AdditionalService
	equipment map[primitive.ObjectID]*models.Equipment
}

func NewAddOnRepository() interfaces.AddOnRepository {
	return &addOnRepository{
		services:  make(map[primitive.ObjectID]*models.AdditionalService),
		equipment: make(map[primitive.ObjectID]*models.Equipment),
	}
}

func (r *addOnRepository) CreateService(ctx context.Context, service *models.AdditionalService) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	service.ID = primitive.NewObjectID()
	clone := *service
	r.services[service.ID] = &clone

	return nil
}

func (r *addOnRepository) GetServiceByID(ctx context.Context, id primitive.ObjectID) (*models.AdditionalService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, ok := r.services[id]
	if !ok {
		return nil, apperrors.NewNotFound("additional service %s", id.Hex())
	}

	clone := *service
	return &clone, nil
}

func (r *addOnRepository) GetServicesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.AdditionalService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.AdditionalService, 0, len(ids))
	for _, id := range ids {
		service, ok := r.services[id]
		if !ok {
			return nil, apperrors.NewNotFound("additional service %s", id.Hex())
		}
		clone := *service
		result = append(result, &clone)
	}

	return result, nil
}

func (r *addOnRepository) ListServices(ctx context.Context) ([]*models.AdditionalService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.AdditionalService, 0, len(r.services))
	for _, service := range r.services {
		clone := *service
		result = append(result, &clone)
	}

	sortStable(result, func(a, b *models.AdditionalService) bool {
		return a.Name < b.Name
	})

	return result, nil
}

func (r *addOnRepository) UpdateService(ctx context.Context, service *models.AdditionalService) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[service.ID]; !ok {
		return apperrors.NewNotFound("additional service %s", service.ID.Hex())
	}

	service.UpdatedAt = time.Now()
	clone := *service
	r.services[service.ID] = &clone

	return nil
}

func (r *addOnRepository) DeleteService(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return apperrors.NewNotFound("additional service %s", id.Hex())
	}

	delete(r.services, id)

	return nil
}

func (r *addOnRepository) CreateEquipment(ctx context.Context, equipment *models.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment.ID = primitive.NewObjectID()
	clone := *equipment
	r.equipment[equipment.ID] = &clone

	return nil
}

func (r *addOnRepository) GetEquipmentByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	equipment, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.NewNotFound("equipment %s", id.Hex())
	}

	clone := *equipment
	return &clone, nil
}

func (r *addOnRepository) GetEquipmentByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Equipment, 0, len(ids))
	for _, id := range ids {
		equipment, ok := r.equipment[id]
		if !ok {
			return nil, apperrors.NewNotFound("equipment %s", id.Hex())
		}
		clone := *equipment
		result = append(result, &clone)
	}

	return result, nil
}

func (r *addOnRepository) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Equipment, 0, len(r.equipment))
	for _, equipment := range r.equipment {
		clone := *equipment
		result = append(result, &clone)
	}

	sortStable(result, func(a, b *models.Equipment) bool {
		return a.Name < b.Name
	})

	return result, nil
}

func (r *addOnRepository) UpdateEquipment(ctx context.Context, equipment *models.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.equipment[equipment.ID]; !ok {
		return apperrors.NewNotFound("equipment %s", equipment.ID.Hex())
	}

	equipment.UpdatedAt = time.Now()
	clone := *equipment
	r.equipment[equipment.ID] = &clone

	return nil
}

func (r *addOnRepository) DeleteEquipment(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.equipment[id]; !ok {
		return apperrors.NewNotFound("equipment %s", id.Hex())
	}

	delete(r.equipment, id)

	return nil
}
