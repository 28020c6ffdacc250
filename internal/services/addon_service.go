package services

import (
	"context"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddOnService manages the bookable extras catalog.
type AddOnService interface {
	ListServices(ctx context.Context) ([]*models.AdditionalService, error)
	CreateService(ctx context.Context, service *models.AdditionalService) (*models.AdditionalService, error)
	UpdateService(ctx context.Context, service *models.AdditionalService) (*models.AdditionalService, error)
	DeleteService(ctx context.Context, id primitive.ObjectID) error

	ListEquipment(ctx context.Context) ([]*models.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error)
	DeleteEquipment(ctx context.Context, id primitive.ObjectID) error
}

type addOnService struct {
	addOnRepo interfaces.AddOnRepository
}

func NewAddOnService(addOnRepo interfaces.AddOnRepository) AddOnService {
	return &addOnService{addOnRepo: addOnRepo}
}

func (s *addOnService) ListServices(ctx context.Context) ([]*models.AdditionalService, error) {
	return s.addOnRepo.ListServices(ctx)
}

func (s *addOnService) CreateService(ctx context.Context, service *models.AdditionalService) (*models.AdditionalService, error) {
	if service.DailyPrice <= 0 {
		return nil, apperrors.NewInvalidInput("daily price must be positive")
	}

	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now

	if err := s.addOnRepo.CreateService(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *addOnService) UpdateService(ctx context.Context, service *models.AdditionalService) (*models.AdditionalService, error) {
	existing, err := s.addOnRepo.GetServiceByID(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	if service.DailyPrice <= 0 {
		return nil, apperrors.NewInvalidInput("daily price must be positive")
	}

	service.CreatedAt = existing.CreatedAt
	service.UpdatedAt = time.Now().UTC()
	if err := s.addOnRepo.UpdateService(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *addOnService) DeleteService(ctx context.Context, id primitive.ObjectID) error {
	return s.addOnRepo.DeleteService(ctx, id)
}

func (s *addOnService) ListEquipment(ctx context.Context) ([]*models.Equipment, error) {
	return s.addOnRepo.ListEquipment(ctx)
}

func (s *addOnService) CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	if equipment.DailyPrice <= 0 {
		return nil, apperrors.NewInvalidInput("daily price must be positive")
	}

	now := time.Now().UTC()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	if err := s.addOnRepo.CreateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *addOnService) UpdateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	existing, err := s.addOnRepo.GetEquipmentByID(ctx, equipment.ID)
	if err != nil {
		return nil, err
	}
	if equipment.DailyPrice <= 0 {
		return nil, apperrors.NewInvalidInput("daily price must be positive")
	}

	equipment.CreatedAt = existing.CreatedAt
	equipment.UpdatedAt = time.Now().UTC()
	if err := s.addOnRepo.UpdateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *addOnService) DeleteEquipment(ctx context.Context, id primitive.ObjectID) error {
	return s.addOnRepo.DeleteEquipment(ctx, id)
}
