package services

import (
	"context"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationService interface {
	List(ctx context.Context) ([]*models.BranchLocation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BranchLocation, error)
	Create(ctx context.Context, location *models.BranchLocation) (*models.BranchLocation, error)
	Update(ctx context.Context, location *models.BranchLocation) (*models.BranchLocation, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type locationService struct {
	locationRepo interfaces.LocationRepository
	carRepo      interfaces.CarRepository
	logger       *logger.Logger
}

func NewLocationService(locationRepo interfaces.LocationRepository, carRepo interfaces.CarRepository, log *logger.Logger) LocationService {
	return &locationService{
		locationRepo: locationRepo,
		carRepo:      carRepo,
		logger:       log,
	}
}

func (s *locationService) List(ctx context.Context) ([]*models.BranchLocation, error) {
	return s.locationRepo.List(ctx)
}

func (s *locationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BranchLocation, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) Create(ctx context.Context, location *models.BranchLocation) (*models.BranchLocation, error) {
	existing, err := s.locationRepo.GetByCode(ctx, location.Code)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("branch code %s is already in use", location.Code)
	}

	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	s.logger.WithField("branch_code", location.Code).Info("Branch location created")
	return location, nil
}

func (s *locationService) Update(ctx context.Context, location *models.BranchLocation) (*models.BranchLocation, error) {
	existing, err := s.locationRepo.GetByID(ctx, location.ID)
	if err != nil {
		return nil, err
	}

	location.CreatedAt = existing.CreatedAt
	location.UpdatedAt = time.Now().UTC()
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationService) Delete(ctx context.Context, id primitive.ObjectID) error {
	cars, err := s.carRepo.GetByLocation(ctx, id)
	if err != nil {
		return err
	}
	if len(cars) > 0 {
		return apperrors.NewConflict("branch still has %d cars assigned", len(cars))
	}

	return s.locationRepo.Delete(ctx, id)
}
