package services

import (
	"context"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"
	"crms/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarSearchInput is CarFilter plus an optional date range; cars already
// booked inside the range are filtered out of the results.
type CarSearchInput struct {
	Filter      interfaces.CarFilter
	PickUpDate  *time.Time
	DropOffDate *time.Time
}

// CarService covers fleet browsing for members and fleet management for
// staff. Booking-date filtering re-derives availability from the
// reservation set, never from the cached car status.
type CarService interface {
	Search(ctx context.Context, input *CarSearchInput, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) (*models.Car, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) (*models.Car, error)
}

type carService struct {
	carRepo         interfaces.CarRepository
	locationRepo    interfaces.LocationRepository
	reservationRepo interfaces.ReservationRepository
	logger          *logger.Logger
}

func NewCarService(
	carRepo interfaces.CarRepository,
	locationRepo interfaces.LocationRepository,
	reservationRepo interfaces.ReservationRepository,
	log *logger.Logger,
) CarService {
	return &carService{
		carRepo:         carRepo,
		locationRepo:    locationRepo,
		reservationRepo: reservationRepo,
		logger:          log,
	}
}

func (s *carService) Search(ctx context.Context, input *CarSearchInput, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	if input.PickUpDate == nil || input.DropOffDate == nil {
		return s.carRepo.Search(ctx, &input.Filter, params)
	}

	pickUp := utils.NormalizeDate(*input.PickUpDate)
	dropOff := utils.NormalizeDate(*input.DropOffDate)
	if !pickUp.Before(dropOff) {
		return nil, 0, apperrors.NewInvalidInput("pick-up date must be before drop-off date")
	}

	// The date cut happens after the query, so fetch the whole filter
	// match and page the bookable cars here. Total counts bookable cars
	// only, which keeps the pagination meta honest.
	cars, _, err := s.carRepo.Search(ctx, &input.Filter, params.Unpaged())
	if err != nil {
		return nil, 0, err
	}

	available := make([]*models.Car, 0, len(cars))
	for _, car := range cars {
		active, err := s.reservationRepo.FindActiveByCar(ctx, car.ID)
		if err != nil {
			return nil, 0, err
		}
		if CarAvailable(pickUp, dropOff, active, primitive.NilObjectID) {
			available = append(available, car)
		}
	}

	total := int64(len(available))
	if params == nil {
		return available, total, nil
	}

	skip := params.GetSkip()
	if skip >= len(available) {
		return []*models.Car{}, total, nil
	}
	end := skip + params.GetLimit()
	if end > len(available) {
		end = len(available)
	}
	return available[skip:end], total, nil
}

func (s *carService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := validateDailyRate(car.DailyRate); err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, car.LocationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	if car.Status == "" {
		car.Status = models.CarStatusAvailable
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	s.logger.WithCarID(car.ID).Info("Car added to fleet")
	return car, nil
}

func (s *carService) Update(ctx context.Context, car *models.Car) (*models.Car, error) {
	existing, err := s.carRepo.GetByID(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	if err := validateDailyRate(car.DailyRate); err != nil {
		return nil, err
	}
	if car.LocationID != existing.LocationID {
		if _, err := s.locationRepo.GetByID(ctx, car.LocationID); err != nil {
			return nil, err
		}
	}

	car.CreatedAt = existing.CreatedAt
	car.UpdatedAt = time.Now().UTC()
	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) Delete(ctx context.Context, id primitive.ObjectID) error {
	active, err := s.reservationRepo.FindActiveByCar(ctx, id)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return apperrors.NewConflict("car has %d active reservations and cannot be removed", len(active))
	}

	return s.carRepo.Delete(ctx, id)
}

func validateDailyRate(rate float64) error {
	if rate < utils.MinDailyRate || rate > utils.MaxDailyRate {
		return apperrors.NewInvalidInput("daily rate must be between %.2f and %.2f", utils.MinDailyRate, utils.MaxDailyRate)
	}
	return nil
}

func (s *carService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.carRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	car.Status = status
	car.UpdatedAt = time.Now().UTC()
	return car, nil
}
