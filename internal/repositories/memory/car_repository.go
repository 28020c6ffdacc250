package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type carRepository struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]*models.Car
}

func NewCarRepository() interfaces.CarRepository {
	return &carRepository{
		byID: make(map[primitive.ObjectID]*models.Car),
	}
}

func cloneCar(c *models.Car) *models.Car {
	clone := *c
	clone.Features = append([]string(nil), c.Features...)
	return &clone
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	car.ID = primitive.NewObjectID()
	r.byID[car.ID] = cloneCar(car)

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("car %s", id.Hex())
	}

	return cloneCar(car), nil
}

func (r *carRepository) Update(ctx context.Context, car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[car.ID]; !ok {
		return apperrors.NewNotFound("car %s", car.ID.Hex())
	}

	car.UpdatedAt = time.Now()
	r.byID[car.ID] = cloneCar(car)

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperrors.NewNotFound("car %s", id.Hex())
	}

	delete(r.byID, id)

	return nil
}

func matchesCarFilter(car *models.Car, filter *interfaces.CarFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Brand != "" && !strings.Contains(strings.ToLower(car.Brand), strings.ToLower(filter.Brand)) {
		return false
	}
	if filter.Model != "" && !strings.Contains(strings.ToLower(car.Model), strings.ToLower(filter.Model)) {
		return false
	}
	if filter.Category != "" && car.Category != filter.Category {
		return false
	}
	if filter.Transmission != "" && car.Transmission != filter.Transmission {
		return false
	}
	if filter.FuelType != "" && car.FuelType != filter.FuelType {
		return false
	}
	if filter.Seats > 0 && car.Seats < filter.Seats {
		return false
	}
	if filter.MinDailyRate > 0 && car.DailyRate < filter.MinDailyRate {
		return false
	}
	if filter.MaxDailyRate > 0 && car.DailyRate > filter.MaxDailyRate {
		return false
	}
	if filter.LocationID != nil && car.LocationID != *filter.LocationID {
		return false
	}
	if filter.Status != nil && car.Status != *filter.Status {
		return false
	}
	return true
}

func (r *carRepository) Search(ctx context.Context, filter *interfaces.CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Car
	for _, car := range r.byID {
		if !matchesCarFilter(car, filter) {
			continue
		}
		if params != nil && !matchesSearch(params.Search, car.Brand, car.Model) {
			continue
		}
		result = append(result, cloneCar(car))
	}

	sortStable(result, func(a, b *models.Car) bool {
		if a.DailyRate != b.DailyRate {
			return a.DailyRate < b.DailyRate
		}
		return a.ID.Hex() < b.ID.Hex()
	})

	total := int64(len(result))

	return paginate(result, params), total, nil
}

func (r *carRepository) GetByLocation(ctx context.Context, locationID primitive.ObjectID) ([]*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Car
	for _, car := range r.byID {
		if car.LocationID == locationID {
			result = append(result, cloneCar(car))
		}
	}

	return result, nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	car, ok := r.byID[id]
	if !ok {
		return apperrors.NewNotFound("car %s", id.Hex())
	}

	car.Status = status
	car.UpdatedAt = time.Now()

	return nil
}
