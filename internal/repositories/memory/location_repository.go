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

type locationRepository struct {
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]*models.BranchLocation
	byCode map[string]primitive.ObjectID
}

func NewLocationRepository() interfaces.LocationRepository {
	return &locationRepository{
		byID:   make(map[primitive.ObjectID]*models.BranchLocation),
		byCode: make(map[string]primitive.ObjectID),
	}
}

func cloneLocation(l *models.BranchLocation) *models.BranchLocation {
	clone := *l
	return &clone
}

func (r *locationRepository) Create(ctx context.Context, location *models.BranchLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[location.Code]; exists {
		return apperrors.NewConflict("location code %s already exists", location.Code)
	}

	location.ID = primitive.NewObjectID()
	r.byID[location.ID] = cloneLocation(location)
	r.byCode[location.Code] = location.ID

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BranchLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	location, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("location %s", id.Hex())
	}

	return cloneLocation(location), nil
}

func (r *locationRepository) GetByCode(ctx context.Context, code string) (*models.BranchLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return nil, apperrors.NewNotFound("location %s", code)
	}

	return cloneLocation(r.byID[id]), nil
}

func (r *locationRepository) List(ctx context.Context) ([]*models.BranchLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.BranchLocation, 0, len(r.byID))
	for _, location := range r.byID {
		result = append(result, cloneLocation(location))
	}

	sortStable(result, func(a, b *models.BranchLocation) bool {
		return a.Name < b.Name
	})

	return result, nil
}

func (r *locationRepository) Update(ctx context.Context, location *models.BranchLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[location.ID]
	if !ok {
		return apperrors.NewNotFound("location %s", location.ID.Hex())
	}

	if existing.Code != location.Code {
		if _, exists := r.byCode[location.Code]; exists {
			return apperrors.NewConflict("location code %s already exists", location.Code)
		}
		delete(r.byCode, existing.Code)
		r.byCode[location.Code] = location.ID
	}

	location.UpdatedAt = time.Now()
	r.byID[location.ID] = cloneLocation(location)

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	location, ok := r.byID[id]
	if !ok {
		return apperrors.NewNotFound("location %s", id.Hex())
	}

	delete(r.byCode, location.Code)
	delete(r.byID, id)

	return nil
}
