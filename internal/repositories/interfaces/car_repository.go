package interfaces

import (
	"context"

	"crms/internal/models"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarFilter narrows fleet searches. Zero values mean "no constraint".
type CarFilter struct {
	Brand        string
	Model        string
	Category     models.CarCategory
	Transmission models.Transmission
	FuelType     models.FuelType
	Seats        int
	MinDailyRate float64
	MaxDailyRate float64
	LocationID   *primitive.ObjectID
	Status       *models.CarStatus
}

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	Search(ctx context.Context, filter *CarFilter, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetByLocation(ctx context.Context, locationID primitive.ObjectID) ([]*models.Car, error)

	// UpdateStatus writes the advisory display status only; it is never an
	// input to availability decisions.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CarStatus) error
}
