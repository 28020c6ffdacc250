package interfaces

import (
	"context"

	"crms/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationRepository interface {
	Create(ctx context.Context, location *models.BranchLocation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BranchLocation, error)
	GetByCode(ctx context.Context, code string) (*models.BranchLocation, error)
	List(ctx context.Context) ([]*models.BranchLocation, error)
	Update(ctx context.Context, location *models.BranchLocation) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
