package interfaces

import (
	"context"

	"crms/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddOnRepository holds the bookable extras: additional services and
// equipment. GetServicesByIDs/GetEquipmentByIDs return an error for any id
// that does not resolve, so reservation creation can reject dangling ids.
type AddOnRepository interface {
	CreateService(ctx context.Context, service *models.AdditionalService) error
	GetServiceByID(ctx context.Context, id primitive.ObjectID) (*models.AdditionalService, error)
	GetServicesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.AdditionalService, error)
	ListServices(ctx context.Context) ([]*models.AdditionalService, error)
	UpdateService(ctx context.Context, service *models.AdditionalService) error
	DeleteService(ctx context.Context, id primitive.ObjectID) error

	CreateEquipment(ctx context.Context, equipment *models.Equipment) error
	GetEquipmentByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error)
	GetEquipmentByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Equipment, error)
	ListEquipment(ctx context.Context) ([]*models.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *models.Equipment) error
	DeleteEquipment(ctx context.Context, id primitive.ObjectID) error
}
