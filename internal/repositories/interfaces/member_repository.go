package interfaces

import (
	"context"

	"crms/internal/models"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error)
	Update(ctx context.Context, member *models.Member) error
}
