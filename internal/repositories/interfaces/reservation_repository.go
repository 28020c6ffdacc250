package interfaces

import (
	"context"
	"time"

	"crms/internal/models"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReservationRepository owns durable reservation storage. The lifecycle
// service is its only writer; reservations are never physically deleted.
type ReservationRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	GetByNumber(ctx context.Context, reservationNumber string) (*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error

	// Availability queries. FindActiveByCar must return a current snapshot
	// of the car's active reservations; callers hold the per-car lock while
	// deciding availability on top of it.
	FindActiveByCar(ctx context.Context, carID primitive.ObjectID) ([]*models.Reservation, error)

	// Listing queries
	FindByMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.Reservation, error)
	FindByCar(ctx context.Context, carID primitive.ObjectID, status *models.ReservationStatus) ([]*models.Reservation, error)
	List(ctx context.Context, status *models.ReservationStatus, params *utils.PaginationParams) ([]*models.Reservation, int64, error)

	// NextReservationNumber returns a human-readable number guaranteed
	// unused at the time of the call.
	NextReservationNumber(ctx context.Context) (string, error)

	// Reporting
	CountByStatus(ctx context.Context) (map[models.ReservationStatus]int64, error)
	CompletedRevenue(ctx context.Context, startDate, endDate time.Time) (float64, int64, error)
}
