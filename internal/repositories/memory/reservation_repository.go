package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reservationRepository struct {
	mu       sync.RWMutex
	byID     map[primitive.ObjectID]*models.Reservation
	byNumber map[string]primitive.ObjectID
}

func NewReservationRepository() interfaces.ReservationRepository {
	return &reservationRepository{
		byID:     make(map[primitive.ObjectID]*models.Reservation),
		byNumber: make(map[string]primitive.ObjectID),
	}
}

func cloneReservation(r *models.Reservation) *models.Reservation {
	clone := *r
	clone.ServiceIDs = append([]primitive.ObjectID(nil), r.ServiceIDs...)
	clone.EquipmentIDs = append([]primitive.ObjectID(nil), r.EquipmentIDs...)
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		clone.CompletedAt = &t
	}
	if r.CancelledAt != nil {
		t := *r.CancelledAt
		clone.CancelledAt = &t
	}
	return &clone
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[reservation.ReservationNumber]; exists {
		return apperrors.NewConflict("reservation number %s already exists", reservation.ReservationNumber)
	}

	reservation.ID = primitive.NewObjectID()
	r.byID[reservation.ID] = cloneReservation(reservation)
	r.byNumber[reservation.ReservationNumber] = reservation.ID

	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("reservation %s", id.Hex())
	}

	return cloneReservation(reservation), nil
}

func (r *reservationRepository) GetByNumber(ctx context.Context, reservationNumber string) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[reservationNumber]
	if !ok {
		return nil, apperrors.NewNotFound("reservation %s", reservationNumber)
	}

	return cloneReservation(r.byID[id]), nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[reservation.ID]; !ok {
		return apperrors.NewNotFound("reservation %s", reservation.ID.Hex())
	}

	r.byID[reservation.ID] = cloneReservation(reservation)

	return nil
}

func (r *reservationRepository) FindActiveByCar(ctx context.Context, carID primitive.ObjectID) ([]*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Reservation
	for _, reservation := range r.byID {
		if reservation.CarID == carID && reservation.IsActive() {
			result = append(result, cloneReservation(reservation))
		}
	}

	sortStable(result, func(a, b *models.Reservation) bool {
		return a.PickUpDate.Before(b.PickUpDate)
	})

	return result, nil
}

func (r *reservationRepository) FindByMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Reservation
	for _, reservation := range r.byID {
		if reservation.MemberID == memberID {
			result = append(result, cloneReservation(reservation))
		}
	}

	sortStable(result, func(a, b *models.Reservation) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})

	return result, nil
}

func (r *reservationRepository) FindByCar(ctx context.Context, carID primitive.ObjectID, status *models.ReservationStatus) ([]*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Reservation
	for _, reservation := range r.byID {
		if reservation.CarID != carID {
			continue
		}
		if status != nil && reservation.Status != *status {
			continue
		}
		result = append(result, cloneReservation(reservation))
	}

	sortStable(result, func(a, b *models.Reservation) bool {
		return a.PickUpDate.After(b.PickUpDate)
	})

	return result, nil
}

func (r *reservationRepository) List(ctx context.Context, status *models.ReservationStatus, params *utils.PaginationParams) ([]*models.Reservation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Reservation
	for _, reservation := range r.byID {
		if status != nil && reservation.Status != *status {
			continue
		}
		if params != nil && !matchesSearch(params.Search, reservation.ReservationNumber, reservation.Notes) {
			continue
		}
		result = append(result, cloneReservation(reservation))
	}

	sortStable(result, func(a, b *models.Reservation) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := int64(len(result))

	return paginate(result, params), total, nil
}

func (r *reservationRepository) NextReservationNumber(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for attempt := 0; attempt < utils.ReservationNumberAttempts; attempt++ {
		candidate := utils.GenerateReservationNumber()
		if _, exists := r.byNumber[candidate]; !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("failed to allocate a unique reservation number after %d attempts", utils.ReservationNumberAttempts)
}

func (r *reservationRepository) CountByStatus(ctx context.Context) (map[models.ReservationStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.ReservationStatus]int64)
	for _, reservation := range r.byID {
		counts[reservation.Status]++
	}

	return counts, nil
}

func (r *reservationRepository) CompletedRevenue(ctx context.Context, startDate, endDate time.Time) (float64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var revenue float64
	var count int64
	for _, reservation := range r.byID {
		if reservation.Status != models.ReservationStatusCompleted {
			continue
		}
		if reservation.PickUpDate.Before(startDate) || reservation.PickUpDate.After(endDate) {
			continue
		}
		revenue += reservation.TotalCost
		count++
	}

	return revenue, count, nil
}
