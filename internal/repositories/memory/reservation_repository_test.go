package memory

import (
	"context"
	"testing"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedReservation(t *testing.T, repo *reservationRepository, number string, carID primitive.ObjectID, status models.ReservationStatus, pickUp, dropOff time.Time, cost float64) *models.Reservation {
	t.Helper()
	reservation := &models.Reservation{
		ReservationNumber: number,
		MemberID:          primitive.NewObjectID(),
		CarID:             carID,
		PickUpDate:        pickUp,
		DropOffDate:       dropOff,
		Status:            status,
		TotalCost:         cost,
		CreatedAt:         time.Now(),
	}
	if err := repo.Create(context.Background(), reservation); err != nil {
		t.Fatalf("Create(%s) error = %v", number, err)
	}
	return reservation
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestReservationRepositoryRoundTrip(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)
	ctx := context.Background()

	carID := primitive.NewObjectID()
	created := seedReservation(t, repo, "RSV-AAAA2222", carID, models.ReservationStatusActive, day(1), day(4), 135)

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.ReservationNumber != "RSV-AAAA2222" {
		t.Errorf("number = %q", byID.ReservationNumber)
	}

	byNumber, err := repo.GetByNumber(ctx, "RSV-AAAA2222")
	if err != nil {
		t.Fatalf("GetByNumber() error = %v", err)
	}
	if byNumber.ID != created.ID {
		t.Errorf("GetByNumber() returned wrong reservation")
	}

	// Mutating a returned copy must not leak into the store.
	byID.Notes = "scribbled on a copy"
	fresh, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fresh.Notes != "" {
		t.Error("copy mutation leaked into the store")
	}
}

func TestReservationRepositoryDuplicateNumber(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)

	seedReservation(t, repo, "RSV-DUP22222", primitive.NewObjectID(), models.ReservationStatusActive, day(1), day(3), 90)

	err := repo.Create(context.Background(), &models.Reservation{
		ReservationNumber: "RSV-DUP22222",
		MemberID:          primitive.NewObjectID(),
		CarID:             primitive.NewObjectID(),
		PickUpDate:        day(5),
		DropOffDate:       day(7),
		Status:            models.ReservationStatusActive,
	})
	if !apperrors.IsConflict(err) {
		t.Fatalf("Create() duplicate error = %v, want conflict", err)
	}
}

func TestReservationRepositoryNotFound(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, primitive.NewObjectID()); !apperrors.IsNotFound(err) {
		t.Fatalf("GetByID() error = %v, want not found", err)
	}
	if _, err := repo.GetByNumber(ctx, "RSV-MISSING1"); !apperrors.IsNotFound(err) {
		t.Fatalf("GetByNumber() error = %v, want not found", err)
	}
	err := repo.Update(ctx, &models.Reservation{ID: primitive.NewObjectID()})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Update() error = %v, want not found", err)
	}
}

func TestReservationRepositoryFindActiveByCar(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)
	ctx := context.Background()

	carID := primitive.NewObjectID()
	seedReservation(t, repo, "RSV-ACT22222", carID, models.ReservationStatusActive, day(10), day(15), 225)
	seedReservation(t, repo, "RSV-ACT33333", carID, models.ReservationStatusActive, day(2), day(5), 135)
	seedReservation(t, repo, "RSV-CAN22222", carID, models.ReservationStatusCancelled, day(1), day(30), 900)
	seedReservation(t, repo, "RSV-OTH22222", primitive.NewObjectID(), models.ReservationStatusActive, day(10), day(15), 225)

	active, err := repo.FindActiveByCar(ctx, carID)
	if err != nil {
		t.Fatalf("FindActiveByCar() error = %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	// Sorted by pick-up date ascending.
	if !active[0].PickUpDate.Before(active[1].PickUpDate) {
		t.Error("active reservations not sorted by pick-up date")
	}
}

func TestReservationRepositoryList(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)
	ctx := context.Background()

	seedReservation(t, repo, "RSV-LST22222", primitive.NewObjectID(), models.ReservationStatusActive, day(1), day(3), 90)
	seedReservation(t, repo, "RSV-LST33333", primitive.NewObjectID(), models.ReservationStatusCompleted, day(4), day(6), 90)
	seedReservation(t, repo, "RSV-LST44444", primitive.NewObjectID(), models.ReservationStatusCompleted, day(7), day(9), 90)

	completed := models.ReservationStatusCompleted
	params := &utils.PaginationParams{Page: 1, PageSize: 10}

	result, total, err := repo.List(ctx, &completed, params)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Fatalf("List() total = %d, len = %d, want 2 and 2", total, len(result))
	}

	// Page size smaller than the result set pages correctly.
	params = &utils.PaginationParams{Page: 2, PageSize: 1}
	result, total, err = repo.List(ctx, &completed, params)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || len(result) != 1 {
		t.Fatalf("List() page 2 total = %d, len = %d, want 2 and 1", total, len(result))
	}
}

func TestReservationRepositoryCountByStatus(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)

	seedReservation(t, repo, "RSV-CNT22222", primitive.NewObjectID(), models.ReservationStatusActive, day(1), day(3), 90)
	seedReservation(t, repo, "RSV-CNT33333", primitive.NewObjectID(), models.ReservationStatusCompleted, day(1), day(3), 90)
	seedReservation(t, repo, "RSV-CNT44444", primitive.NewObjectID(), models.ReservationStatusCompleted, day(4), day(6), 90)
	seedReservation(t, repo, "RSV-CNT55555", primitive.NewObjectID(), models.ReservationStatusCancelled, day(1), day(3), 90)

	counts, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[models.ReservationStatusActive] != 1 {
		t.Errorf("active = %d, want 1", counts[models.ReservationStatusActive])
	}
	if counts[models.ReservationStatusCompleted] != 2 {
		t.Errorf("completed = %d, want 2", counts[models.ReservationStatusCompleted])
	}
	if counts[models.ReservationStatusCancelled] != 1 {
		t.Errorf("cancelled = %d, want 1", counts[models.ReservationStatusCancelled])
	}
}

func TestReservationRepositoryCompletedRevenue(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)

	seedReservation(t, repo, "RSV-REV22222", primitive.NewObjectID(), models.ReservationStatusCompleted, day(5), day(8), 150)
	seedReservation(t, repo, "RSV-REV33333", primitive.NewObjectID(), models.ReservationStatusCompleted, day(20), day(22), 100)
	// Active bookings never count as revenue.
	seedReservation(t, repo, "RSV-REV44444", primitive.NewObjectID(), models.ReservationStatusActive, day(6), day(9), 999)
	// Outside the window.
	seedReservation(t, repo, "RSV-REV55555", primitive.NewObjectID(), models.ReservationStatusCompleted, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC), 500)

	revenue, count, err := repo.CompletedRevenue(context.Background(), day(1), day(30))
	if err != nil {
		t.Fatalf("CompletedRevenue() error = %v", err)
	}
	if revenue != 250 {
		t.Errorf("revenue = %.2f, want 250.00", revenue)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestReservationRepositoryNextReservationNumber(t *testing.T) {
	repo := NewReservationRepository().(*reservationRepository)

	number, err := repo.NextReservationNumber(context.Background())
	if err != nil {
		t.Fatalf("NextReservationNumber() error = %v", err)
	}
	if len(number) != len(utils.ReservationNumberPrefix)+utils.ReservationNumberLength {
		t.Fatalf("number %q has wrong length", number)
	}
}
