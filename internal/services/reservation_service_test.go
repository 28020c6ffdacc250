package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/repositories/memory"
	"crms/internal/utils"
	"crms/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	svc          ReservationService
	reservations interfaces.ReservationRepository
	cars         interfaces.CarRepository
	locations    interfaces.LocationRepository
	addOns       interfaces.AddOnRepository
	members      interfaces.MemberRepository

	member     *models.Member
	car        *models.Car
	pickUpLoc  *models.BranchLocation
	dropOffLoc *models.BranchLocation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	reservationRepo := memory.NewReservationRepository()
	carRepo := memory.NewCarRepository()
	locationRepo := memory.NewLocationRepository()
	addOnRepo := memory.NewAddOnRepository()
	memberRepo := memory.NewMemberRepository()

	member := &models.Member{
		FirstName:            "Ada",
		LastName:             "Lovelace",
		Email:                "ada@example.com",
		DrivingLicenseNumber: "DL-1234567",
	}
	if err := memberRepo.Create(ctx, member); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	pickUpLoc := &models.BranchLocation{Code: "CTR", Name: "Central", Address: "1 Main St", City: "Metropolis"}
	if err := locationRepo.Create(ctx, pickUpLoc); err != nil {
		t.Fatalf("seed location: %v", err)
	}
	dropOffLoc := &models.BranchLocation{Code: "APT", Name: "Airport", Address: "2 Runway Rd", City: "Metropolis"}
	if err := locationRepo.Create(ctx, dropOffLoc); err != nil {
		t.Fatalf("seed location: %v", err)
	}

	car := &models.Car{
		LicensePlate: "AB-1234",
		Brand:        "Toyota",
		Model:        "Corolla",
		Category:     models.CarCategorySedan,
		Seats:        5,
		Transmission: models.TransmissionAutomatic,
		FuelType:     models.FuelTypeGasoline,
		DailyRate:    45.0,
		LocationID:   pickUpLoc.ID,
		Status:       models.CarStatusAvailable,
	}
	if err := carRepo.Create(ctx, car); err != nil {
		t.Fatalf("seed car: %v", err)
	}

	svc := NewReservationService(
		reservationRepo,
		carRepo,
		locationRepo,
		addOnRepo,
		memberRepo,
		NewMemoryLockManager(),
		nil,
		newTestLogger(t),
	)

	return &fixture{
		svc:          svc,
		reservations: reservationRepo,
		cars:         carRepo,
		locations:    locationRepo,
		addOns:       addOnRepo,
		members:      memberRepo,
		member:       member,
		car:          car,
		pickUpLoc:    pickUpLoc,
		dropOffLoc:   dropOffLoc,
	}
}

func (f *fixture) createInput(pickUp, dropOff time.Time) *CreateReservationInput {
	return &CreateReservationInput{
		MemberID:          f.member.ID,
		CarID:             f.car.ID,
		PickUpLocationID:  f.pickUpLoc.ID,
		DropOffLocationID: f.dropOffLoc.ID,
		PickUpDate:        pickUp,
		DropOffDate:       dropOff,
	}
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 4)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if reservation.Status != models.ReservationStatusActive {
		t.Errorf("status = %s, want active", reservation.Status)
	}
	if !strings.HasPrefix(reservation.ReservationNumber, utils.ReservationNumberPrefix) {
		t.Errorf("reservation number %q missing %q prefix", reservation.ReservationNumber, utils.ReservationNumberPrefix)
	}
	if reservation.TotalCost != 135.0 {
		t.Errorf("total cost = %.2f, want 135.00", reservation.TotalCost)
	}

	stored, err := f.reservations.GetByID(ctx, reservation.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.ReservationNumber != reservation.ReservationNumber {
		t.Errorf("stored number = %q, want %q", stored.ReservationNumber, reservation.ReservationNumber)
	}
}

func TestCreateReservationWithAddOns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gps := &models.Equipment{Name: "GPS unit", DailyPrice: 5.0}
	if err := f.addOns.CreateEquipment(ctx, gps); err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	insurance := &models.AdditionalService{Name: "Full insurance", DailyPrice: 10.0}
	if err := f.addOns.CreateService(ctx, insurance); err != nil {
		t.Fatalf("seed service: %v", err)
	}

	input := f.createInput(date(2024, 6, 1), date(2024, 6, 4))
	input.ServiceIDs = []primitive.ObjectID{insurance.ID}
	input.EquipmentIDs = []primitive.ObjectID{gps.ID}

	reservation, err := f.svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 3 days * (45 + 10 + 5)
	if reservation.TotalCost != 180.0 {
		t.Errorf("total cost = %.2f, want 180.00", reservation.TotalCost)
	}
}

func TestCreateReservationDanglingAddOn(t *testing.T) {
	f := newFixture(t)

	input := f.createInput(date(2024, 6, 1), date(2024, 6, 4))
	input.ServiceIDs = []primitive.ObjectID{primitive.NewObjectID()}

	_, err := f.svc.Create(context.Background(), input)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Create() error = %v, want not found", err)
	}
}

func TestCreateReservationUnlicensedMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	unlicensed := &models.Member{FirstName: "No", LastName: "License", Email: "nolicense@example.com"}
	if err := f.members.Create(ctx, unlicensed); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	input := f.createInput(date(2024, 6, 1), date(2024, 6, 4))
	input.MemberID = unlicensed.ID

	_, err := f.svc.Create(ctx, input)
	if !apperrors.IsInvalidInput(err) {
		t.Fatalf("Create() error = %v, want invalid input", err)
	}
}

func TestCreateReservationUnknownCar(t *testing.T) {
	f := newFixture(t)

	input := f.createInput(date(2024, 6, 1), date(2024, 6, 4))
	input.CarID = primitive.NewObjectID()

	_, err := f.svc.Create(context.Background(), input)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Create() error = %v, want not found", err)
	}
}

func TestCreateReservationInvalidDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.createInput(date(2024, 6, 4), date(2024, 6, 1)))
	if !apperrors.IsInvalidInput(err) {
		t.Fatalf("Create() error = %v, want invalid input", err)
	}

	_, err = f.svc.Create(context.Background(), f.createInput(date(2024, 6, 1), date(2024, 6, 1)))
	if !apperrors.IsInvalidInput(err) {
		t.Fatalf("Create() same-day error = %v, want invalid input", err)
	}
}

func TestCreateReservationConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15))); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 12), date(2024, 6, 20)))
	if !apperrors.IsConflict(err) {
		t.Fatalf("Create() overlapping error = %v, want conflict", err)
	}
}

func TestCreateReservationBackToBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15))); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Drop-off day and next pick-up day may coincide.
	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 15), date(2024, 6, 20))); err != nil {
		t.Fatalf("Create() back-to-back error = %v", err)
	}
	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 5), date(2024, 6, 10))); err != nil {
		t.Fatalf("Create() leading back-to-back error = %v", err)
	}
}

func TestCancelledReservationFreesDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15))); err != nil {
		t.Fatalf("Create() after cancel error = %v", err)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 4)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	completed, err := f.svc.Complete(ctx, reservation.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completed.Status != models.ReservationStatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}

	// Terminal states reject every further transition, including repeats.
	if _, err := f.svc.Complete(ctx, reservation.ID); !apperrors.IsIllegalTransition(err) {
		t.Fatalf("Complete() twice error = %v, want illegal transition", err)
	}
	if _, err := f.svc.Cancel(ctx, reservation.ID); !apperrors.IsIllegalTransition(err) {
		t.Fatalf("Cancel() after complete error = %v, want illegal transition", err)
	}
}

func TestCancelTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 4)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := f.svc.Cancel(ctx, reservation.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, reservation.ID); !apperrors.IsIllegalTransition(err) {
		t.Fatalf("Cancel() twice error = %v, want illegal transition", err)
	}
}

func TestUpdateReservationDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Shrinking inside the original range must not conflict with itself.
	newDropOff := date(2024, 6, 13)
	updated, err := f.svc.Update(ctx, reservation.ID, &UpdateReservationInput{DropOffDate: &newDropOff})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.DropOffDate.Equal(newDropOff) {
		t.Errorf("drop-off = %v, want %v", updated.DropOffDate, newDropOff)
	}
	if updated.TotalCost != 135.0 {
		t.Errorf("recomputed cost = %.2f, want 135.00", updated.TotalCost)
	}
}

func TestUpdateReservationDateConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 5))); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Moving the second booking onto the first must be rejected.
	newPickUp := date(2024, 6, 3)
	_, err = f.svc.Update(ctx, second.ID, &UpdateReservationInput{PickUpDate: &newPickUp})
	if !apperrors.IsConflict(err) {
		t.Fatalf("Update() error = %v, want conflict", err)
	}
}

func TestUpdateTerminalReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 4)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, reservation.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	notes := "late checkout"
	_, err = f.svc.Update(ctx, reservation.ID, &UpdateReservationInput{Notes: &notes})
	if !apperrors.IsIllegalTransition(err) {
		t.Fatalf("Update() cancelled error = %v, want illegal transition", err)
	}
}

func TestUpdateDropOffLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 4)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := f.svc.UpdateDropOffLocation(ctx, reservation.ID, f.pickUpLoc.ID)
	if err != nil {
		t.Fatalf("UpdateDropOffLocation() error = %v", err)
	}
	if updated.DropOffLocationID != f.pickUpLoc.ID {
		t.Errorf("drop-off location = %s, want %s", updated.DropOffLocationID.Hex(), f.pickUpLoc.ID.Hex())
	}
	if updated.TotalCost != reservation.TotalCost {
		t.Errorf("cost changed on location update: %.2f != %.2f", updated.TotalCost, reservation.TotalCost)
	}

	_, err = f.svc.UpdateDropOffLocation(ctx, reservation.ID, primitive.NewObjectID())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("UpdateDropOffLocation() unknown location error = %v, want not found", err)
	}
}

func TestQuoteMatchesCreateWithoutPersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	input := f.createInput(date(2024, 6, 1), date(2024, 6, 4))

	quote, err := f.svc.Quote(ctx, input)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.RentalDays != 3 {
		t.Errorf("rental days = %d, want 3", quote.RentalDays)
	}
	if quote.TotalCost != 135.0 {
		t.Errorf("quote total = %.2f, want 135.00", quote.TotalCost)
	}

	active, err := f.reservations.FindActiveByCar(ctx, f.car.ID)
	if err != nil {
		t.Fatalf("FindActiveByCar() error = %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("Quote() persisted %d reservations", len(active))
	}

	reservation, err := f.svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if reservation.TotalCost != quote.TotalCost {
		t.Errorf("create total %.2f differs from quote %.2f", reservation.TotalCost, quote.TotalCost)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15)))
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case apperrors.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if created != 1 {
		t.Fatalf("created = %d, want exactly 1", created)
	}
	if conflicts != attempts-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, attempts-1)
	}

	active, err := f.reservations.FindActiveByCar(ctx, f.car.ID)
	if err != nil {
		t.Fatalf("FindActiveByCar() error = %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active reservations = %d, want 1", len(active))
	}
}
