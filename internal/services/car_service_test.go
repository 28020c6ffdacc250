package services

import (
	"context"
	"testing"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/utils"
)

func newCarService(t *testing.T, f *fixture) CarService {
	t.Helper()
	return NewCarService(f.cars, f.locations, f.reservations, newTestLogger(t))
}

func TestCarSearchFiltersBookedCars(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	carSvc := newCarService(t, f)

	// Second car at the same branch, never booked.
	spare := &models.Car{
		LicensePlate: "CD-5678",
		Brand:        "Honda",
		Model:        "Civic",
		Category:     models.CarCategorySedan,
		Seats:        5,
		Transmission: models.TransmissionManual,
		FuelType:     models.FuelTypeGasoline,
		DailyRate:    40.0,
		LocationID:   f.pickUpLoc.ID,
		Status:       models.CarStatusAvailable,
	}
	if _, err := carSvc.Create(ctx, spare); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15))); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	params := &utils.PaginationParams{Page: 1, PageSize: 10}

	// No dates: both cars are returned.
	cars, _, err := carSvc.Search(ctx, &CarSearchInput{}, params)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("Search() without dates = %d cars, want 2", len(cars))
	}

	// Overlapping dates: only the unbooked car remains, and the total
	// counts bookable cars, not the raw filter match.
	pickUp := date(2024, 6, 12)
	dropOff := date(2024, 6, 14)
	cars, total, err := carSvc.Search(ctx, &CarSearchInput{PickUpDate: &pickUp, DropOffDate: &dropOff}, params)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(cars) != 1 {
		t.Fatalf("Search() with overlap = %d cars, want 1", len(cars))
	}
	if cars[0].LicensePlate != "CD-5678" {
		t.Errorf("Search() returned the booked car %q", cars[0].LicensePlate)
	}
	if total != 1 {
		t.Errorf("Search() with overlap total = %d, want 1", total)
	}

	// Back-to-back dates: both cars bookable again.
	pickUp = date(2024, 6, 15)
	dropOff = date(2024, 6, 18)
	cars, total, err = carSvc.Search(ctx, &CarSearchInput{PickUpDate: &pickUp, DropOffDate: &dropOff}, params)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("Search() back-to-back = %d cars, want 2", len(cars))
	}
	if total != 2 {
		t.Errorf("Search() back-to-back total = %d, want 2", total)
	}

	// A one-car page still reports the full bookable total and the second
	// page carries the remaining car.
	small := &utils.PaginationParams{Page: 1, PageSize: 1, Sort: "daily_rate", Order: "asc"}
	cars, total, err = carSvc.Search(ctx, &CarSearchInput{PickUpDate: &pickUp, DropOffDate: &dropOff}, small)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(cars) != 1 || total != 2 {
		t.Fatalf("Search() page 1 = %d cars, total %d, want 1 and 2", len(cars), total)
	}
	small.Page = 2
	cars, total, err = carSvc.Search(ctx, &CarSearchInput{PickUpDate: &pickUp, DropOffDate: &dropOff}, small)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(cars) != 1 || total != 2 {
		t.Fatalf("Search() page 2 = %d cars, total %d, want 1 and 2", len(cars), total)
	}
}

func TestCarSearchInvalidDateRange(t *testing.T) {
	f := newFixture(t)

	carSvc := newCarService(t, f)

	pickUp := date(2024, 6, 15)
	dropOff := date(2024, 6, 15)
	_, _, err := carSvc.Search(context.Background(), &CarSearchInput{PickUpDate: &pickUp, DropOffDate: &dropOff}, &utils.PaginationParams{Page: 1, PageSize: 10})
	if !apperrors.IsInvalidInput(err) {
		t.Fatalf("Search() error = %v, want invalid input", err)
	}
}

func TestCarDeleteBlockedByActiveReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	carSvc := newCarService(t, f)

	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15)))
	if err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	if err := carSvc.Delete(ctx, f.car.ID); !apperrors.IsConflict(err) {
		t.Fatalf("Delete() with active reservation error = %v, want conflict", err)
	}

	if _, err := f.svc.Cancel(ctx, reservation.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if err := carSvc.Delete(ctx, f.car.ID); err != nil {
		t.Fatalf("Delete() after cancel error = %v", err)
	}
}

func TestCarCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	carSvc := newCarService(t, f)

	bad := &models.Car{Brand: "Free", Model: "Car", DailyRate: 0, LocationID: f.pickUpLoc.ID}
	if _, err := carSvc.Create(ctx, bad); !apperrors.IsInvalidInput(err) {
		t.Fatalf("Create() zero rate error = %v, want invalid input", err)
	}
}

func TestMaintenanceStatusSurvivesLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	carSvc := newCarService(t, f)

	if _, err := carSvc.SetStatus(ctx, f.car.ID, models.CarStatusMaintenance); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	// A lifecycle event refreshes the display status but must not override
	// a manually parked car, and maintenance never blocks a booking.
	reservation, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 15)))
	if err != nil {
		t.Fatalf("Create() on maintenance car error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, reservation.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	car, err := carSvc.GetByID(ctx, f.car.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if car.Status != models.CarStatusMaintenance {
		t.Fatalf("status = %s, want maintenance preserved", car.Status)
	}
}
