package services

import (
	"context"
	"testing"

	"crms/internal/models"
)

func TestReservationReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reporting := NewReportingService(f.reservations)

	first, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 1), date(2024, 6, 4)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Complete(ctx, first.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	second, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 10), date(2024, 6, 12)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, second.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if _, err := f.svc.Create(ctx, f.createInput(date(2024, 6, 20), date(2024, 6, 22))); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	report, err := reporting.ReservationReport(ctx, date(2024, 6, 1), date(2024, 6, 30))
	if err != nil {
		t.Fatalf("ReservationReport() error = %v", err)
	}

	if report.CountsByStatus[models.ReservationStatusActive] != 1 {
		t.Errorf("active = %d, want 1", report.CountsByStatus[models.ReservationStatusActive])
	}
	if report.CountsByStatus[models.ReservationStatusCompleted] != 1 {
		t.Errorf("completed = %d, want 1", report.CountsByStatus[models.ReservationStatusCompleted])
	}
	if report.CountsByStatus[models.ReservationStatusCancelled] != 1 {
		t.Errorf("cancelled = %d, want 1", report.CountsByStatus[models.ReservationStatusCancelled])
	}

	// Only the completed booking contributes revenue: 3 days at 45.
	if report.TotalRevenue != 135.0 {
		t.Errorf("revenue = %.2f, want 135.00", report.TotalRevenue)
	}
	if report.CompletedCount != 1 {
		t.Errorf("completed count = %d, want 1", report.CompletedCount)
	}

	wantRate := 100.0 / 3.0
	if diff := report.CompletionRate - wantRate; diff > 0.01 || diff < -0.01 {
		t.Errorf("completion rate = %.2f, want %.2f", report.CompletionRate, wantRate)
	}
}

func TestReservationReportEmpty(t *testing.T) {
	f := newFixture(t)

	reporting := NewReportingService(f.reservations)

	report, err := reporting.ReservationReport(context.Background(), date(2024, 6, 1), date(2024, 6, 30))
	if err != nil {
		t.Fatalf("ReservationReport() error = %v", err)
	}
	if report.TotalRevenue != 0 || report.CompletedCount != 0 || report.CompletionRate != 0 {
		t.Fatalf("empty report not zeroed: %+v", report)
	}
}
