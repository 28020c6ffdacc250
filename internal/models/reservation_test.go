package models

import (
	"testing"
	"time"
)

func TestReservationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{ReservationStatusActive, ReservationStatusCompleted, true},
		{ReservationStatusActive, ReservationStatusCancelled, true},
		{ReservationStatusActive, ReservationStatusActive, false},
		{ReservationStatusCompleted, ReservationStatusCancelled, false},
		{ReservationStatusCompleted, ReservationStatusActive, false},
		{ReservationStatusCancelled, ReservationStatusCompleted, false},
		{ReservationStatusCancelled, ReservationStatusActive, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReservationStatusIsTerminal(t *testing.T) {
	if ReservationStatusActive.IsTerminal() {
		t.Error("active must not be terminal")
	}
	if !ReservationStatusCompleted.IsTerminal() {
		t.Error("completed must be terminal")
	}
	if !ReservationStatusCancelled.IsTerminal() {
		t.Error("cancelled must be terminal")
	}
}

func TestReservationTransition(t *testing.T) {
	now := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)

	r := &Reservation{Status: ReservationStatusActive}
	if !r.Transition(ReservationStatusCompleted, now) {
		t.Fatal("active -> completed should succeed")
	}
	if r.Status != ReservationStatusCompleted {
		t.Fatalf("status = %s, want completed", r.Status)
	}
	if r.CompletedAt == nil || !r.CompletedAt.Equal(now) {
		t.Fatalf("CompletedAt = %v, want %v", r.CompletedAt, now)
	}
	if !r.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", r.UpdatedAt, now)
	}

	// Terminal state rejects further transitions and stays unchanged.
	if r.Transition(ReservationStatusCancelled, now.Add(time.Hour)) {
		t.Fatal("completed -> cancelled should fail")
	}
	if r.Status != ReservationStatusCompleted {
		t.Fatalf("status mutated on rejected transition: %s", r.Status)
	}
	if r.CancelledAt != nil {
		t.Fatal("CancelledAt set on rejected transition")
	}
}

func TestReservationTransitionCancelled(t *testing.T) {
	now := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)

	r := &Reservation{Status: ReservationStatusActive}
	if !r.Transition(ReservationStatusCancelled, now) {
		t.Fatal("active -> cancelled should succeed")
	}
	if r.CancelledAt == nil || !r.CancelledAt.Equal(now) {
		t.Fatalf("CancelledAt = %v, want %v", r.CancelledAt, now)
	}
	if r.CompletedAt != nil {
		t.Fatal("CompletedAt set on cancellation")
	}
}
