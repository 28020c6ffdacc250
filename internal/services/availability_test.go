package services

import (
	"testing"
	"time"

	"crms/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		s1   time.Time
		e1   time.Time
		s2   time.Time
		e2   time.Time
		want bool
	}{
		{
			name: "identical intervals",
			s1:   date(2024, 6, 1), e1: date(2024, 6, 4),
			s2: date(2024, 6, 1), e2: date(2024, 6, 4),
			want: true,
		},
		{
			name: "partial overlap",
			s1:   date(2024, 6, 1), e1: date(2024, 6, 4),
			s2: date(2024, 6, 3), e2: date(2024, 6, 6),
			want: true,
		},
		{
			name: "contained interval",
			s1:   date(2024, 6, 1), e1: date(2024, 6, 10),
			s2: date(2024, 6, 3), e2: date(2024, 6, 5),
			want: true,
		},
		{
			name: "back to back is not an overlap",
			s1:   date(2024, 6, 1), e1: date(2024, 6, 4),
			s2: date(2024, 6, 4), e2: date(2024, 6, 7),
			want: false,
		},
		{
			name: "back to back reversed",
			s1:   date(2024, 6, 4), e1: date(2024, 6, 7),
			s2: date(2024, 6, 1), e2: date(2024, 6, 4),
			want: false,
		},
		{
			name: "disjoint",
			s1:   date(2024, 6, 1), e1: date(2024, 6, 3),
			s2: date(2024, 6, 10), e2: date(2024, 6, 12),
			want: false,
		},
		{
			name: "single shared day",
			s1:   date(2024, 6, 1), e1: date(2024, 6, 5),
			s2: date(2024, 6, 4), e2: date(2024, 6, 8),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func activeReservation(pickUp, dropOff time.Time) *models.Reservation {
	return &models.Reservation{
		ID:          primitive.NewObjectID(),
		PickUpDate:  pickUp,
		DropOffDate: dropOff,
		Status:      models.ReservationStatusActive,
	}
}

func TestCarAvailable(t *testing.T) {
	booked := activeReservation(date(2024, 6, 10), date(2024, 6, 15))

	cancelled := activeReservation(date(2024, 6, 1), date(2024, 6, 30))
	cancelled.Status = models.ReservationStatusCancelled

	completed := activeReservation(date(2024, 6, 1), date(2024, 6, 30))
	completed.Status = models.ReservationStatusCompleted

	reservations := []*models.Reservation{booked, cancelled, completed}

	tests := []struct {
		name    string
		pickUp  time.Time
		dropOff time.Time
		exclude primitive.ObjectID
		want    bool
	}{
		{"clear before", date(2024, 6, 1), date(2024, 6, 5), primitive.NilObjectID, true},
		{"overlapping active booking", date(2024, 6, 12), date(2024, 6, 20), primitive.NilObjectID, false},
		{"drop off on pick-up day is allowed", date(2024, 6, 5), date(2024, 6, 10), primitive.NilObjectID, true},
		{"pick up on drop-off day is allowed", date(2024, 6, 15), date(2024, 6, 20), primitive.NilObjectID, true},
		{"terminal reservations never block", date(2024, 6, 20), date(2024, 6, 25), primitive.NilObjectID, true},
		{"excluded reservation does not conflict with itself", date(2024, 6, 10), date(2024, 6, 15), booked.ID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CarAvailable(tt.pickUp, tt.dropOff, reservations, tt.exclude)
			if got != tt.want {
				t.Fatalf("CarAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCarAvailableEmptySnapshot(t *testing.T) {
	if !CarAvailable(date(2024, 6, 1), date(2024, 6, 4), nil, primitive.NilObjectID) {
		t.Fatal("CarAvailable() = false for a car with no reservations")
	}
}
