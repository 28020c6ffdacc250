package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// allowedTransitions is the reservation state machine. Completed and
// cancelled are terminal.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusActive:    {ReservationStatusCompleted, ReservationStatusCancelled},
	ReservationStatusCompleted: {},
	ReservationStatusCancelled: {},
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCompleted || s == ReservationStatusCancelled
}

func (s ReservationStatus) CanTransitionTo(to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Reservation occupies a car for the half-open interval
// [PickUpDate, DropOffDate). TotalCost is a snapshot taken at creation and
// is not recomputed when catalog prices change. Reservations are never
// deleted; cancellation is a terminal status.
type Reservation struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	ReservationNumber string               `json:"reservation_number" bson:"reservation_number" validate:"required"`
	MemberID          primitive.ObjectID   `json:"member_id" bson:"member_id" validate:"required"`
	CarID             primitive.ObjectID   `json:"car_id" bson:"car_id" validate:"required"`
	PickUpLocationID  primitive.ObjectID   `json:"pick_up_location_id" bson:"pick_up_location_id" validate:"required"`
	DropOffLocationID primitive.ObjectID   `json:"drop_off_location_id" bson:"drop_off_location_id" validate:"required"`
	PickUpDate        time.Time            `json:"pick_up_date" bson:"pick_up_date" validate:"required"`
	DropOffDate       time.Time            `json:"drop_off_date" bson:"drop_off_date" validate:"required"`
	Status            ReservationStatus    `json:"status" bson:"status" default:"active"`
	TotalCost         float64              `json:"total_cost" bson:"total_cost"`
	ServiceIDs        []primitive.ObjectID `json:"service_ids" bson:"service_ids"`
	EquipmentIDs      []primitive.ObjectID `json:"equipment_ids" bson:"equipment_ids"`
	Notes             string               `json:"notes" bson:"notes"`
	CompletedAt       *time.Time           `json:"completed_at" bson:"completed_at"`
	CancelledAt       *time.Time           `json:"cancelled_at" bson:"cancelled_at"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at" bson:"updated_at"`
}

// IsActive reports whether the reservation still occupies its car.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// Transition applies a status change, maintaining the terminal timestamp
// fields. Call only after CanTransitionTo has been checked by the caller,
// or handle the returned ok value.
func (r *Reservation) Transition(to ReservationStatus, now time.Time) bool {
	if !r.Status.CanTransitionTo(to) {
		return false
	}
	r.Status = to
	switch to {
	case ReservationStatusCompleted:
		t := now
		r.CompletedAt = &t
	case ReservationStatusCancelled:
		t := now
		r.CancelledAt = &t
	}
	r.UpdatedAt = now
	return true
}
