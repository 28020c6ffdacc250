package services

import (
	"time"

	"crms/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// intersect. Half-open semantics let a car be picked up on the same
// calendar date it was dropped off.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CarAvailable decides whether the requested interval is free given a
// snapshot of the car's reservations. Only active reservations constrain
// availability; completed and cancelled ones are ignored regardless of
// their stored dates. The exclude id removes the reservation being edited
// from its own conflict set (pass primitive.NilObjectID otherwise).
//
// The caller must hold the per-car lock so the snapshot cannot go stale
// between the check and the write.
func CarAvailable(pickUpDate, dropOffDate time.Time, reservations []*models.Reservation, exclude primitive.ObjectID) bool {
	for _, reservation := range reservations {
		if !reservation.IsActive() {
			continue
		}
		if reservation.ID == exclude {
			continue
		}
		if Overlaps(pickUpDate, dropOffDate, reservation.PickUpDate, reservation.DropOffDate) {
			return false
		}
	}
	return true
}
