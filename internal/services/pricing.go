package services

import (
	"math"
	"time"

	"crms/internal/apperrors"
)

// RentalDays converts a booking interval into billable days: partial days
// round up, and even a same-day rental bills one day.
func RentalDays(pickUpDate, dropOffDate time.Time) int {
	days := int(math.Ceil(dropOffDate.Sub(pickUpDate).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// ComputeCost prices a reservation. Every add-on is billed per rental day,
// the same rule on the creation and quote paths. Pure and deterministic:
// no I/O, no clock reads.
func ComputeCost(dailyRate float64, pickUpDate, dropOffDate time.Time, addOnDailyPrices []float64) (float64, error) {
	if dailyRate <= 0 {
		return 0, apperrors.NewInvalidInput("daily rate must be positive, got %.2f", dailyRate)
	}
	if !pickUpDate.Before(dropOffDate) {
		return 0, apperrors.NewInvalidInput("pick-up date must be before drop-off date")
	}

	addOnDaily := 0.0
	for _, price := range addOnDailyPrices {
		if price < 0 {
			return 0, apperrors.NewInvalidInput("add-on price cannot be negative, got %.2f", price)
		}
		addOnDaily += price
	}

	days := float64(RentalDays(pickUpDate, dropOffDate))
	return days*dailyRate + days*addOnDaily, nil
}
