package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarStatus string
type CarCategory string
type Transmission string
type FuelType string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusUnavailable CarStatus = "unavailable"
	CarStatusReserved    CarStatus = "reserved"
	CarStatusRented      CarStatus = "rented"
	CarStatusMaintenance CarStatus = "maintenance"

	CarCategorySedan     CarCategory = "sedan"
	CarCategorySUV       CarCategory = "suv"
	CarCategoryHatchback CarCategory = "hatchback"
	CarCategoryTruck     CarCategory = "truck"
	CarCategoryVan       CarCategory = "van"

	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"

	FuelTypeGasoline FuelType = "gasoline"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

// Car.Status is a display projection recomputed from the reservation set.
// Availability decisions never read it; they re-derive from active
// reservations so the cached value cannot cause a double booking.
type Car struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LicensePlate string             `json:"license_plate" bson:"license_plate" validate:"required"`
	Brand        string             `json:"brand" bson:"brand" validate:"required"`
	Model        string             `json:"model" bson:"model" validate:"required"`
	Year         int                `json:"year" bson:"year"`
	Category     CarCategory        `json:"category" bson:"category" validate:"required"`
	Seats        int                `json:"seats" bson:"seats" validate:"required"`
	Transmission Transmission       `json:"transmission" bson:"transmission" validate:"required"`
	FuelType     FuelType           `json:"fuel_type" bson:"fuel_type" validate:"required"`
	DailyRate    float64            `json:"daily_rate" bson:"daily_rate" validate:"required,gt=0"`
	LocationID   primitive.ObjectID `json:"location_id" bson:"location_id" validate:"required"`
	Status       CarStatus          `json:"status" bson:"status" default:"available"`
	Mileage      float64            `json:"mileage" bson:"mileage"`
	Features     []string           `json:"features" bson:"features"`
	ImageURL     string             `json:"image_url" bson:"image_url"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
