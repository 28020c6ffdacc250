package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Member struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName            string             `json:"first_name" bson:"first_name" validate:"required"`
	LastName             string             `json:"last_name" bson:"last_name" validate:"required"`
	Email                string             `json:"email" bson:"email" validate:"required,email"`
	Phone                string             `json:"phone" bson:"phone"`
	DrivingLicenseNumber string             `json:"driving_license_number" bson:"driving_license_number"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasDrivingLicense reports whether the member can legally be put behind
// the wheel; reservations for unlicensed members are rejected.
func (m *Member) HasDrivingLicense() bool {
	return len(m.DrivingLicenseNumber) > 0
}
