package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BranchLocation is immutable reference data describing a rental branch.
type BranchLocation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code" validate:"required"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Address   string             `json:"address" bson:"address" validate:"required"`
	City      string             `json:"city" bson:"city" validate:"required"`
	Phone     string             `json:"phone" bson:"phone"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
