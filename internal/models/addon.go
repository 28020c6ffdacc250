package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdditionalService is a bookable extra (e.g. insurance, roadside
// assistance) billed per rental day.
type AdditionalService struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	DailyPrice  float64            `json:"daily_price" bson:"daily_price" validate:"required,gt=0"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Equipment is a physical add-on (e.g. GPS unit, child seat) billed per
// rental day, same billing rule as services.
type Equipment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	DailyPrice  float64            `json:"daily_price" bson:"daily_price" validate:"required,gt=0"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
