package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment represents a maintainable asset.
type Equipment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Model        string             `bson:"model" json:"model"`
	SerialNumber string             `bson:"serial_number" json:"serial_number"`
	Location     string             `bson:"location" json:"location"`
	Status       string             `bson:"status" json:"status"` // "operational", "under_maintenance", "out_of_service", "retired"
	Notes        string             `bson:"notes" json:"notes"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
