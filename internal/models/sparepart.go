package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SparePart represents an inventory item consumed by work orders.
type SparePart struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	PartNumber      string             `bson:"part_number" json:"part_number"`
	UnitCost        float64            `bson:"unit_cost" json:"unit_cost"` // in USD
	QuantityInStock int                `bson:"quantity_in_stock" json:"quantity_in_stock"`
	Supplier        string             `bson:"supplier" json:"supplier"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
