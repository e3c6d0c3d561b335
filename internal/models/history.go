package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceHistory represents an imported historical maintenance record.
// Date is kept as a "YYYY-MM-DD" string at the store boundary, matching the
// upstream system that produced these rows.
type MaintenanceHistory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID string             `bson:"equipment_id" json:"equipment_id"`
	Date        string             `bson:"date" json:"date"`
	Description string             `bson:"description" json:"description"`
	Cost        float64            `bson:"cost" json:"cost"` // in USD
	PerformedBy string             `bson:"performed_by" json:"performed_by"`
}
