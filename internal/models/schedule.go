package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frequency represents how often a preventive maintenance schedule recurs.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// PMSchedule represents a recurring preventive maintenance definition.
// NextDueDate always points at the next unfired occurrence; the scheduler
// advances it by exactly one frequency step when a work order is generated.
type PMSchedule struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID       string             `bson:"equipment_id" json:"equipment_id"`
	Task              string             `bson:"task" json:"task"`
	Frequency         Frequency          `bson:"frequency" json:"frequency"`
	NextDueDate       time.Time          `bson:"next_due_date" json:"next_due_date"`
	LastGeneratedDate *time.Time         `bson:"last_generated_date,omitempty" json:"last_generated_date,omitempty"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
	AssignedTo        string             `bson:"assigned_to" json:"assigned_to"`
	Notes             string             `bson:"notes" json:"notes"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValidFrequency checks if a frequency is one of the recognized values.
func IsValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	default:
		return false
	}
}
