package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContractStatus represents a service contract's lifecycle state.
type ContractStatus string

const (
	ContractActive         ContractStatus = "Active"
	ContractPendingRenewal ContractStatus = "Pending Renewal"
	ContractExpired        ContractStatus = "Expired"
	ContractCancelled      ContractStatus = "Cancelled"
)

// Contract represents a vendor service contract for a piece of equipment.
// Status is derived from the current time except for Cancelled, which is a
// terminal, manually-set state.
type Contract struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID         string             `bson:"equipment_id" json:"equipment_id"`
	Vendor              string             `bson:"vendor" json:"vendor"`
	StartDate           time.Time          `bson:"start_date" json:"start_date"`
	EndDate             time.Time          `bson:"end_date" json:"end_date"`
	RenewalReminderDate time.Time          `bson:"renewal_reminder_date" json:"renewal_reminder_date"`
	Status              ContractStatus     `bson:"status" json:"status"`
	Details             string             `bson:"details" json:"details"`
	Notes               string             `bson:"notes" json:"notes"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValidContractStatus checks if a contract status is recognized.
func IsValidContractStatus(s ContractStatus) bool {
	switch s {
	case ContractActive, ContractPendingRenewal, ContractExpired, ContractCancelled:
		return true
	default:
		return false
	}
}
