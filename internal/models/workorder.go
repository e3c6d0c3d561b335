package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkOrderType distinguishes planned maintenance from breakdown repairs.
type WorkOrderType string

const (
	WorkOrderPreventive WorkOrderType = "Preventive"
	WorkOrderCorrective WorkOrderType = "Corrective"
)

// WorkOrderStatus represents a work order's position in its lifecycle.
type WorkOrderStatus string

const (
	StatusReported   WorkOrderStatus = "Reported"
	StatusAssigned   WorkOrderStatus = "Assigned"
	StatusInProgress WorkOrderStatus = "In Progress"
	StatusCompleted  WorkOrderStatus = "Completed"
	StatusCancelled  WorkOrderStatus = "Cancelled"
)

// PartUsage records one spare part consumed by a work order.
type PartUsage struct {
	PartID   string `bson:"part_id" json:"part_id"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// WorkOrder represents a unit of maintenance work from report to completion.
type WorkOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID string             `bson:"equipment_id" json:"equipment_id"`
	Issue       string             `bson:"issue" json:"issue"`
	Description string             `bson:"description" json:"description"`
	Type        WorkOrderType      `bson:"type" json:"type"`
	Priority    string             `bson:"priority" json:"priority"` // "Low", "Medium", "High", "Critical"
	Status      WorkOrderStatus    `bson:"status" json:"status"`
	ReportedAt  time.Time          `bson:"reported_at" json:"reported_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	AssignedTo  string             `bson:"assigned_to" json:"assigned_to"`
	Cost        *float64           `bson:"cost,omitempty" json:"cost,omitempty"` // in USD
	PartsUsed   []PartUsage        `bson:"parts_used,omitempty" json:"parts_used,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValidWorkOrderType checks if a work order type is recognized.
func IsValidWorkOrderType(t WorkOrderType) bool {
	return t == WorkOrderPreventive || t == WorkOrderCorrective
}

// CanTransitionTo reports whether a status change is permitted by the work
// order state machine. Cost and parts may only be attached on completion.
func (w *WorkOrder) CanTransitionTo(next WorkOrderStatus) bool {
	switch w.Status {
	case StatusReported:
		return next == StatusAssigned || next == StatusInProgress || next == StatusCancelled
	case StatusAssigned:
		return next == StatusInProgress || next == StatusCompleted || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	default:
		return false
	}
}

// DowntimeHours returns the elapsed wall-clock hours between report and
// completion, or 0 if the work order is not completed yet.
func (w *WorkOrder) DowntimeHours() float64 {
	if w.CompletedAt == nil || w.ReportedAt.IsZero() {
		return 0
	}
	return w.CompletedAt.Sub(w.ReportedAt).Hours()
}
