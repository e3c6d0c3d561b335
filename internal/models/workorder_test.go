package models

import (
	"testing"
	"time"
)

func TestWorkOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     WorkOrderStatus
		to       WorkOrderStatus
		expected bool
	}{
		{"reported to assigned", StatusReported, StatusAssigned, true},
		{"reported to in progress", StatusReported, StatusInProgress, true},
		{"reported to cancelled", StatusReported, StatusCancelled, true},
		{"reported to completed", StatusReported, StatusCompleted, false},
		{"assigned to in progress", StatusAssigned, StatusInProgress, true},
		{"assigned to completed", StatusAssigned, StatusCompleted, true},
		{"in progress to completed", StatusInProgress, StatusCompleted, true},
		{"in progress to assigned", StatusInProgress, StatusAssigned, false},
		{"completed is terminal", StatusCompleted, StatusInProgress, false},
		{"cancelled is terminal", StatusCancelled, StatusReported, false},
		{"unknown status", "Bogus", StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wo := &WorkOrder{Status: tt.from}
			result := wo.CanTransitionTo(tt.to)
			if result != tt.expected {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestWorkOrder_DowntimeHours(t *testing.T) {
	reported := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	completed := reported.Add(90 * time.Minute)

	wo := &WorkOrder{ReportedAt: reported, CompletedAt: &completed}
	if got := wo.DowntimeHours(); got != 1.5 {
		t.Errorf("DowntimeHours() = %v, want 1.5", got)
	}

	open := &WorkOrder{ReportedAt: reported}
	if got := open.DowntimeHours(); got != 0 {
		t.Errorf("DowntimeHours() on open work order = %v, want 0", got)
	}
}

func TestIsValidWorkOrderType(t *testing.T) {
	if !IsValidWorkOrderType(WorkOrderPreventive) {
		t.Error("expected Preventive to be valid")
	}
	if !IsValidWorkOrderType(WorkOrderCorrective) {
		t.Error("expected Corrective to be valid")
	}
	if IsValidWorkOrderType("Predictive") {
		t.Error("expected unknown type to be invalid")
	}
}
