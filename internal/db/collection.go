package db

import (
	"context"
	"time"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

// ScheduleCollection defines the interface for preventive maintenance
// schedule operations.
type ScheduleCollection interface {
	InsertSchedule(ctx context.Context, schedule models.PMSchedule) error
	FindScheduleByID(ctx context.Context, id string) (*models.PMSchedule, error)
	FindDueSchedules(ctx context.Context, now time.Time) ([]models.PMSchedule, error)
	AdvanceSchedule(ctx context.Context, id string, nextDue, lastGenerated time.Time) error
}

// WorkOrderCollection defines the interface for work order operations.
type WorkOrderCollection interface {
	InsertWorkOrder(ctx context.Context, wo models.WorkOrder) error
	FindWorkOrderByID(ctx context.Context, id string) (*models.WorkOrder, error)
	FindCompletedInRange(ctx context.Context, start, end time.Time, woType models.WorkOrderType) ([]models.WorkOrder, error)
	UpdateWorkOrderStatus(ctx context.Context, id string, status models.WorkOrderStatus) error
	CompleteWorkOrder(ctx context.Context, id string, completedAt time.Time, cost *float64, parts []models.PartUsage) error
}

// ContractCollection defines the interface for service contract operations.
type ContractCollection interface {
	InsertContract(ctx context.Context, contract models.Contract) error
	FindContractByID(ctx context.Context, id string) (*models.Contract, error)
	FindEvaluableContracts(ctx context.Context) ([]models.Contract, error)
	UpdateContractStatus(ctx context.Context, id string, status models.ContractStatus) error
}

// HistoryCollection defines the interface for historical maintenance records.
type HistoryCollection interface {
	InsertHistory(ctx context.Context, record models.MaintenanceHistory) error
	FindHistoryInDateRange(ctx context.Context, startDate, endDate string) ([]models.MaintenanceHistory, error)
}

// EquipmentCollection defines the read surface the core needs for equipment.
type EquipmentCollection interface {
	InsertEquipment(ctx context.Context, equipment models.Equipment) error
	FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error)
}

// SparePartCollection defines the read surface for spare part unit costs.
type SparePartCollection interface {
	InsertSparePart(ctx context.Context, part models.SparePart) error
	FindSparePartByID(ctx context.Context, id string) (*models.SparePart, error)
}

// UserCollection defines the interface for user database operations
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// ReportCollection defines the interface for generated report operations.
// Reports are append-only: insert and delete, never update.
type ReportCollection interface {
	InsertReport(ctx context.Context, report *models.Report) error
	FindReportByID(ctx context.Context, id string) (*models.Report, error)
	DeleteReport(ctx context.Context, id string) error
}
