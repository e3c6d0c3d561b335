package scheduler

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/db"
	"github.com/maintdesk/maintenance-backend/internal/models"
)

// Engine converts due preventive maintenance schedules into work orders and
// advances their due dates. Every pass re-reads current data and writes back
// only the fields it owns: next_due_date and last_generated_date on the
// schedule, plus the created work order.
type Engine struct {
	Schedules  db.ScheduleCollection
	WorkOrders db.WorkOrderCollection
	Equipment  db.EquipmentCollection
	Now        func() time.Time
}

// New creates a scheduler engine over the given collections.
func New(schedules db.ScheduleCollection, workOrders db.WorkOrderCollection, equipment db.EquipmentCollection) *Engine {
	return &Engine{
		Schedules:  schedules,
		WorkOrders: workOrders,
		Equipment:  equipment,
		Now:        time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// ScheduleError records a single schedule that failed to fire.
type ScheduleError struct {
	ScheduleID string `json:"schedule_id"`
	Error      string `json:"error"`
}

// GenerateResult summarizes one scheduler pass.
type GenerateResult struct {
	Generated int             `json:"generated_count"`
	Failed    int             `json:"error_count"`
	Errors    []ScheduleError `json:"errors,omitempty"`
}

// Advance returns the due date one frequency step after from. The second
// return value is false when the frequency was unrecognized and the monthly
// fallback was applied. Calendar arithmetic follows time.AddDate, so
// month-end dates normalize forward (Jan 31 + 1 month lands in early March).
func Advance(from time.Time, frequency models.Frequency) (time.Time, bool) {
	switch frequency {
	case models.FrequencyDaily:
		return from.AddDate(0, 0, 1), true
	case models.FrequencyWeekly:
		return from.AddDate(0, 0, 7), true
	case models.FrequencyMonthly:
		return from.AddDate(0, 1, 0), true
	case models.FrequencyQuarterly:
		return from.AddDate(0, 3, 0), true
	case models.FrequencyAnnually:
		return from.AddDate(1, 0, 0), true
	default:
		return from.AddDate(0, 1, 0), false
	}
}

// GenerateDueWorkOrders selects every active schedule due at now, creates one
// preventive work order per schedule and advances the schedule by exactly one
// frequency step. Schedules are processed independently: a failure on one
// never aborts the rest. A schedule overdue by several periods still fires
// only once per pass; it simply comes up due again on the next pass.
func (e *Engine) GenerateDueWorkOrders(ctx context.Context, now time.Time) (GenerateResult, error) {
	if now.IsZero() {
		now = e.now()
	}

	var result GenerateResult
	due, err := e.Schedules.FindDueSchedules(ctx, now)
	if err != nil {
		return result, fmt.Errorf("find due schedules: %w", err)
	}

	for _, schedule := range due {
		if err := e.fire(ctx, schedule, now); err != nil {
			log.WithError(err).WithField("schedule_id", schedule.ID.Hex()).Warn("schedule firing failed")
			result.Failed++
			result.Errors = append(result.Errors, ScheduleError{
				ScheduleID: schedule.ID.Hex(),
				Error:      err.Error(),
			})
			continue
		}
		result.Generated++
	}

	log.WithFields(log.Fields{
		"generated": result.Generated,
		"failed":    result.Failed,
	}).Info("scheduler pass finished")
	return result, nil
}

// fire creates the work order for one due schedule and advances it. The work
// order insert and the schedule update are each atomic at the item level;
// there is no cross-item rollback.
func (e *Engine) fire(ctx context.Context, schedule models.PMSchedule, now time.Time) error {
	equipment, err := e.Equipment.FindEquipmentByID(ctx, schedule.EquipmentID)
	if err != nil {
		return fmt.Errorf("equipment lookup: %w", err)
	}

	next, recognized := Advance(schedule.NextDueDate, schedule.Frequency)
	if !recognized {
		log.WithFields(log.Fields{
			"schedule_id": schedule.ID.Hex(),
			"frequency":   schedule.Frequency,
		}).Warn("unrecognized schedule frequency, treating as monthly")
	}

	status := models.StatusReported
	if schedule.AssignedTo != "" {
		status = models.StatusAssigned
	}

	wo := models.WorkOrder{
		EquipmentID: schedule.EquipmentID,
		Issue:       schedule.Task,
		Description: fmt.Sprintf("Scheduled %s maintenance for %s (%s)", schedule.Frequency, equipment.Name, equipment.SerialNumber),
		Type:        models.WorkOrderPreventive,
		Priority:    "Medium",
		Status:      status,
		ReportedAt:  now,
		AssignedTo:  schedule.AssignedTo,
	}
	if err := e.WorkOrders.InsertWorkOrder(ctx, wo); err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}

	if err := e.Schedules.AdvanceSchedule(ctx, schedule.ID.Hex(), next, now); err != nil {
		return fmt.Errorf("advance schedule: %w", err)
	}
	return nil
}
