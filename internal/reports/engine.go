package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/db"
	"github.com/maintdesk/maintenance-backend/internal/models"
)

var (
	// ErrInvalidPeriod is returned when the report period bounds are malformed.
	ErrInvalidPeriod = errors.New("invalid report period")
	// ErrMissingGenerator is returned when no generating user is supplied.
	ErrMissingGenerator = errors.New("missing generating user")
)

// Engine computes downtime, cost and staff-efficiency summaries from
// historical work-order data. All computations are read-only except for the
// single Report row each one inserts; re-running with identical period bounds
// produces identical content and metrics.
type Engine struct {
	WorkOrders db.WorkOrderCollection
	History    db.HistoryCollection
	SpareParts db.SparePartCollection
	Equipment  db.EquipmentCollection
	Users      db.UserCollection
	Reports    db.ReportCollection
	Now        func() time.Time
}

// New creates a reporting engine over the given collections.
func New(workOrders db.WorkOrderCollection, history db.HistoryCollection, spareParts db.SparePartCollection,
	equipment db.EquipmentCollection, users db.UserCollection, reports db.ReportCollection) *Engine {
	return &Engine{
		WorkOrders: workOrders,
		History:    history,
		SpareParts: spareParts,
		Equipment:  equipment,
		Users:      users,
		Reports:    reports,
		Now:        time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// validate rejects malformed inputs before any store access.
func validate(periodStart, periodEnd time.Time, generatedBy string) error {
	if periodStart.IsZero() || periodEnd.IsZero() || periodEnd.Before(periodStart) {
		return fmt.Errorf("%w: start %v, end %v", ErrInvalidPeriod, periodStart, periodEnd)
	}
	if generatedBy == "" {
		return ErrMissingGenerator
	}
	return nil
}

// store marshals the payloads and inserts the report row. The insert is the
// computation's only write: it either lands wholly or the operation fails
// with no partial report.
func (e *Engine) store(ctx context.Context, reportType models.ReportType, title string,
	periodStart, periodEnd time.Time, generatedBy string, content, metrics any) (*models.Report, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal report content: %w", err)
	}
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return nil, fmt.Errorf("marshal report metrics: %w", err)
	}
	report := &models.Report{
		Type:        reportType,
		Title:       title,
		Content:     string(contentJSON),
		Period:      models.FormatPeriod(periodStart, periodEnd),
		Metrics:     string(metricsJSON),
		GeneratedBy: generatedBy,
		CreatedAt:   e.now(),
	}
	if err := e.Reports.InsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return report, nil
}

// equipmentName resolves an equipment ID to its display name, caching lookups
// for the duration of one report run. A dangling reference falls back to the
// raw ID with a warning.
func (e *Engine) equipmentName(ctx context.Context, cache map[string]string, id string) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := id
	equipment, err := e.Equipment.FindEquipmentByID(ctx, id)
	if err != nil {
		log.WithError(err).WithField("equipment_id", id).Warn("equipment lookup failed in report")
	} else {
		name = equipment.Name
	}
	cache[id] = name
	return name
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
