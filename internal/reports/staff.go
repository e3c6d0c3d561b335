package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

// TechnicianEfficiency is the per-technician block of a staff-efficiency
// report.
type TechnicianEfficiency struct {
	TechnicianID           string         `json:"technician_id"`
	TechnicianName         string         `json:"technician_name"`
	TotalCompleted         int            `json:"total_completed"`
	ByType                 map[string]int `json:"by_type"`
	AvgCompletionTimeHours float64        `json:"avg_completion_time_hours"`
}

// StaffContent is the serialized payload of a staff-efficiency report. The
// overall average is the mean of per-technician averages, weighting every
// technician equally regardless of volume; it is not a pooled per-work-order
// mean. The field name carries that policy so callers cannot misread it.
type StaffContent struct {
	Technicians                     []TechnicianEfficiency `json:"technicians"`
	OverallAvgOfTechnicianAvgsHours float64                `json:"overall_avg_of_technician_avgs_hours"`
}

// StaffMetrics is the serialized metrics block of a staff-efficiency report.
type StaffMetrics struct {
	TechnicianCount                 int     `json:"technician_count"`
	TotalCompleted                  int     `json:"total_completed"`
	OverallAvgOfTechnicianAvgsHours float64 `json:"overall_avg_of_technician_avgs_hours"`
}

// GenerateStaffEfficiencyReport groups completed, assigned work orders by
// technician and computes average completion times. Unresolvable assignees
// are skipped with a warning. A period with zero qualifying work orders still
// produces a report with empty content and zero metrics.
func (e *Engine) GenerateStaffEfficiencyReport(ctx context.Context, periodStart, periodEnd time.Time, generatedBy string) (*models.Report, error) {
	if err := validate(periodStart, periodEnd, generatedBy); err != nil {
		return nil, err
	}

	orders, err := e.WorkOrders.FindCompletedInRange(ctx, periodStart, periodEnd, "")
	if err != nil {
		return nil, fmt.Errorf("find completed work orders: %w", err)
	}

	type bucket struct {
		hours  float64
		count  int
		byType map[string]int
	}
	buckets := make(map[string]*bucket)
	for _, wo := range orders {
		if wo.AssignedTo == "" || wo.CompletedAt == nil || wo.ReportedAt.IsZero() {
			continue
		}
		b, ok := buckets[wo.AssignedTo]
		if !ok {
			b = &bucket{byType: make(map[string]int)}
			buckets[wo.AssignedTo] = b
		}
		b.hours += wo.DowntimeHours()
		b.count++
		b.byType[string(wo.Type)]++
	}

	content := StaffContent{Technicians: []TechnicianEfficiency{}}
	var sumOfAverages float64
	totalCompleted := 0
	for id, b := range buckets {
		user, err := e.Users.FindUserByID(ctx, id)
		if err != nil {
			log.WithError(err).WithField("user_id", id).Warn("assignee lookup failed in staff efficiency report")
			continue
		}
		avg := round2(b.hours / float64(b.count))
		content.Technicians = append(content.Technicians, TechnicianEfficiency{
			TechnicianID:           id,
			TechnicianName:         user.DisplayName(),
			TotalCompleted:         b.count,
			ByType:                 b.byType,
			AvgCompletionTimeHours: avg,
		})
		sumOfAverages += avg
		totalCompleted += b.count
	}
	sort.Slice(content.Technicians, func(i, j int) bool {
		return content.Technicians[i].TechnicianID < content.Technicians[j].TechnicianID
	})
	if len(content.Technicians) > 0 {
		content.OverallAvgOfTechnicianAvgsHours = round2(sumOfAverages / float64(len(content.Technicians)))
	}

	metrics := StaffMetrics{
		TechnicianCount:                 len(content.Technicians),
		TotalCompleted:                  totalCompleted,
		OverallAvgOfTechnicianAvgsHours: content.OverallAvgOfTechnicianAvgsHours,
	}

	title := "Staff Efficiency Report"
	return e.store(ctx, models.ReportStaffEfficiency, title, periodStart, periodEnd, generatedBy, content, metrics)
}
