package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

// EquipmentDowntime is the per-equipment block of a downtime report.
type EquipmentDowntime struct {
	EquipmentID   string  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	WorkOrders    int     `json:"work_order_count"`
	TotalHours    float64 `json:"total_downtime_hours"`
	AverageHours  float64 `json:"avg_downtime_hours"`
}

// DowntimeContent is the serialized payload of a downtime report.
type DowntimeContent struct {
	Equipment  []EquipmentDowntime `json:"equipment"`
	TotalHours float64             `json:"total_downtime_hours"`
	WorkOrders int                 `json:"work_order_count"`
}

// DowntimeMetrics is the serialized metrics block of a downtime report.
type DowntimeMetrics struct {
	TotalDowntimeHours float64 `json:"total_downtime_hours"`
	AvgDowntimeHours   float64 `json:"avg_downtime_hours"`
	WorkOrderCount     int     `json:"work_order_count"`
	EquipmentCount     int     `json:"equipment_count"`
}

// GenerateDowntimeReport computes per-equipment downtime over completed
// corrective work orders whose completion falls inside the period. Downtime
// is the exact elapsed time between report and completion, in hours.
func (e *Engine) GenerateDowntimeReport(ctx context.Context, periodStart, periodEnd time.Time, generatedBy string) (*models.Report, error) {
	if err := validate(periodStart, periodEnd, generatedBy); err != nil {
		return nil, err
	}

	orders, err := e.WorkOrders.FindCompletedInRange(ctx, periodStart, periodEnd, models.WorkOrderCorrective)
	if err != nil {
		return nil, fmt.Errorf("find corrective work orders: %w", err)
	}

	type bucket struct {
		hours float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, wo := range orders {
		if wo.CompletedAt == nil || wo.ReportedAt.IsZero() {
			continue
		}
		b, ok := buckets[wo.EquipmentID]
		if !ok {
			b = &bucket{}
			buckets[wo.EquipmentID] = b
		}
		b.hours += wo.DowntimeHours()
		b.count++
	}

	names := make(map[string]string)
	content := DowntimeContent{Equipment: []EquipmentDowntime{}}
	for id, b := range buckets {
		content.Equipment = append(content.Equipment, EquipmentDowntime{
			EquipmentID:   id,
			EquipmentName: e.equipmentName(ctx, names, id),
			WorkOrders:    b.count,
			TotalHours:    round2(b.hours),
			AverageHours:  round2(b.hours / float64(b.count)),
		})
		content.TotalHours += b.hours
		content.WorkOrders += b.count
	}
	sort.Slice(content.Equipment, func(i, j int) bool {
		return content.Equipment[i].EquipmentID < content.Equipment[j].EquipmentID
	})
	content.TotalHours = round2(content.TotalHours)

	metrics := DowntimeMetrics{
		TotalDowntimeHours: content.TotalHours,
		WorkOrderCount:     content.WorkOrders,
		EquipmentCount:     len(content.Equipment),
	}
	if content.WorkOrders > 0 {
		metrics.AvgDowntimeHours = round2(content.TotalHours / float64(content.WorkOrders))
	}

	title := "Equipment Downtime Report"
	return e.store(ctx, models.ReportPerformance, title, periodStart, periodEnd, generatedBy, content, metrics)
}
