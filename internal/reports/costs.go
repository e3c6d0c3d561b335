package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

// EquipmentCosts is the per-equipment block of a maintenance-cost report.
type EquipmentCosts struct {
	EquipmentID   string  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	WorkOrders    int     `json:"work_order_count"`
	DirectCost    float64 `json:"direct_cost"`
	PartsCost     float64 `json:"parts_cost"`
	CombinedCost  float64 `json:"combined_cost"`
}

// CostsContent is the serialized payload of a maintenance-cost report. The
// work-order and maintenance-history cost streams are independent and are not
// deduplicated against each other; CombinedTotal is their naive sum and must
// be read as approximate.
type CostsContent struct {
	Equipment          []EquipmentCosts `json:"equipment"`
	WorkOrderCostTotal float64          `json:"work_order_cost_total"`
	PartsCostTotal     float64          `json:"parts_cost_total"`
	HistoryCostTotal   float64          `json:"history_cost_total"`
	CombinedTotal      float64          `json:"combined_total_approximate"`
	Note               string           `json:"note"`
}

// CostsMetrics is the serialized metrics block of a maintenance-cost report.
type CostsMetrics struct {
	WorkOrderCostTotal float64 `json:"work_order_cost_total"`
	PartsCostTotal     float64 `json:"parts_cost_total"`
	HistoryCostTotal   float64 `json:"history_cost_total"`
	CombinedTotal      float64 `json:"combined_total_approximate"`
	WorkOrderCount     int     `json:"work_order_count"`
	HistoryRecordCount int     `json:"history_record_count"`
}

const costStreamsNote = "work-order and maintenance-history cost streams may overlap; the combined total is a naive sum, not an authoritative figure"

// GenerateMaintenanceCostsReport aggregates direct work-order costs, spare
// part consumption costs and the separate maintenance-history cost stream
// over the period. Part unit costs are looked up once per run; a missing part
// reference contributes 0 and is logged.
func (e *Engine) GenerateMaintenanceCostsReport(ctx context.Context, periodStart, periodEnd time.Time, generatedBy string) (*models.Report, error) {
	if err := validate(periodStart, periodEnd, generatedBy); err != nil {
		return nil, err
	}

	orders, err := e.WorkOrders.FindCompletedInRange(ctx, periodStart, periodEnd, "")
	if err != nil {
		return nil, fmt.Errorf("find completed work orders: %w", err)
	}

	unitCosts := make(map[string]float64)
	partCost := func(usage models.PartUsage) float64 {
		cost, ok := unitCosts[usage.PartID]
		if !ok {
			part, err := e.SpareParts.FindSparePartByID(ctx, usage.PartID)
			if err != nil {
				log.WithError(err).WithField("part_id", usage.PartID).Warn("spare part lookup failed in cost report")
				cost = 0
			} else {
				cost = part.UnitCost
			}
			unitCosts[usage.PartID] = cost
		}
		return cost * float64(usage.Quantity)
	}

	type bucket struct {
		direct float64
		parts  float64
		count  int
	}
	buckets := make(map[string]*bucket)
	for _, wo := range orders {
		b, ok := buckets[wo.EquipmentID]
		if !ok {
			b = &bucket{}
			buckets[wo.EquipmentID] = b
		}
		if wo.Cost != nil {
			b.direct += *wo.Cost
		}
		for _, usage := range wo.PartsUsed {
			b.parts += partCost(usage)
		}
		b.count++
	}

	names := make(map[string]string)
	content := CostsContent{Equipment: []EquipmentCosts{}, Note: costStreamsNote}
	workOrderCount := 0
	for id, b := range buckets {
		content.Equipment = append(content.Equipment, EquipmentCosts{
			EquipmentID:   id,
			EquipmentName: e.equipmentName(ctx, names, id),
			WorkOrders:    b.count,
			DirectCost:    round2(b.direct),
			PartsCost:     round2(b.parts),
			CombinedCost:  round2(b.direct + b.parts),
		})
		content.WorkOrderCostTotal += b.direct
		content.PartsCostTotal += b.parts
		workOrderCount += b.count
	}
	sort.Slice(content.Equipment, func(i, j int) bool {
		return content.Equipment[i].EquipmentID < content.Equipment[j].EquipmentID
	})

	// Independent stream: historical records keyed by "YYYY-MM-DD" strings.
	records, err := e.History.FindHistoryInDateRange(ctx,
		periodStart.UTC().Format("2006-01-02"), periodEnd.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("find maintenance history: %w", err)
	}
	for _, record := range records {
		content.HistoryCostTotal += record.Cost
	}

	content.WorkOrderCostTotal = round2(content.WorkOrderCostTotal)
	content.PartsCostTotal = round2(content.PartsCostTotal)
	content.HistoryCostTotal = round2(content.HistoryCostTotal)
	content.CombinedTotal = round2(content.WorkOrderCostTotal + content.PartsCostTotal + content.HistoryCostTotal)

	metrics := CostsMetrics{
		WorkOrderCostTotal: content.WorkOrderCostTotal,
		PartsCostTotal:     content.PartsCostTotal,
		HistoryCostTotal:   content.HistoryCostTotal,
		CombinedTotal:      content.CombinedTotal,
		WorkOrderCount:     workOrderCount,
		HistoryRecordCount: len(records),
	}

	title := "Maintenance Costs Report"
	return e.store(ctx, models.ReportFinancial, title, periodStart, periodEnd, generatedBy, content, metrics)
}
