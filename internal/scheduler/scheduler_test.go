package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

type fakeScheduleCollection struct {
	schedules map[string]*models.PMSchedule
}

func newFakeScheduleCollection() *fakeScheduleCollection {
	return &fakeScheduleCollection{schedules: make(map[string]*models.PMSchedule)}
}

func (f *fakeScheduleCollection) add(s models.PMSchedule) string {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.schedules[s.ID.Hex()] = &s
	return s.ID.Hex()
}

func (f *fakeScheduleCollection) InsertSchedule(ctx context.Context, s models.PMSchedule) error {
	f.add(s)
	return nil
}

func (f *fakeScheduleCollection) FindScheduleByID(ctx context.Context, id string) (*models.PMSchedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, errors.New("schedule not found")
	}
	found := *s
	return &found, nil
}

func (f *fakeScheduleCollection) FindDueSchedules(ctx context.Context, now time.Time) ([]models.PMSchedule, error) {
	var due []models.PMSchedule
	for _, s := range f.schedules {
		if s.IsActive && !s.NextDueDate.After(now) {
			due = append(due, *s)
		}
	}
	return due, nil
}

func (f *fakeScheduleCollection) AdvanceSchedule(ctx context.Context, id string, nextDue, lastGenerated time.Time) error {
	s, ok := f.schedules[id]
	if !ok {
		return errors.New("schedule not found")
	}
	s.NextDueDate = nextDue
	gen := lastGenerated
	s.LastGeneratedDate = &gen
	return nil
}

type fakeWorkOrderCollection struct {
	inserted  []models.WorkOrder
	insertErr error
}

func (f *fakeWorkOrderCollection) InsertWorkOrder(ctx context.Context, wo models.WorkOrder) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	wo.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, wo)
	return nil
}

func (f *fakeWorkOrderCollection) FindWorkOrderByID(ctx context.Context, id string) (*models.WorkOrder, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeWorkOrderCollection) FindCompletedInRange(ctx context.Context, start, end time.Time, woType models.WorkOrderType) ([]models.WorkOrder, error) {
	return nil, nil
}

func (f *fakeWorkOrderCollection) UpdateWorkOrderStatus(ctx context.Context, id string, status models.WorkOrderStatus) error {
	return nil
}

func (f *fakeWorkOrderCollection) CompleteWorkOrder(ctx context.Context, id string, completedAt time.Time, cost *float64, parts []models.PartUsage) error {
	return nil
}

type fakeEquipmentCollection struct {
	equipment map[string]*models.Equipment
}

func newFakeEquipmentCollection() *fakeEquipmentCollection {
	return &fakeEquipmentCollection{equipment: make(map[string]*models.Equipment)}
}

func (f *fakeEquipmentCollection) add(name string) string {
	e := &models.Equipment{ID: primitive.NewObjectID(), Name: name, SerialNumber: "SN-" + name}
	f.equipment[e.ID.Hex()] = e
	return e.ID.Hex()
}

func (f *fakeEquipmentCollection) InsertEquipment(ctx context.Context, e models.Equipment) error {
	return nil
}

func (f *fakeEquipmentCollection) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	e, ok := f.equipment[id]
	if !ok {
		return nil, errors.New("equipment not found")
	}
	return e, nil
}

func newTestEngine() (*Engine, *fakeScheduleCollection, *fakeWorkOrderCollection, *fakeEquipmentCollection) {
	schedules := newFakeScheduleCollection()
	workOrders := &fakeWorkOrderCollection{}
	equipment := newFakeEquipmentCollection()
	return New(schedules, workOrders, equipment), schedules, workOrders, equipment
}

func TestAdvance(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		frequency  models.Frequency
		expected   time.Time
		recognized bool
	}{
		{"daily", models.FrequencyDaily, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"weekly", models.FrequencyWeekly, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), true},
		{"monthly", models.FrequencyMonthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"quarterly", models.FrequencyQuarterly, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true},
		{"annually", models.FrequencyAnnually, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"unknown falls back to monthly", "biweekly", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recognized := Advance(from, tt.frequency)
			assert.True(t, got.Equal(tt.expected), "Advance(%s) = %v, want %v", tt.frequency, got, tt.expected)
			assert.Equal(t, tt.recognized, recognized)
			assert.True(t, got.After(from), "advance must be strictly monotonic")
		})
	}
}

func TestGenerateDueWorkOrders_MonthlyScenario(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Conveyor A")

	scheduleID := schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Belt inspection",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	result, err := engine.GenerateDueWorkOrders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, workOrders.inserted, 1)
	wo := workOrders.inserted[0]
	assert.Equal(t, models.WorkOrderPreventive, wo.Type)
	assert.Equal(t, models.StatusReported, wo.Status)
	assert.Equal(t, "Belt inspection", wo.Issue)
	assert.Contains(t, wo.Description, "Conveyor A")
	assert.Contains(t, wo.Description, "monthly")
	assert.True(t, wo.ReportedAt.Equal(now))

	updated, err := schedules.FindScheduleByID(context.Background(), scheduleID)
	require.NoError(t, err)
	assert.True(t, updated.NextDueDate.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, updated.LastGeneratedDate)
	assert.True(t, updated.LastGeneratedDate.Equal(now))
}

func TestGenerateDueWorkOrders_AssigneeGetsAssignedStatus(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Pump B")

	schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Seal check",
		Frequency:   models.FrequencyWeekly,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		AssignedTo:  primitive.NewObjectID().Hex(),
	})

	_, err := engine.GenerateDueWorkOrders(context.Background(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, workOrders.inserted, 1)
	assert.Equal(t, models.StatusAssigned, workOrders.inserted[0].Status)
}

func TestGenerateDueWorkOrders_Idempotence(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Chiller C")

	schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Coolant flush",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	first, err := engine.GenerateDueWorkOrders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Generated)

	// The advance moved next_due_date past now, so a second pass at the same
	// instant fires nothing.
	second, err := engine.GenerateDueWorkOrders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Len(t, workOrders.inserted, 1)
}

func TestGenerateDueWorkOrders_NoCatchUpForOverdueSchedules(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Press D")

	// Daily schedule untouched for 10 days: one firing per pass, never one
	// per missed occurrence.
	scheduleID := schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Daily check",
		Frequency:   models.FrequencyDaily,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	now := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	result, err := engine.GenerateDueWorkOrders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Len(t, workOrders.inserted, 1)

	updated, _ := schedules.FindScheduleByID(context.Background(), scheduleID)
	assert.True(t, updated.NextDueDate.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		"advance is exactly one step, not a catch-up jump")

	// Still under-due: the next pass fires again.
	result, err = engine.GenerateDueWorkOrders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Len(t, workOrders.inserted, 2)
}

func TestGenerateDueWorkOrders_UnrecognizedFrequencyFallsBackToMonthly(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Mixer E")

	scheduleID := schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Blade check",
		Frequency:   "fortnightly",
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	result, err := engine.GenerateDueWorkOrders(context.Background(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated, "data-quality anomaly must not drop the schedule")
	assert.Len(t, workOrders.inserted, 1)

	updated, _ := schedules.FindScheduleByID(context.Background(), scheduleID)
	assert.True(t, updated.NextDueDate.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGenerateDueWorkOrders_BrokenEquipmentReferenceIsIsolated(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	goodEquipID := equipment.add("Lathe F")

	schedules.add(models.PMSchedule{
		EquipmentID: primitive.NewObjectID().Hex(), // dangling reference
		Task:        "Broken ref",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})
	schedules.add(models.PMSchedule{
		EquipmentID: goodEquipID,
		Task:        "Spindle check",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	result, err := engine.GenerateDueWorkOrders(context.Background(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "equipment lookup")
	assert.Len(t, workOrders.inserted, 1)
}

func TestGenerateDueWorkOrders_SkipsInactiveAndNotDue(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Boiler G")

	schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Disabled",
		Frequency:   models.FrequencyDaily,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    false,
	})
	schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Future",
		Frequency:   models.FrequencyDaily,
		NextDueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	result, err := engine.GenerateDueWorkOrders(context.Background(), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Empty(t, workOrders.inserted)
}

func TestGenerateDueWorkOrders_UsesInjectedClockWhenNowIsZero(t *testing.T) {
	engine, schedules, workOrders, equipment := newTestEngine()
	equipID := equipment.add("Fan H")

	schedules.add(models.PMSchedule{
		EquipmentID: equipID,
		Task:        "Filter swap",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	fixed := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	engine.Now = func() time.Time { return fixed }

	result, err := engine.GenerateDueWorkOrders(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	require.Len(t, workOrders.inserted, 1)
	assert.True(t, workOrders.inserted[0].ReportedAt.Equal(fixed))
}
