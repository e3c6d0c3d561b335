package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maintdesk/maintenance-backend/internal/auth"
	"github.com/maintdesk/maintenance-backend/internal/contracts"
	"github.com/maintdesk/maintenance-backend/internal/db"
	"github.com/maintdesk/maintenance-backend/internal/models"
	"github.com/maintdesk/maintenance-backend/internal/trigger"
)

// Equipment name pools for realistic demo data
var equipmentTypes = []string{
	"Centrifugal Pump", "Air Compressor", "HVAC Unit", "Conveyor Belt",
	"Forklift", "CNC Mill", "Boiler", "Diesel Generator",
	"Cooling Tower", "Packaging Line",
}

var equipmentLocations = []string{
	"Building A", "Building B", "Warehouse 1", "Warehouse 2",
	"Plant Floor", "Rooftop", "Loading Dock", "Utility Room",
}

var vendors = []string{
	"Acme Industrial Services", "Northfield Mechanical", "ProServ Maintenance",
	"Allied Equipment Care", "Greenline Facilities",
}

var issues = []string{
	"Abnormal vibration", "Oil leak detected", "Overheating under load",
	"Pressure drop", "Electrical fault", "Bearing noise", "Belt slippage",
}

var partNames = []string{
	"Bearing Set", "Drive Belt", "Oil Filter", "Air Filter", "Gasket Kit",
	"Hydraulic Hose", "Contactor", "Pressure Sensor", "Coupling", "Seal Kit",
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}

	numEquipment := getEnvInt("SIM_EQUIPMENT", 10)
	numWorkOrders := getEnvInt("SIM_WORK_ORDERS", 40)
	numHistory := getEnvInt("SIM_HISTORY", 25)

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	database := db.Database(client)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	equipmentStore := &db.MongoEquipmentCollection{Collection: database.Collection("equipment")}
	partStore := &db.MongoSparePartCollection{Collection: database.Collection("spare_parts")}
	userStore := &db.MongoUserCollection{Collection: database.Collection("users")}
	scheduleStore := &db.MongoScheduleCollection{Collection: database.Collection("pm_schedules")}
	contractStore := &db.MongoContractCollection{Collection: database.Collection("contracts")}
	workOrderStore := &db.MongoWorkOrderCollection{Collection: database.Collection("work_orders")}
	historyStore := &db.MongoHistoryCollection{Collection: database.Collection("maintenance_history")}

	now := time.Now().UTC()

	equipmentIDs := seedEquipment(ctx, equipmentStore, numEquipment, now)
	partIDs := seedSpareParts(ctx, partStore, now)
	technicians := seedUsers(ctx, userStore, now)
	seedSchedules(ctx, scheduleStore, equipmentIDs, technicians, now)
	seedContracts(ctx, contractStore, equipmentIDs, now)
	seedWorkOrders(ctx, workOrderStore, equipmentIDs, partIDs, technicians, numWorkOrders, now)
	seedHistory(ctx, historyStore, equipmentIDs, numHistory, now)

	log.Info("seeding complete")

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		return
	}
	publishTicks(broker)
}

func seedEquipment(ctx context.Context, store db.EquipmentCollection, count int, now time.Time) []string {
	statuses := []string{"operational", "operational", "operational", "under_maintenance", "out_of_service"}
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		eq := models.Equipment{
			ID:           primitive.NewObjectID(),
			Name:         fmt.Sprintf("%s #%d", equipmentTypes[i%len(equipmentTypes)], i+1),
			Model:        fmt.Sprintf("MDL-%04d", rand.Intn(9000)+1000),
			SerialNumber: fmt.Sprintf("SN-%08d", rand.Intn(90000000)+10000000),
			Location:     equipmentLocations[rand.Intn(len(equipmentLocations))],
			Status:       statuses[rand.Intn(len(statuses))],
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.InsertEquipment(ctx, eq); err != nil {
			log.WithError(err).WithField("name", eq.Name).Fatal("failed to insert equipment")
		}
		ids = append(ids, eq.ID.Hex())
	}
	log.WithField("count", count).Info("seeded equipment")
	return ids
}

func seedSpareParts(ctx context.Context, store db.SparePartCollection, now time.Time) []string {
	ids := make([]string, 0, len(partNames))
	for i, name := range partNames {
		part := models.SparePart{
			ID:              primitive.NewObjectID(),
			Name:            name,
			PartNumber:      fmt.Sprintf("PN-%03d", i+1),
			UnitCost:        float64(rand.Intn(45000)+500) / 100, // 5.00 .. 455.00
			QuantityInStock: rand.Intn(50) + 5,
			Supplier:        vendors[rand.Intn(len(vendors))],
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := store.InsertSparePart(ctx, part); err != nil {
			log.WithError(err).WithField("name", part.Name).Fatal("failed to insert spare part")
		}
		ids = append(ids, part.ID.Hex())
	}
	log.WithField("count", len(ids)).Info("seeded spare parts")
	return ids
}

// seedUsers creates one account per role plus extra technicians, all with the
// password "demo1234". Returns the technician user IDs.
func seedUsers(ctx context.Context, store db.UserCollection, now time.Time) []string {
	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}
	hash, err := authService.HashPassword("demo1234")
	if err != nil {
		log.WithError(err).Fatal("failed to hash demo password")
	}
	users := []models.User{
		{Username: "admin", Email: "admin@maintdesk.local", Role: models.RoleAdmin, FirstName: "Ada", LastName: "Adminson"},
		{Username: "manager", Email: "manager@maintdesk.local", Role: models.RoleManager, FirstName: "Mona", LastName: "Granger"},
		{Username: "viewer", Email: "viewer@maintdesk.local", Role: models.RoleViewer, FirstName: "Vic", LastName: "Okafor"},
		{Username: "tech.jones", Email: "jones@maintdesk.local", Role: models.RoleTechnician, FirstName: "Sam", LastName: "Jones"},
		{Username: "tech.rivera", Email: "rivera@maintdesk.local", Role: models.RoleTechnician, FirstName: "Lea", LastName: "Rivera"},
		{Username: "tech.okada", Email: "okada@maintdesk.local", Role: models.RoleTechnician, FirstName: "Ken", LastName: "Okada"},
	}
	technicians := make([]string, 0, 3)
	for _, u := range users {
		u.ID = primitive.NewObjectID()
		u.PasswordHash = hash
		u.IsActive = true
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := store.InsertUser(ctx, u); err != nil {
			log.WithError(err).WithField("username", u.Username).Fatal("failed to insert user")
		}
		if u.Role == models.RoleTechnician {
			technicians = append(technicians, u.ID.Hex())
		}
	}
	log.WithField("count", len(users)).Info("seeded users")
	return technicians
}

func seedSchedules(ctx context.Context, store db.ScheduleCollection, equipmentIDs, technicians []string, now time.Time) {
	frequencies := []models.Frequency{
		models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly,
		models.FrequencyQuarterly, models.FrequencyAnnually,
	}
	tasks := []string{"Lubrication check", "Filter replacement", "Full inspection", "Calibration", "Belt tension check"}
	count := 0
	for i, eqID := range equipmentIDs {
		// Stagger due dates so a scheduler pass right after seeding has
		// some overdue work to generate.
		due := now.AddDate(0, 0, rand.Intn(20)-7)
		assignee := ""
		if rand.Intn(2) == 0 {
			assignee = technicians[rand.Intn(len(technicians))]
		}
		sched := models.PMSchedule{
			EquipmentID: eqID,
			Task:        tasks[i%len(tasks)],
			Frequency:   frequencies[i%len(frequencies)],
			NextDueDate: due,
			IsActive:    true,
			AssignedTo:  assignee,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.InsertSchedule(ctx, sched); err != nil {
			log.WithError(err).WithField("equipment_id", eqID).Fatal("failed to insert schedule")
		}
		count++
	}
	log.WithField("count", count).Info("seeded schedules")
}

func seedContracts(ctx context.Context, store db.ContractCollection, equipmentIDs []string, now time.Time) {
	count := 0
	for i, eqID := range equipmentIDs {
		if i%2 == 1 {
			continue
		}
		// Spread end dates across expired, inside the renewal window, and
		// comfortably in the future.
		end := now.AddDate(0, 0, rand.Intn(120)-20)
		contract := models.Contract{
			EquipmentID:         eqID,
			Vendor:              vendors[rand.Intn(len(vendors))],
			StartDate:           end.AddDate(-1, 0, 0),
			EndDate:             end,
			RenewalReminderDate: contracts.DefaultReminderDate(end),
			Details:             "Annual service agreement covering parts and labour",
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		contract.Status = contracts.InitialStatus(contract, now, contracts.DefaultReminderThresholdDays)
		if err := store.InsertContract(ctx, contract); err != nil {
			log.WithError(err).WithField("equipment_id", eqID).Fatal("failed to insert contract")
		}
		count++
	}
	log.WithField("count", count).Info("seeded contracts")
}

func seedWorkOrders(ctx context.Context, store db.WorkOrderCollection, equipmentIDs, partIDs, technicians []string, count int, now time.Time) {
	for i := 0; i < count; i++ {
		woType := models.WorkOrderCorrective
		if rand.Intn(3) == 0 {
			woType = models.WorkOrderPreventive
		}
		reported := now.AddDate(0, 0, -rand.Intn(90)-1)
		completed := reported.Add(time.Duration(rand.Intn(96)+2) * time.Hour)
		cost := float64(rand.Intn(90000)+1000) / 100
		var parts []models.PartUsage
		if rand.Intn(2) == 0 {
			parts = append(parts, models.PartUsage{
				PartID:   partIDs[rand.Intn(len(partIDs))],
				Quantity: rand.Intn(3) + 1,
			})
		}
		wo := models.WorkOrder{
			EquipmentID: equipmentIDs[rand.Intn(len(equipmentIDs))],
			Issue:       issues[rand.Intn(len(issues))],
			Type:        woType,
			Priority:    []string{"Low", "Medium", "High"}[rand.Intn(3)],
			Status:      models.StatusCompleted,
			ReportedAt:  reported,
			CompletedAt: &completed,
			AssignedTo:  technicians[rand.Intn(len(technicians))],
			Cost:        &cost,
			PartsUsed:   parts,
			CreatedAt:   reported,
			UpdatedAt:   completed,
		}
		if err := store.InsertWorkOrder(ctx, wo); err != nil {
			log.WithError(err).Fatal("failed to insert work order")
		}
	}
	log.WithField("count", count).Info("seeded completed work orders")
}

func seedHistory(ctx context.Context, store db.HistoryCollection, equipmentIDs []string, count int, now time.Time) {
	for i := 0; i < count; i++ {
		date := now.AddDate(0, 0, -rand.Intn(365)-30)
		record := models.MaintenanceHistory{
			EquipmentID: equipmentIDs[rand.Intn(len(equipmentIDs))],
			Date:        date.Format("2006-01-02"),
			Description: "Imported service record: " + issues[rand.Intn(len(issues))],
			Cost:        float64(rand.Intn(60000)+500) / 100,
			PerformedBy: vendors[rand.Intn(len(vendors))],
		}
		if err := store.InsertHistory(ctx, record); err != nil {
			log.WithError(err).Fatal("failed to insert history record")
		}
	}
	log.WithField("count", count).Info("seeded maintenance history")
}

// publishTicks fires one scheduler tick and one contract tick, then keeps
// ticking at SIM_TICK_INTERVAL (default 1h) until interrupted.
func publishTicks(broker string) {
	client, err := trigger.Connect(broker, "maintenance-simulator")
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MQTT broker")
	}
	interval := time.Hour
	if v := os.Getenv("SIM_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			interval = d
		}
	}
	publish := func() {
		for _, topic := range []string{
			trigger.DefaultTopicPrefix + "/scheduler",
			trigger.DefaultTopicPrefix + "/contracts",
		} {
			payload := time.Now().UTC().Format(time.RFC3339)
			token := client.Publish(topic, 1, false, payload)
			token.Wait()
			if token.Error() != nil {
				log.WithError(token.Error()).WithField("topic", topic).Error("failed to publish tick")
				continue
			}
			log.WithField("topic", topic).Info("published tick")
		}
	}
	publish()
	for range time.Tick(interval) {
		publish()
	}
}
