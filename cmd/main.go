package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/auth"
	"github.com/maintdesk/maintenance-backend/internal/contracts"
	"github.com/maintdesk/maintenance-backend/internal/db"
	"github.com/maintdesk/maintenance-backend/internal/handlers"
	"github.com/maintdesk/maintenance-backend/internal/middleware"
	"github.com/maintdesk/maintenance-backend/internal/reports"
	"github.com/maintdesk/maintenance-backend/internal/scheduler"
	"github.com/maintdesk/maintenance-backend/internal/trigger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	database := db.Database(client)
	schedules := &db.MongoScheduleCollection{Collection: database.Collection("pm_schedules")}
	workOrders := &db.MongoWorkOrderCollection{Collection: database.Collection("work_orders")}
	contractStore := &db.MongoContractCollection{Collection: database.Collection("contracts")}
	history := &db.MongoHistoryCollection{Collection: database.Collection("maintenance_history")}
	equipment := &db.MongoEquipmentCollection{Collection: database.Collection("equipment")}
	spareParts := &db.MongoSparePartCollection{Collection: database.Collection("spare_parts")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	reportStore := &db.MongoReportCollection{Collection: database.Collection("reports")}

	schedulerEngine := scheduler.New(schedules, workOrders, equipment)
	contractEngine := contracts.New(contractStore)
	reportEngine := reports.New(workOrders, history, spareParts, equipment, users, reportStore)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}
	authMW := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	core := handlers.NewCoreHandler(schedulerEngine, contractEngine, reportEngine)

	guard := func(permission string, h http.HandlerFunc) http.Handler {
		return rateLimiter.RateLimit(60, 60)(
			authMW.Authenticate(
				authMW.RequirePermission(permission)(h)))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/scheduler/run", guard("run_scheduler", core.RunScheduler))
	mux.Handle("/api/contracts/evaluate", guard("evaluate_contracts", core.EvaluateContracts))
	mux.Handle("/api/reports/downtime", guard("generate_reports", core.DowntimeReport))
	mux.Handle("/api/reports/costs", guard("generate_reports", core.CostsReport))
	mux.Handle("/api/reports/staff-efficiency", guard("generate_reports", core.StaffEfficiencyReport))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Batch passes can also be fired by an external cron publishing MQTT
	// ticks; the HTTP endpoints stay available for on-demand runs.
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mqttClient, err := trigger.Connect(broker, "maintenance-backend")
		if err != nil {
			log.WithError(err).Fatal("failed to connect to MQTT broker")
		}
		listener := &trigger.TickListener{
			Client:        mqttClient,
			Scheduler:     schedulerEngine,
			Contracts:     contractEngine,
			ThresholdDays: contracts.DefaultReminderThresholdDays,
		}
		if err := listener.Subscribe(); err != nil {
			log.WithError(err).Fatal("failed to subscribe to tick topic")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
