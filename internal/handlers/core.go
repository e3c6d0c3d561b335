package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/maintdesk/maintenance-backend/internal/contracts"
	"github.com/maintdesk/maintenance-backend/internal/middleware"
	"github.com/maintdesk/maintenance-backend/internal/models"
	"github.com/maintdesk/maintenance-backend/internal/reports"
	"github.com/maintdesk/maintenance-backend/internal/scheduler"
)

// CoreHandler exposes the batch operations to HTTP callers: the scheduler
// pass, the contract evaluation pass and the three report generators.
type CoreHandler struct {
	Scheduler *scheduler.Engine
	Contracts *contracts.Engine
	Reports   *reports.Engine
}

// NewCoreHandler creates a new core operations handler
func NewCoreHandler(sched *scheduler.Engine, contractEngine *contracts.Engine, reportEngine *reports.Engine) *CoreHandler {
	return &CoreHandler{
		Scheduler: sched,
		Contracts: contractEngine,
		Reports:   reportEngine,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RunScheduler triggers one GenerateDueWorkOrders pass at the current time.
func (h *CoreHandler) RunScheduler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.Scheduler.GenerateDueWorkOrders(r.Context(), time.Time{})
	if err != nil {
		http.Error(w, "Scheduler pass failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// EvaluateContracts triggers one contract lifecycle evaluation pass. The
// reminder threshold can be overridden with the threshold_days query
// parameter; it defaults to 30.
func (h *CoreHandler) EvaluateContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	thresholdDays := contracts.DefaultReminderThresholdDays
	if raw := r.URL.Query().Get("threshold_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid threshold_days", http.StatusBadRequest)
			return
		}
		thresholdDays = parsed
	}

	result, err := h.Contracts.EvaluateStatuses(r.Context(), time.Time{}, thresholdDays)
	if err != nil {
		http.Error(w, "Contract evaluation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// reportRequest is the JSON body accepted by the report endpoints.
type reportRequest struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

type reportFunc func(r *http.Request, req reportRequest, generatedBy string) (*models.Report, error)

func (h *CoreHandler) generateReport(w http.ResponseWriter, r *http.Request, generate reportFunc) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req reportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	report, err := generate(r, req, claims.UserID)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidPeriod) || errors.Is(err, reports.ErrMissingGenerator) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Report generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// DowntimeReport generates an equipment downtime report for the period.
func (h *CoreHandler) DowntimeReport(w http.ResponseWriter, r *http.Request) {
	h.generateReport(w, r, func(r *http.Request, req reportRequest, generatedBy string) (*models.Report, error) {
		return h.Reports.GenerateDowntimeReport(r.Context(), req.PeriodStart, req.PeriodEnd, generatedBy)
	})
}

// CostsReport generates a maintenance costs report for the period.
func (h *CoreHandler) CostsReport(w http.ResponseWriter, r *http.Request) {
	h.generateReport(w, r, func(r *http.Request, req reportRequest, generatedBy string) (*models.Report, error) {
		return h.Reports.GenerateMaintenanceCostsReport(r.Context(), req.PeriodStart, req.PeriodEnd, generatedBy)
	})
}

// StaffEfficiencyReport generates a staff efficiency report for the period.
func (h *CoreHandler) StaffEfficiencyReport(w http.ResponseWriter, r *http.Request) {
	h.generateReport(w, r, func(r *http.Request, req reportRequest, generatedBy string) (*models.Report, error) {
		return h.Reports.GenerateStaffEfficiencyReport(r.Context(), req.PeriodStart, req.PeriodEnd, generatedBy)
	})
}
