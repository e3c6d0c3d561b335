package contracts

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/db"
	"github.com/maintdesk/maintenance-backend/internal/models"
)

// DefaultReminderThresholdDays is the reminder window applied when the caller
// does not supply one.
const DefaultReminderThresholdDays = 30

// Engine reclassifies service contracts as they approach or pass expiration.
// Cancelled is terminal and never touched.
type Engine struct {
	Contracts db.ContractCollection
	Now       func() time.Time
}

// New creates a contract lifecycle engine over the given collection.
func New(contracts db.ContractCollection) *Engine {
	return &Engine{Contracts: contracts, Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// EvalResult summarizes one evaluation pass.
type EvalResult struct {
	Updated             int `json:"updated_count"`
	NewlyExpired        int `json:"newly_expired_count"`
	NewlyPendingRenewal int `json:"newly_pending_renewal_count"`
	Failed              int `json:"error_count"`
}

// DefaultReminderDate returns the reminder date used when a contract does not
// set one explicitly: 30 days before expiration.
func DefaultReminderDate(endDate time.Time) time.Time {
	return endDate.AddDate(0, 0, -30)
}

// DeriveStatus computes the time-derived status of a contract at now.
// Precedence: expired beats pending renewal beats active. thresholdDays <= 0
// selects the default window.
func DeriveStatus(contract models.Contract, now time.Time, thresholdDays int) models.ContractStatus {
	if thresholdDays <= 0 {
		thresholdDays = DefaultReminderThresholdDays
	}
	if contract.EndDate.Before(now) {
		return models.ContractExpired
	}
	reminder := contract.RenewalReminderDate
	if reminder.IsZero() {
		reminder = DefaultReminderDate(contract.EndDate)
	}
	if !contract.EndDate.After(now.AddDate(0, 0, thresholdDays)) || !reminder.After(now) {
		return models.ContractPendingRenewal
	}
	return models.ContractActive
}

// InitialStatus computes the status stamped on a contract at creation or
// explicit edit, using the same expired-vs-not then reminder-window rule the
// evaluator applies. Callers that explicitly supply a status skip this.
func InitialStatus(contract models.Contract, now time.Time, thresholdDays int) models.ContractStatus {
	return DeriveStatus(contract, now, thresholdDays)
}

// EvaluateStatuses scans contracts in {Active, Pending Renewal} and moves each
// forward toward expiration when the current time requires it. Contracts never
// regress to Active inside a pass; that takes an explicit edit extending the
// end date.
func (e *Engine) EvaluateStatuses(ctx context.Context, now time.Time, thresholdDays int) (EvalResult, error) {
	if now.IsZero() {
		now = e.now()
	}

	var result EvalResult
	contracts, err := e.Contracts.FindEvaluableContracts(ctx)
	if err != nil {
		return result, fmt.Errorf("find evaluable contracts: %w", err)
	}

	for _, contract := range contracts {
		if contract.Status == models.ContractCancelled {
			// FindEvaluableContracts excludes these, but a stale read must
			// still never overwrite the terminal state.
			continue
		}
		next := DeriveStatus(contract, now, thresholdDays)
		if next == models.ContractActive {
			// Forward-only: Pending Renewal does not fall back automatically.
			continue
		}
		if next == contract.Status {
			continue
		}
		if err := e.Contracts.UpdateContractStatus(ctx, contract.ID.Hex(), next); err != nil {
			log.WithError(err).WithField("contract_id", contract.ID.Hex()).Warn("contract status update failed")
			result.Failed++
			continue
		}
		result.Updated++
		switch next {
		case models.ContractExpired:
			result.NewlyExpired++
		case models.ContractPendingRenewal:
			result.NewlyPendingRenewal++
		}
	}

	log.WithFields(log.Fields{
		"updated":               result.Updated,
		"newly_expired":         result.NewlyExpired,
		"newly_pending_renewal": result.NewlyPendingRenewal,
	}).Info("contract evaluation pass finished")
	return result, nil
}
