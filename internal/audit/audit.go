package audit

import (
	"context"
	"time"
)

const (
	ActionPayrollCalculated     = "PAYROLL_CALCULATED"
	ActionPayrollCalculationErr = "PAYROLL_CALCULATION_FAILED"
	ActionPayrollBulkCompleted  = "PAYROLL_BULK_COMPLETED"
	ActionServerShutdown        = "SERVER_SHUTDOWN"

	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Entry is one audit record. Producing an entry is best-effort everywhere:
// sinks may fail, callers log and move on.
type Entry struct {
	Action          string         `json:"action"`
	Status          string         `json:"status,omitempty"`
	EmployeeID      string         `json:"employee_id,omitempty"`
	CountryID       string         `json:"country_id,omitempty"`
	PayrollPeriodID string         `json:"payroll_period_id,omitempty"`
	CalculationID   string         `json:"calculation_id,omitempty"`
	RequestID       string         `json:"request_id,omitempty"`
	ActorID         string         `json:"actor_id,omitempty"`
	ActorRole       string         `json:"actor_role,omitempty"`
	Message         string         `json:"message,omitempty"`
	Meta            map[string]any `json:"meta,omitempty"`
	OccurredAt      time.Time      `json:"occurred_at"`
}

//go:generate mockgen -source=audit.go -destination=mock/audit_sink_mock.go -package=mock
type Sink interface {
	Log(ctx context.Context, entry Entry) error
}
