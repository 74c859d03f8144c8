package events

import "time"

const (
	PayrollAuditTopic         = "hr.payroll.audit.v1"
	PayrollCalculatedTopic    = "hr.payroll.calculation.v1"
	PayrollBulkCompletedTopic = "hr.payroll.bulk.v1"
)

type PayrollCalculatedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	CalculationID   string    `json:"calculation_id"`
	EmployeeID      string    `json:"employee_id"`
	CountryID       string    `json:"country_id"`
	PayrollPeriodID string    `json:"payroll_period_id"`
	GrossPay        float64   `json:"gross_pay"`
	NetPay          float64   `json:"net_pay"`
	CurrencyCode    string    `json:"currency_code"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type PayrollBulkCompletedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	CountryID       string    `json:"country_id"`
	PayrollPeriodID string    `json:"payroll_period_id"`
	TotalRequested  int       `json:"total_requested"`
	SuccessCount    int       `json:"success_count"`
	FailedCount     int       `json:"failed_count"`
	OccurredAt      time.Time `json:"occurred_at"`
}
