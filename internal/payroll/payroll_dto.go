package payroll

// CalculatePayrollRequest is the single-employee calculation payload.
// CalculationDate is optional; when empty the service uses today.
type CalculatePayrollRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required,uuid"`
	CountryID         string `json:"country_id" binding:"required,uuid"`
	PayrollPeriodID   string `json:"payroll_period_id" binding:"required,uuid"`
	CalculationDate   string `json:"calculation_date" binding:"omitempty,datetime=2006-01-02"`
	IncludeOvertime   bool   `json:"include_overtime"`
	IncludeNightShift bool   `json:"include_night_shift"`
}

// BulkCalculatePayrollRequest runs one period/country against many employees.
type BulkCalculatePayrollRequest struct {
	CountryID       string   `json:"country_id" binding:"required,uuid"`
	PayrollPeriodID string   `json:"payroll_period_id" binding:"required,uuid"`
	EmployeeIDs     []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
	CalculationDate string   `json:"calculation_date" binding:"omitempty,datetime=2006-01-02"`
}

const (
	CalculationStatusSuccess = "success"
	CalculationStatusPartial = "partial"
)

// PayrollCalculationResponse wraps one result with processing telemetry.
// Status is "partial" when the calculation finished but carries warnings
// (currency mismatch between salary record and country).
type PayrollCalculationResponse struct {
	Result           *PayrollCalculationResult `json:"result"`
	Status           string                    `json:"status"`
	Warnings         []string                  `json:"warnings,omitempty"`
	ProcessingTimeMs int64                     `json:"processing_time_ms"`
}

type BulkPayrollCalculationResponse struct {
	Result           BulkResult `json:"result"`
	ProcessingTimeMs int64      `json:"processing_time_ms"`
}
