package payroll

import (
	"time"

	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutorycomponent"
)

// Calculation basis reported on statutory lines.
const (
	BasisBasicSalary   = "BASIC_SALARY"
	BasisGrossSalary   = "GROSS_SALARY"
	BasisSlabBased     = "SLAB_BASED"
	BasisTaxableIncome = "TAXABLE_INCOME"
)

// CalculationInput carries everything a region calculator needs for one
// employee. It is built per invocation and never shared between calculations.
type CalculationInput struct {
	EmployeeID          string
	CountryID           string
	CountryCode         string
	PayrollPeriodID     string
	CalculationDate     time.Time
	BaseSalary          float64
	CurrencyCode        string
	SalaryComponents    []salarycomponent.SalaryComponent
	StatutoryComponents []statutorycomponent.StatutoryComponent
	IncludeOvertime     bool
	IncludeNightShift   bool
	Metadata            map[string]string
}

// ComponentBreakdown is one line of gross pay or of a non-statutory
// deduction. Immutable once produced.
type ComponentBreakdown struct {
	ComponentID  string   `json:"component_id,omitempty"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Amount       float64  `json:"amount"`
	CurrencyCode string   `json:"currency_code"`
	Method       string   `json:"method"`
	BaseAmount   *float64 `json:"base_amount,omitempty"`
	Rate         *float64 `json:"rate,omitempty"`
}

// StatutoryBreakdown is one statutory contribution line. Total is always
// employee + employer; several statutory types carry a zero employer share
// by law (withheld taxes).
type StatutoryBreakdown struct {
	ComponentID          string   `json:"component_id,omitempty"`
	Name                 string   `json:"name"`
	Type                 string   `json:"type"`
	EmployeeContribution float64  `json:"employee_contribution"`
	EmployerContribution float64  `json:"employer_contribution"`
	Total                float64  `json:"total"`
	CurrencyCode         string   `json:"currency_code"`
	CalculationBasis     string   `json:"calculation_basis"`
	Rate                 *float64 `json:"rate,omitempty"`
}

// GrossPay is the output of the region-specific gross pay step. Overtime and
// night differential are already folded into TotalEarnings.
type GrossPay struct {
	BasicSalary   float64
	TotalEarnings float64
	OvertimePay   float64
	NightShiftPay float64
	Breakdown     []ComponentBreakdown
}

// PayrollCalculationResult is the fully itemized gross-to-net outcome for one
// employee. Ownership passes to the caller; the engine never persists it.
type PayrollCalculationResult struct {
	CalculationID            string               `json:"calculation_id"`
	EmployeeID               string               `json:"employee_id"`
	CountryID                string               `json:"country_id"`
	PayrollPeriodID          string               `json:"payroll_period_id"`
	CalculatedAt             time.Time            `json:"calculated_at"`
	GrossPay                 float64              `json:"gross_pay"`
	BasicSalary              float64              `json:"basic_salary"`
	TotalEarnings            float64              `json:"total_earnings"`
	OvertimePay              float64              `json:"overtime_pay"`
	NightShiftPay            float64              `json:"night_shift_pay"`
	TotalStatutoryDeductions float64              `json:"total_statutory_deductions"`
	TotalOtherDeductions     float64              `json:"total_other_deductions"`
	TotalDeductions          float64              `json:"total_deductions"`
	NetPay                   float64              `json:"net_pay"`
	CurrencyCode             string               `json:"currency_code"`
	Earnings                 []ComponentBreakdown `json:"earnings"`
	StatutoryDeductions      []StatutoryBreakdown `json:"statutory_deductions"`
	OtherDeductions          []ComponentBreakdown `json:"other_deductions"`
	Metadata                 map[string]string    `json:"metadata,omitempty"`
}

// BulkError records one employee whose calculation failed inside a bulk run.
type BulkError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

// BulkResult aggregates a bulk run. SuccessCount + FailedCount always equals
// TotalRequested; one employee's failure never affects the others.
type BulkResult struct {
	TotalRequested int                        `json:"total_requested"`
	SuccessCount   int                        `json:"success_count"`
	FailedCount    int                        `json:"failed_count"`
	Results        []PayrollCalculationResult `json:"results"`
	Errors         []BulkError                `json:"errors"`
}
