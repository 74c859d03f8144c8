package salarycomponent

import (
	"time"

	"github.com/google/uuid"
)

// Component types mirror what the payroll engine understands; anything else
// configured for a country is ignored by the calculators.
const (
	TypeEarnings          = "EARNINGS"
	TypeBenefits          = "BENEFITS"
	TypeReimbursements    = "REIMBURSEMENTS"
	TypeOvertime          = "OVERTIME"
	TypeShiftDifferential = "SHIFT_DIFFERENTIAL"
	TypeDeductions        = "DEDUCTIONS"
)

const (
	MethodFixed      = "FIXED"
	MethodPercentage = "PERCENTAGE"
	MethodFormula    = "FORMULA"
)

type SalaryComponent struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CountryID         uuid.UUID `gorm:"type:uuid;index"`
	Name              string
	Type              string
	CalculationMethod string
	// Amount is the configured value for FIXED (and, as a documented
	// fallback, FORMULA) components; Percentage applies to basic salary
	// for PERCENTAGE components.
	Amount     float64 `gorm:"type:numeric"`
	Percentage float64 `gorm:"type:numeric"`
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
