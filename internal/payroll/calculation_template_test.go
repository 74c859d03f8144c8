package payroll

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/shared/apperror"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubCalculator lets each test script the region-specific steps.
type stubCalculator struct {
	code        string
	grossFn     func(input CalculationInput) (GrossPay, error)
	statutoryFn func(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error)
}

func (s *stubCalculator) CountryCode() string {
	if s.code == "" {
		return "XX"
	}
	return s.code
}

func (s *stubCalculator) ComputeGrossPay(input CalculationInput) (GrossPay, error) {
	if s.grossFn != nil {
		return s.grossFn(input)
	}
	return assembleGrossPay(input), nil
}

func (s *stubCalculator) ComputeStatutoryDeductions(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error) {
	if s.statutoryFn != nil {
		return s.statutoryFn(input, gross)
	}
	return nil, nil
}

func validInput() CalculationInput {
	return CalculationInput{
		EmployeeID:      uuid.NewString(),
		CountryID:       uuid.NewString(),
		CountryCode:     "XX",
		PayrollPeriodID: uuid.NewString(),
		CalculationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:      10000,
		CurrencyCode:    "USD",
	}
}

func TestRunCalculationTotalsAreConsistent(t *testing.T) {
	calc := &stubCalculator{
		statutoryFn: func(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error) {
			return []StatutoryBreakdown{
				{Name: "Pension", EmployeeContribution: 500, EmployerContribution: 500, Total: 1000},
				{Name: "Tax", EmployeeContribution: 1200, EmployerContribution: 0, Total: 1200},
			}, nil
		},
	}

	input := validInput()
	input.SalaryComponents = []salarycomponent.SalaryComponent{
		{ID: uuid.New(), Name: "Loan Repayment", Type: salarycomponent.TypeDeductions, CalculationMethod: salarycomponent.MethodFixed, Amount: 300, Active: true},
	}

	result, err := runCalculation(calc, input)
	assert.NoError(t, err)

	assert.Equal(t, 10000.0, result.GrossPay)
	assert.Equal(t, 1700.0, result.TotalStatutoryDeductions) // employee shares only
	assert.Equal(t, 300.0, result.TotalOtherDeductions)
	assert.Equal(t, result.TotalStatutoryDeductions+result.TotalOtherDeductions, result.TotalDeductions)
	assert.Equal(t, result.GrossPay-result.TotalDeductions, result.NetPay)
	assert.True(t, strings.HasPrefix(result.CalculationID, "CALC-"))
}

func TestRunCalculationNetPayNeverNegative(t *testing.T) {
	calc := &stubCalculator{
		statutoryFn: func(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error) {
			return []StatutoryBreakdown{
				{Name: "Oversized Levy", EmployeeContribution: gross.TotalEarnings * 2, Total: gross.TotalEarnings * 2},
			}, nil
		},
	}

	result, err := runCalculation(calc, validInput())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, result.NetPay)
	assert.Equal(t, 20000.0, result.TotalDeductions)
}

func TestRunCalculationValidation(t *testing.T) {
	calc := &stubCalculator{}

	cases := []struct {
		name     string
		mutate   func(input *CalculationInput)
		expected error
	}{
		{"missing employee id", func(i *CalculationInput) { i.EmployeeID = " " }, payrollerrors.ErrMissingEmployeeID},
		{"missing country", func(i *CalculationInput) { i.CountryCode = "" }, payrollerrors.ErrMissingCountry},
		{"missing period", func(i *CalculationInput) { i.PayrollPeriodID = "" }, payrollerrors.ErrMissingPayrollPeriod},
		{"missing currency", func(i *CalculationInput) { i.CurrencyCode = "" }, payrollerrors.ErrMissingCurrency},
		{"negative base salary", func(i *CalculationInput) { i.BaseSalary = -1 }, payrollerrors.ErrNegativeBaseSalary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			result, err := runCalculation(calc, input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tc.expected)

			// Input problems stay INVALID_INPUT, never CALCULATION_FAILED.
			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		})
	}
}

func TestRunCalculationWrapsStepFailure(t *testing.T) {
	calc := &stubCalculator{
		statutoryFn: func(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error) {
			return nil, errors.New("contribution table missing")
		},
	}

	result, err := runCalculation(calc, validInput())
	assert.Nil(t, result)

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeCalculationFailed, appErr.Code)
	assert.Contains(t, appErr.Message, "payroll calculation failed for employee")
}

func TestRunCalculationRecoversFromPanic(t *testing.T) {
	calc := &stubCalculator{
		grossFn: func(input CalculationInput) (GrossPay, error) {
			panic("slab table index out of range")
		},
	}

	result, err := runCalculation(calc, validInput())
	assert.Nil(t, result)

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeCalculationFailed, appErr.Code)
}

func TestRunCalculationFormulaFallsBackToFixedAmount(t *testing.T) {
	calc := &stubCalculator{}
	input := validInput()
	input.SalaryComponents = []salarycomponent.SalaryComponent{
		{ID: uuid.New(), Name: "Site Allowance", Type: salarycomponent.TypeEarnings, CalculationMethod: salarycomponent.MethodFormula, Amount: 750, Active: true},
	}

	result, err := runCalculation(calc, input)
	assert.NoError(t, err)
	assert.Equal(t, 10750.0, result.TotalEarnings)
}

func TestRunCalculationSkipsInactiveComponents(t *testing.T) {
	calc := &stubCalculator{}
	input := validInput()
	input.SalaryComponents = []salarycomponent.SalaryComponent{
		{ID: uuid.New(), Name: "Old Allowance", Type: salarycomponent.TypeEarnings, CalculationMethod: salarycomponent.MethodFixed, Amount: 999, Active: false},
		{ID: uuid.New(), Name: "Old Levy", Type: salarycomponent.TypeDeductions, CalculationMethod: salarycomponent.MethodFixed, Amount: 50, Active: false},
	}

	result, err := runCalculation(calc, input)
	assert.NoError(t, err)
	assert.Equal(t, 10000.0, result.TotalEarnings)
	assert.Equal(t, 0.0, result.TotalOtherDeductions)
}

func TestRunCalculationOvertimeAndNightShiftFlags(t *testing.T) {
	calc := &stubCalculator{}
	components := []salarycomponent.SalaryComponent{
		{ID: uuid.New(), Name: "Overtime Pay", Type: salarycomponent.TypeOvertime, CalculationMethod: salarycomponent.MethodPercentage, Percentage: 10, Active: true},
		{ID: uuid.New(), Name: "Night Differential", Type: salarycomponent.TypeShiftDifferential, CalculationMethod: salarycomponent.MethodFixed, Amount: 400, Active: true},
	}

	base := validInput()
	base.SalaryComponents = components

	withoutFlags, err := runCalculation(calc, base)
	assert.NoError(t, err)
	assert.Equal(t, 10000.0, withoutFlags.TotalEarnings)
	assert.Equal(t, 0.0, withoutFlags.OvertimePay)

	withFlags := base
	withFlags.IncludeOvertime = true
	withFlags.IncludeNightShift = true

	result, err := runCalculation(calc, withFlags)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, result.OvertimePay)
	assert.Equal(t, 400.0, result.NightShiftPay)
	assert.Equal(t, 11400.0, result.TotalEarnings)
}

func TestRunCalculationCopiesInputMetadata(t *testing.T) {
	calc := &stubCalculator{}
	input := validInput()
	input.Metadata = map[string]string{"run_reason": "off-cycle"}

	result, err := runCalculation(calc, input)
	assert.NoError(t, err)
	assert.Equal(t, "off-cycle", result.Metadata["run_reason"])

	// Result owns its metadata; mutating it never leaks back.
	result.Metadata["run_reason"] = "changed"
	assert.Equal(t, "off-cycle", input.Metadata["run_reason"])
}

func TestRunCalculationAppliesRegionAdjustments(t *testing.T) {
	input := validInput()
	input.CountryCode = "IN"
	input.CurrencyCode = "INR"
	input.BaseSalary = 50000

	result, err := runCalculation(NewIndiaCalculator(), input)
	assert.NoError(t, err)
	assert.Equal(t, "old", result.Metadata["tax_regime"])
	assert.Equal(t, "true", result.Metadata["epf_wage_ceiling_applied"])
	assert.Equal(t, result.TotalEarnings-result.TotalDeductions, result.NetPay)
}

func TestCalculationIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newCalculationID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestValidInputHasEmptyStatutoryComponents(t *testing.T) {
	// No statutory config at all is legal; everything flows to net pay.
	result, err := runCalculation(&stubCalculator{}, validInput())
	assert.NoError(t, err)
	assert.Equal(t, result.GrossPay, result.NetPay)
	assert.Empty(t, result.StatutoryDeductions)
}
