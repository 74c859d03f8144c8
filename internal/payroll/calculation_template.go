package payroll

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
)

// runCalculation executes the fixed gross-to-net pipeline for one employee:
//
//	validate -> gross pay -> statutory deductions -> other deductions ->
//	net pay -> assemble result -> region adjustments
//
// The order is not negotiable; only the region-specific steps vary by
// calculator. A calculation is all-or-nothing: any failure is wrapped with
// the employee id and jurisdiction and no partial result is returned.
func runCalculation(calc RegionCalculator, input CalculationInput) (result *PayrollCalculationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = wrapCalculationError(fmt.Errorf("panic: %v", r), input)
		}
	}()

	// Step 1: validate
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Step 2: gross pay (region-specific)
	gross, err := calc.ComputeGrossPay(input)
	if err != nil {
		return nil, wrapCalculationError(err, input)
	}

	// Step 3: statutory deductions (region-specific)
	statutory, err := calc.ComputeStatutoryDeductions(input, gross)
	if err != nil {
		return nil, wrapCalculationError(err, input)
	}

	// Step 4: other deductions (default unless the region overrides)
	var other []ComponentBreakdown
	if computer, ok := calc.(OtherDeductionsComputer); ok {
		other, err = computer.ComputeOtherDeductions(input)
		if err != nil {
			return nil, wrapCalculationError(err, input)
		}
	} else {
		other = defaultOtherDeductions(input)
	}

	// Step 5: net pay, clamped at zero
	var totalStatutory, totalOther float64
	for _, s := range statutory {
		totalStatutory += s.EmployeeContribution
	}
	for _, d := range other {
		totalOther += d.Amount
	}
	totalDeductions := totalStatutory + totalOther
	netPay := gross.TotalEarnings - totalDeductions
	if netPay < 0 {
		netPay = 0
	}

	// Step 6: assemble
	metadata := make(map[string]string, len(input.Metadata))
	for k, v := range input.Metadata {
		metadata[k] = v
	}

	result = &PayrollCalculationResult{
		CalculationID:            newCalculationID(),
		EmployeeID:               input.EmployeeID,
		CountryID:                input.CountryID,
		PayrollPeriodID:          input.PayrollPeriodID,
		CalculatedAt:             time.Now().UTC(),
		GrossPay:                 gross.TotalEarnings,
		BasicSalary:              gross.BasicSalary,
		TotalEarnings:            gross.TotalEarnings,
		OvertimePay:              gross.OvertimePay,
		NightShiftPay:            gross.NightShiftPay,
		TotalStatutoryDeductions: totalStatutory,
		TotalOtherDeductions:     totalOther,
		TotalDeductions:          totalDeductions,
		NetPay:                   netPay,
		CurrencyCode:             input.CurrencyCode,
		Earnings:                 gross.Breakdown,
		StatutoryDeductions:      statutory,
		OtherDeductions:          other,
		Metadata:                 metadata,
	}

	// Step 7: region adjustments (metadata only, totals untouched)
	if adjuster, ok := calc.(ResultAdjuster); ok {
		adjuster.ApplyAdjustments(input, result)
	}

	return result, nil
}

func validateInput(input CalculationInput) error {
	if strings.TrimSpace(input.EmployeeID) == "" {
		return payrollerrors.ErrMissingEmployeeID
	}
	if strings.TrimSpace(input.CountryID) == "" || strings.TrimSpace(input.CountryCode) == "" {
		return payrollerrors.ErrMissingCountry
	}
	if strings.TrimSpace(input.PayrollPeriodID) == "" {
		return payrollerrors.ErrMissingPayrollPeriod
	}
	if strings.TrimSpace(input.CurrencyCode) == "" {
		return payrollerrors.ErrMissingCurrency
	}
	if input.BaseSalary < 0 {
		return payrollerrors.ErrNegativeBaseSalary
	}
	return nil
}

func wrapCalculationError(err error, input CalculationInput) error {
	return apperror.Wrap(
		err,
		apperror.CodeCalculationFailed,
		fmt.Sprintf("payroll calculation failed for employee %s (%s)", input.EmployeeID, input.CountryCode),
		http.StatusInternalServerError,
	)
}

// newCalculationID returns an opaque token unique per invocation, e.g.
// CALC-1766188800123-4f9a1c2de.
func newCalculationID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("CALC-%d-%s", time.Now().UnixMilli(), suffix)
}
