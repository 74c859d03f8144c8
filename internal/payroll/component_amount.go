package payroll

import (
	"math"
	"strings"

	"go-payroll/internal/salarycomponent"
)

// roundCurrency rounds half-up on currency-unit amounts. Statutory payroll
// math is specified in whole currency units per jurisdiction; changing this
// produces off-by-one mismatches against published contribution tables.
func roundCurrency(v float64) float64 {
	return math.Round(v)
}

// componentAmount applies the shared component-amount rule. PERCENTAGE is
// always a percentage of basic salary, never of gross. FORMULA evaluation is
// not implemented; such components fall back to their configured fixed
// amount.
func componentAmount(c salarycomponent.SalaryComponent, basicSalary float64) (amount float64, baseAmount, rate *float64) {
	switch c.CalculationMethod {
	case salarycomponent.MethodPercentage:
		base := basicSalary
		pct := c.Percentage
		return base * pct / 100, &base, &pct
	case salarycomponent.MethodFormula:
		// TODO: formula evaluation needs an expression grammar the component
		// config does not define yet; until then FORMULA behaves as FIXED.
		return c.Amount, nil, nil
	default: // FIXED
		return c.Amount, nil, nil
	}
}

// assembleGrossPay builds the gross pay result shared by every region:
// a fixed basic-salary line, every active earnings-like component, and the
// conditional overtime / night-differential components.
func assembleGrossPay(input CalculationInput) GrossPay {
	gross := GrossPay{
		BasicSalary:   input.BaseSalary,
		TotalEarnings: input.BaseSalary,
	}

	gross.Breakdown = append(gross.Breakdown, ComponentBreakdown{
		Name:         "Basic Salary",
		Type:         salarycomponent.TypeEarnings,
		Amount:       input.BaseSalary,
		CurrencyCode: input.CurrencyCode,
		Method:       salarycomponent.MethodFixed,
	})

	for _, c := range input.SalaryComponents {
		if !c.Active {
			continue
		}

		// Overtime/night components are priced by their flags below, never
		// as unconditional earnings.
		if matchesComponent(c, salarycomponent.TypeOvertime, "overtime") ||
			matchesComponent(c, salarycomponent.TypeShiftDifferential, "night") {
			continue
		}

		switch c.Type {
		case salarycomponent.TypeEarnings, salarycomponent.TypeBenefits, salarycomponent.TypeReimbursements:
			amount, base, rate := componentAmount(c, input.BaseSalary)
			gross.TotalEarnings += amount
			gross.Breakdown = append(gross.Breakdown, ComponentBreakdown{
				ComponentID:  c.ID.String(),
				Name:         c.Name,
				Type:         c.Type,
				Amount:       amount,
				CurrencyCode: input.CurrencyCode,
				Method:       c.CalculationMethod,
				BaseAmount:   base,
				Rate:         rate,
			})
		}
	}

	if input.IncludeOvertime {
		for _, c := range input.SalaryComponents {
			if !c.Active || !matchesComponent(c, salarycomponent.TypeOvertime, "overtime") {
				continue
			}
			amount, base, rate := componentAmount(c, input.BaseSalary)
			gross.OvertimePay += amount
			gross.TotalEarnings += amount
			gross.Breakdown = append(gross.Breakdown, ComponentBreakdown{
				ComponentID:  c.ID.String(),
				Name:         c.Name,
				Type:         salarycomponent.TypeOvertime,
				Amount:       amount,
				CurrencyCode: input.CurrencyCode,
				Method:       c.CalculationMethod,
				BaseAmount:   base,
				Rate:         rate,
			})
		}
	}

	if input.IncludeNightShift {
		for _, c := range input.SalaryComponents {
			if !c.Active || !matchesComponent(c, salarycomponent.TypeShiftDifferential, "night") {
				continue
			}
			amount, base, rate := componentAmount(c, input.BaseSalary)
			gross.NightShiftPay += amount
			gross.TotalEarnings += amount
			gross.Breakdown = append(gross.Breakdown, ComponentBreakdown{
				ComponentID:  c.ID.String(),
				Name:         c.Name,
				Type:         salarycomponent.TypeShiftDifferential,
				Amount:       amount,
				CurrencyCode: input.CurrencyCode,
				Method:       c.CalculationMethod,
				BaseAmount:   base,
				Rate:         rate,
			})
		}
	}

	return gross
}

// matchesComponent matches by component type or case-insensitive name
// substring, so "Overtime Pay" configured as plain EARNINGS still counts.
func matchesComponent(c salarycomponent.SalaryComponent, componentType, nameSubstring string) bool {
	if c.Type == componentType {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), nameSubstring)
}

// defaultOtherDeductions filters active DEDUCTIONS components and prices each
// one with the shared component-amount rule.
func defaultOtherDeductions(input CalculationInput) []ComponentBreakdown {
	var deductions []ComponentBreakdown
	for _, c := range input.SalaryComponents {
		if !c.Active || c.Type != salarycomponent.TypeDeductions {
			continue
		}
		amount, base, rate := componentAmount(c, input.BaseSalary)
		deductions = append(deductions, ComponentBreakdown{
			ComponentID:  c.ID.String(),
			Name:         c.Name,
			Type:         c.Type,
			Amount:       amount,
			CurrencyCode: input.CurrencyCode,
			Method:       c.CalculationMethod,
			BaseAmount:   base,
			Rate:         rate,
		})
	}
	return deductions
}
