package payroll

import (
	"fmt"
	"strconv"

	"go-payroll/internal/statutorycomponent"
)

// Statutory rates for India. EPF and ESI follow EPFO/ESIC published rates;
// professional tax uses the slab shared by most states; TDS follows the
// old-regime income tax slabs plus the 4% health & education cess.
const (
	epfWageCeiling  = 15000.0
	epfRate         = 0.12
	esiGrossCeiling = 21000.0
	esiEmployeeRate = 0.0075
	esiEmployerRate = 0.0325
	tdsCessFactor   = 1.04
)

type taxSlab struct {
	upTo float64 // upper bound of the slab, inclusive; 0 means unbounded
	rate float64
}

var indiaTaxSlabs = []taxSlab{
	{upTo: 250000, rate: 0},
	{upTo: 500000, rate: 0.05},
	{upTo: 1000000, rate: 0.20},
	{upTo: 0, rate: 0.30},
}

type professionalTaxSlab struct {
	upTo   float64
	amount float64
}

var indiaProfessionalTaxSlabs = []professionalTaxSlab{
	{upTo: 7500, amount: 0},
	{upTo: 10000, amount: 175},
	{upTo: 0, amount: 200},
}

type IndiaCalculator struct{}

func NewIndiaCalculator() *IndiaCalculator {
	return &IndiaCalculator{}
}

func (c *IndiaCalculator) CountryCode() string {
	return "IN"
}

func (c *IndiaCalculator) ComputeGrossPay(input CalculationInput) (GrossPay, error) {
	return assembleGrossPay(input), nil
}

// ComputeStatutoryDeductions walks the country's configured statutory
// components; each contribution is independently gated by its own threshold.
func (c *IndiaCalculator) ComputeStatutoryDeductions(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error) {
	var breakdowns []StatutoryBreakdown

	for _, comp := range input.StatutoryComponents {
		if !comp.Active {
			continue
		}

		switch comp.Type {
		case statutorycomponent.TypeEPF:
			breakdowns = append(breakdowns, c.computeEPF(comp.ID.String(), comp.Name, gross.BasicSalary, input.CurrencyCode))

		case statutorycomponent.TypeESI:
			if gross.TotalEarnings <= esiGrossCeiling {
				breakdowns = append(breakdowns, c.computeESI(comp.ID.String(), comp.Name, gross.TotalEarnings, input.CurrencyCode))
			}

		case statutorycomponent.TypeProfessionalTax:
			if pt := professionalTaxFor(gross.TotalEarnings); pt > 0 {
				breakdowns = append(breakdowns, StatutoryBreakdown{
					ComponentID:          comp.ID.String(),
					Name:                 comp.Name,
					Type:                 comp.Type,
					EmployeeContribution: pt,
					EmployerContribution: 0,
					Total:                pt,
					CurrencyCode:         input.CurrencyCode,
					CalculationBasis:     BasisSlabBased,
				})
			}

		case statutorycomponent.TypeTDS:
			if tds := monthlyTDS(gross.TotalEarnings); tds > 0 {
				breakdowns = append(breakdowns, StatutoryBreakdown{
					ComponentID:          comp.ID.String(),
					Name:                 comp.Name,
					Type:                 comp.Type,
					EmployeeContribution: tds,
					EmployerContribution: 0,
					Total:                tds,
					CurrencyCode:         input.CurrencyCode,
					CalculationBasis:     BasisTaxableIncome,
				})
			}

		default:
			return nil, fmt.Errorf("unsupported statutory component type %q for India", comp.Type)
		}
	}

	return breakdowns, nil
}

// computeEPF applies the EPF wage ceiling: contributions above the ceiling
// are computed on the capped wage, not the actual salary.
func (c *IndiaCalculator) computeEPF(componentID, name string, basicSalary float64, currency string) StatutoryBreakdown {
	wages := basicSalary
	if wages > epfWageCeiling {
		wages = epfWageCeiling
	}
	contribution := roundCurrency(wages * epfRate)
	rate := epfRate * 100

	return StatutoryBreakdown{
		ComponentID:          componentID,
		Name:                 name,
		Type:                 statutorycomponent.TypeEPF,
		EmployeeContribution: contribution,
		EmployerContribution: contribution,
		Total:                contribution * 2,
		CurrencyCode:         currency,
		CalculationBasis:     BasisBasicSalary,
		Rate:                 &rate,
	}
}

func (c *IndiaCalculator) computeESI(componentID, name string, grossPay float64, currency string) StatutoryBreakdown {
	employee := roundCurrency(grossPay * esiEmployeeRate)
	employer := roundCurrency(grossPay * esiEmployerRate)
	rate := esiEmployeeRate * 100

	return StatutoryBreakdown{
		ComponentID:          componentID,
		Name:                 name,
		Type:                 statutorycomponent.TypeESI,
		EmployeeContribution: employee,
		EmployerContribution: employer,
		Total:                employee + employer,
		CurrencyCode:         currency,
		CalculationBasis:     BasisGrossSalary,
		Rate:                 &rate,
	}
}

func professionalTaxFor(grossPay float64) float64 {
	for _, slab := range indiaProfessionalTaxSlabs {
		if slab.upTo == 0 || grossPay <= slab.upTo {
			return slab.amount
		}
	}
	return 0
}

// monthlyTDS annualizes gross pay, taxes the portion of income falling in
// each slab, adds the 4% cess and de-annualizes back to a monthly amount.
func monthlyTDS(grossPay float64) float64 {
	annualIncome := grossPay * 12

	var tax float64
	var lowerBound float64
	for _, slab := range indiaTaxSlabs {
		if annualIncome <= lowerBound {
			break
		}
		upper := slab.upTo
		if upper == 0 || upper > annualIncome {
			upper = annualIncome
		}
		tax += (upper - lowerBound) * slab.rate
		lowerBound = slab.upTo
	}

	return roundCurrency(tax * tdsCessFactor / 12)
}

// ApplyAdjustments records which thresholds applied; totals are untouched.
func (c *IndiaCalculator) ApplyAdjustments(input CalculationInput, result *PayrollCalculationResult) {
	result.Metadata["tax_regime"] = "old"
	result.Metadata["epf_wage_ceiling_applied"] = strconv.FormatBool(result.BasicSalary > epfWageCeiling)
	result.Metadata["esi_applicable"] = strconv.FormatBool(result.GrossPay <= esiGrossCeiling)
}
