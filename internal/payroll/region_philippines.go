package payroll

import (
	"fmt"
	"strconv"

	"go-payroll/internal/statutorycomponent"
)

// Philippine statutory parameters. SSS follows the monthly-salary-credit
// contribution schedule; PhilHealth the 4% premium with the 400/3200 monthly
// floor/ceiling; Pag-IBIG the 1%/2% employee tiers against the 5000 fund
// salary cap; withholding tax the TRAIN-law monthly table.
const (
	philHealthRate     = 0.04
	philHealthMinBase  = 10000.0
	philHealthMaxBase  = 80000.0
	philHealthMinShare = 200.0  // half of the 400 monthly minimum premium
	philHealthMaxShare = 1600.0 // half of the 3200 monthly maximum premium

	pagIbigSalaryCap   = 5000.0
	pagIbigLowTierMax  = 1500.0
	pagIbigLowRate     = 0.01
	pagIbigHighRate    = 0.02
	pagIbigEmployeeCap = 100.0
)

// sssBracket maps a salary range to its monthly salary credit and the fixed
// employee/employer contributions for that credit.
type sssBracket struct {
	salaryFrom float64 // inclusive lower bound; first bracket catches everything below
	msc        float64
	employee   float64
	employer   float64
}

// sssTable is the published contribution schedule: 33 brackets stepping the
// MSC from 4,000 to 20,000 in increments of 500 (4.5% employee / 9.5%
// employer of the credit). Salaries past the last row stay on the top
// bracket; the schedule caps, it never extrapolates.
var sssTable = buildSSSTable()

func buildSSSTable() []sssBracket {
	brackets := make([]sssBracket, 0, 33)
	for i := 0; i < 33; i++ {
		msc := 4000.0 + 500.0*float64(i)
		from := 0.0
		if i > 0 {
			from = 4250.0 + 500.0*float64(i-1)
		}
		brackets = append(brackets, sssBracket{
			salaryFrom: from,
			msc:        msc,
			employee:   msc * 0.045,
			employer:   msc * 0.095,
		})
	}
	return brackets
}

// withholdingBracket is one row of the TRAIN monthly table: tax is the
// precomputed base amount plus the rate applied to income above the bracket
// floor.
type withholdingBracket struct {
	incomeFrom float64
	baseAmount float64
	rate       float64
}

var trainMonthlyTable = []withholdingBracket{
	{incomeFrom: 0, baseAmount: 0, rate: 0},
	{incomeFrom: 20833, baseAmount: 0, rate: 0.15},
	{incomeFrom: 33333, baseAmount: 1875, rate: 0.20},
	{incomeFrom: 66667, baseAmount: 8541.80, rate: 0.25},
	{incomeFrom: 166667, baseAmount: 33541.80, rate: 0.30},
	{incomeFrom: 666667, baseAmount: 183541.80, rate: 0.35},
}

type PhilippinesCalculator struct{}

func NewPhilippinesCalculator() *PhilippinesCalculator {
	return &PhilippinesCalculator{}
}

func (c *PhilippinesCalculator) CountryCode() string {
	return "PH"
}

func (c *PhilippinesCalculator) ComputeGrossPay(input CalculationInput) (GrossPay, error) {
	return assembleGrossPay(input), nil
}

// ComputeStatutoryDeductions computes SSS, PhilHealth and Pag-IBIG first;
// withholding tax is taxed on gross pay net of those employee shares, so it
// always runs last regardless of component order.
func (c *PhilippinesCalculator) ComputeStatutoryDeductions(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error) {
	var breakdowns []StatutoryBreakdown
	var withholdingComponents []statutorycomponent.StatutoryComponent

	for _, comp := range input.StatutoryComponents {
		if !comp.Active {
			continue
		}

		switch comp.Type {
		case statutorycomponent.TypeSSS:
			breakdowns = append(breakdowns, c.computeSSS(comp.ID.String(), comp.Name, gross.BasicSalary, input.CurrencyCode))

		case statutorycomponent.TypePhilHealth:
			breakdowns = append(breakdowns, c.computePhilHealth(comp.ID.String(), comp.Name, gross.BasicSalary, input.CurrencyCode))

		case statutorycomponent.TypePagIBIG:
			breakdowns = append(breakdowns, c.computePagIBIG(comp.ID.String(), comp.Name, gross.BasicSalary, input.CurrencyCode))

		case statutorycomponent.TypeWithholdingTax:
			withholdingComponents = append(withholdingComponents, comp)

		default:
			return nil, fmt.Errorf("unsupported statutory component type %q for Philippines", comp.Type)
		}
	}

	for _, comp := range withholdingComponents {
		var employeeShare float64
		for _, b := range breakdowns {
			employeeShare += b.EmployeeContribution
		}
		taxableIncome := gross.TotalEarnings - employeeShare
		if tax := monthlyWithholdingTax(taxableIncome); tax > 0 {
			breakdowns = append(breakdowns, StatutoryBreakdown{
				ComponentID:          comp.ID.String(),
				Name:                 comp.Name,
				Type:                 comp.Type,
				EmployeeContribution: tax,
				EmployerContribution: 0,
				Total:                tax,
				CurrencyCode:         input.CurrencyCode,
				CalculationBasis:     BasisTaxableIncome,
			})
		}
	}

	return breakdowns, nil
}

// computeSSS picks the MSC bracket for the basic salary. Salaries above the
// top row use the top row's fixed amounts.
func (c *PhilippinesCalculator) computeSSS(componentID, name string, basicSalary float64, currency string) StatutoryBreakdown {
	bracket := sssTable[0]
	for _, b := range sssTable {
		if basicSalary >= b.salaryFrom {
			bracket = b
		}
	}

	return StatutoryBreakdown{
		ComponentID:          componentID,
		Name:                 name,
		Type:                 statutorycomponent.TypeSSS,
		EmployeeContribution: bracket.employee,
		EmployerContribution: bracket.employer,
		Total:                bracket.employee + bracket.employer,
		CurrencyCode:         currency,
		CalculationBasis:     BasisSlabBased,
	}
}

// computePhilHealth clamps the salary base to [10000, 80000], splits the 4%
// premium 50/50 and clamps each share to [200, 1600]. The per-share clamp is
// the documented monthly min/max halved a second time after the split; that
// double halving is intentional, downstream reconciliation depends on it.
func (c *PhilippinesCalculator) computePhilHealth(componentID, name string, basicSalary float64, currency string) StatutoryBreakdown {
	base := basicSalary
	if base < philHealthMinBase {
		base = philHealthMinBase
	}
	if base > philHealthMaxBase {
		base = philHealthMaxBase
	}

	total := roundCurrency(base * philHealthRate)
	employee := roundCurrency(total / 2)
	employer := total - employee

	employee = clampShare(employee)
	employer = clampShare(employer)
	rate := philHealthRate * 100

	return StatutoryBreakdown{
		ComponentID:          componentID,
		Name:                 name,
		Type:                 statutorycomponent.TypePhilHealth,
		EmployeeContribution: employee,
		EmployerContribution: employer,
		Total:                employee + employer,
		CurrencyCode:         currency,
		CalculationBasis:     BasisBasicSalary,
		Rate:                 &rate,
	}
}

func clampShare(share float64) float64 {
	if share < philHealthMinShare {
		return philHealthMinShare
	}
	if share > philHealthMaxShare {
		return philHealthMaxShare
	}
	return share
}

// computePagIBIG: the fund salary is capped at 5000; the employee rate is 1%
// when the raw salary is at most 1500, otherwise 2%, and the employee share
// is further capped at 100. The employer always contributes 2% of the capped
// salary and is not subject to the employee cap.
func (c *PhilippinesCalculator) computePagIBIG(componentID, name string, basicSalary float64, currency string) StatutoryBreakdown {
	capped := basicSalary
	if capped > pagIbigSalaryCap {
		capped = pagIbigSalaryCap
	}

	employeeRate := pagIbigHighRate
	if basicSalary <= pagIbigLowTierMax {
		employeeRate = pagIbigLowRate
	}

	employee := roundCurrency(capped * employeeRate)
	if employee > pagIbigEmployeeCap {
		employee = pagIbigEmployeeCap
	}
	employer := roundCurrency(capped * pagIbigHighRate)
	rate := employeeRate * 100

	return StatutoryBreakdown{
		ComponentID:          componentID,
		Name:                 name,
		Type:                 statutorycomponent.TypePagIBIG,
		EmployeeContribution: employee,
		EmployerContribution: employer,
		Total:                employee + employer,
		CurrencyCode:         currency,
		CalculationBasis:     BasisBasicSalary,
		Rate:                 &rate,
	}
}

func monthlyWithholdingTax(taxableIncome float64) float64 {
	if taxableIncome <= 0 {
		return 0
	}

	bracket := trainMonthlyTable[0]
	for _, b := range trainMonthlyTable {
		if taxableIncome >= b.incomeFrom {
			bracket = b
		}
	}

	tax := bracket.baseAmount + (taxableIncome-bracket.incomeFrom)*bracket.rate
	return roundCurrency(tax)
}

// ApplyAdjustments records the tax table and applied caps; totals untouched.
func (c *PhilippinesCalculator) ApplyAdjustments(input CalculationInput, result *PayrollCalculationResult) {
	result.Metadata["tax_table"] = "TRAIN"
	result.Metadata["sss_top_bracket_applied"] = strconv.FormatBool(result.BasicSalary >= sssTable[len(sssTable)-1].salaryFrom)
	result.Metadata["pagibig_salary_capped"] = strconv.FormatBool(result.BasicSalary > pagIbigSalaryCap)
}
