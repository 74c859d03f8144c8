package payroll

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RegionCalculator is the jurisdiction-specific half of the calculation
// pipeline. Implementations may additionally satisfy OtherDeductionsComputer
// or ResultAdjuster to override the optional steps.
type RegionCalculator interface {
	CountryCode() string
	ComputeGrossPay(input CalculationInput) (GrossPay, error)
	ComputeStatutoryDeductions(input CalculationInput, gross GrossPay) ([]StatutoryBreakdown, error)
}

// OtherDeductionsComputer overrides the default non-statutory deduction step.
type OtherDeductionsComputer interface {
	ComputeOtherDeductions(input CalculationInput) ([]ComponentBreakdown, error)
}

// ResultAdjuster lets a region attach metadata to an assembled result. It
// must not alter any totals.
type ResultAdjuster interface {
	ApplyAdjustments(input CalculationInput, result *PayrollCalculationResult)
}

// Registry maps ISO country code to its calculator. It is populated once at
// the composition root and read-only afterwards, so lookups need no locking.
type Registry struct {
	calculators map[string]RegionCalculator
}

func NewRegistry() *Registry {
	return &Registry{calculators: make(map[string]RegionCalculator)}
}

func (r *Registry) Register(calc RegionCalculator) {
	r.calculators[strings.ToUpper(calc.CountryCode())] = calc
}

func (r *Registry) Lookup(countryCode string) (RegionCalculator, bool) {
	calc, ok := r.calculators[strings.ToUpper(countryCode)]
	return calc, ok
}

// Codes returns the registered ISO country codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.calculators))
	for code := range r.calculators {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CheckRegisteredCountries cross-checks the registry against country master
// data at startup: a calculator whose code has no country row can never be
// reached, because requests address countries by id. Returns the orphaned
// codes and logs a warning per code; lookup errors are logged and skipped.
func CheckRegisteredCountries(ctx context.Context, registry *Registry, countries CountryCodeLookup, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.L()
	}

	var missing []string
	for _, code := range registry.Codes() {
		ctry, err := countries.FindByCode(ctx, code)
		if err != nil {
			logger.Warn("could not verify country for registered calculator",
				zap.String("country_code", code), zap.Error(err))
			continue
		}
		if ctry == nil {
			missing = append(missing, code)
			logger.Warn("registered calculator has no country row",
				zap.String("country_code", code))
		}
	}
	return missing
}
