package payroll

import (
	"context"

	"go-payroll/internal/country"
	"go-payroll/internal/employment"
	"go-payroll/internal/payrollperiod"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutorycomponent"
)

//go:generate mockgen -source=payroll_lookups.go -destination=mocks/payroll_lookups_mock.go -package=mocks

// Lookup interfaces the service depends on. The gorm repositories satisfy
// them as-is; tests substitute closures.

type CountryLookup interface {
	FindOne(ctx context.Context, id string) (*country.Country, error)
}

// CountryCodeLookup resolves an ISO country code to its master-data row; used
// by the startup registry check, not by the calculation path.
type CountryCodeLookup interface {
	FindByCode(ctx context.Context, code string) (*country.Country, error)
}

type PayrollPeriodLookup interface {
	FindOne(ctx context.Context, id string) (*payrollperiod.PayrollPeriod, error)
}

type SalaryComponentLookup interface {
	FindByCountry(ctx context.Context, countryID string) ([]salarycomponent.SalaryComponent, error)
}

type StatutoryComponentLookup interface {
	FindByCountry(ctx context.Context, countryID string) ([]statutorycomponent.StatutoryComponent, error)
}

type EmploymentLookup interface {
	FindActiveByUser(ctx context.Context, userID string) (*employment.EmploymentRecord, error)
	FindSalaryHistoryByEmployment(ctx context.Context, employmentID string) ([]employment.SalaryHistory, error)
}
