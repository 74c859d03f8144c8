package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrMissingEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee id is required",
		http.StatusBadRequest,
	)
	ErrMissingCountry = apperror.New(
		apperror.CodeInvalidInput,
		"country id and country code are required",
		http.StatusBadRequest,
	)
	ErrMissingPayrollPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"payroll period id is required",
		http.StatusBadRequest,
	)
	ErrMissingCurrency = apperror.New(
		apperror.CodeInvalidInput,
		"currency code is required",
		http.StatusBadRequest,
	)
	ErrNegativeBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"base salary cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidCalculationDate = apperror.New(
		apperror.CodeInvalidInput,
		"calculation date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrCountryNotFound = apperror.New(
		apperror.CodeNotFound,
		"country not found",
		http.StatusNotFound,
	)
	ErrPayrollPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
	ErrPeriodCountryMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"payroll period does not belong to the requested country",
		http.StatusBadRequest,
	)
	ErrNoActiveEmployment = apperror.New(
		apperror.CodeNotFound,
		"no active employment record for employee",
		http.StatusNotFound,
	)
	ErrNoSalaryRecord = apperror.New(
		apperror.CodeNotFound,
		"no salary record effective on the calculation date",
		http.StatusNotFound,
	)
	ErrNoCalculatorRegistered = apperror.New(
		apperror.CodeInvalidInput,
		"no calculation factory registered for country",
		http.StatusBadRequest,
	)
	ErrEmptyEmployeeList = apperror.New(
		apperror.CodeInvalidInput,
		"employee id list cannot be empty",
		http.StatusBadRequest,
	)
	ErrForbiddenTarget = apperror.New(
		apperror.CodeForbidden,
		"you may only calculate payroll for yourself",
		http.StatusForbidden,
	)
)
