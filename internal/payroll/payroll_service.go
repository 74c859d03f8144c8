package payroll

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-payroll/internal/audit"
	"go-payroll/internal/country"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/shared/cache"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/statutorycomponent"

	payrollerrors "go-payroll/internal/payroll/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// Master data (country, component definitions) changes rarely; five
	// minutes keeps a bulk run from hammering the database without letting
	// stale tables survive a config change for long.
	referenceDataTTL = 5 * time.Minute

	bulkBatchSize = 50
)

// Cache key helpers, satu key per country.
func countryCacheKey(id string) string             { return "country:" + id }
func salaryComponentsCacheKey(id string) string    { return "salary_components:" + id }
func statutoryComponentsCacheKey(id string) string { return "statutory_components:" + id }

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CalculatePayroll(ctx context.Context, req CalculatePayrollRequest) (*PayrollCalculationResponse, error)
	CalculateBulkPayroll(ctx context.Context, req BulkCalculatePayrollRequest) (*BulkPayrollCalculationResponse, error)
	ValidateAccess(requesterID, requesterRole, targetEmployeeID string) error
	ClearCache()
}

type service struct {
	countries   CountryLookup
	periods     PayrollPeriodLookup
	salaryComps SalaryComponentLookup
	statComps   StatutoryComponentLookup
	employments EmploymentLookup
	registry    *Registry
	auditSink   audit.Sink
	logger      *zap.Logger

	countryCache   *cache.TTLCache[string, country.Country]
	salaryCache    *cache.TTLCache[string, []salarycomponent.SalaryComponent]
	statutoryCache *cache.TTLCache[string, []statutorycomponent.StatutoryComponent]
	sf             *singleflight.Group
}

func NewService(
	countries CountryLookup,
	periods PayrollPeriodLookup,
	salaryComps SalaryComponentLookup,
	statComps StatutoryComponentLookup,
	employments EmploymentLookup,
	registry *Registry,
	auditSink audit.Sink,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		countries:      countries,
		periods:        periods,
		salaryComps:    salaryComps,
		statComps:      statComps,
		employments:    employments,
		registry:       registry,
		auditSink:      auditSink,
		logger:         logger.Named("payroll.service"),
		countryCache:   cache.NewTTLCache[string, country.Country](),
		salaryCache:    cache.NewTTLCache[string, []salarycomponent.SalaryComponent](),
		statutoryCache: cache.NewTTLCache[string, []statutorycomponent.StatutoryComponent](),
		sf:             &singleflight.Group{},
	}
}

// ValidateAccess enforces who may calculate for whom: admin and hr for any
// employee, everyone else only for themselves.
func (s *service) ValidateAccess(requesterID, requesterRole, targetEmployeeID string) error {
	switch strings.ToLower(requesterRole) {
	case "admin", "hr":
		return nil
	}
	if requesterID != "" && requesterID == targetEmployeeID {
		return nil
	}
	return payrollerrors.ErrForbiddenTarget
}

func (s *service) CalculatePayroll(ctx context.Context, req CalculatePayrollRequest) (*PayrollCalculationResponse, error) {
	start := time.Now()

	result, warnings, err := s.calculateOne(ctx, req)
	if err != nil {
		return nil, err
	}

	status := CalculationStatusSuccess
	if len(warnings) > 0 {
		status = CalculationStatusPartial
	}

	return &PayrollCalculationResponse{
		Result:           result,
		Status:           status,
		Warnings:         warnings,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// calculateOne runs the full lookup -> calculate -> audit flow for a single
// employee. Audit failures are logged and never propagated.
func (s *service) calculateOne(ctx context.Context, req CalculatePayrollRequest) (*PayrollCalculationResult, []string, error) {
	calcDate, err := parseCalculationDate(req.CalculationDate)
	if err != nil {
		return nil, nil, err
	}

	ctry, err := s.countryFor(ctx, req.CountryID)
	if err != nil {
		return nil, nil, err
	}

	period, err := s.periods.FindOne(ctx, req.PayrollPeriodID)
	if err != nil {
		return nil, nil, err
	}
	if period == nil {
		return nil, nil, payrollerrors.ErrPayrollPeriodNotFound
	}
	if period.CountryID.String() != req.CountryID {
		return nil, nil, payrollerrors.ErrPeriodCountryMismatch
	}

	record, err := s.employments.FindActiveByUser(ctx, req.EmployeeID)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, payrollerrors.ErrNoActiveEmployment
	}

	salary, err := s.effectiveSalary(ctx, record.ID.String(), calcDate)
	if err != nil {
		return nil, nil, err
	}

	salaryComps, err := s.salaryComponentsFor(ctx, req.CountryID)
	if err != nil {
		return nil, nil, err
	}
	statComps, err := s.statutoryComponentsFor(ctx, req.CountryID)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	currency := ctry.CurrencyCode
	if salary.CurrencyCode != "" && !strings.EqualFold(salary.CurrencyCode, ctry.CurrencyCode) {
		currency = salary.CurrencyCode
		warnings = append(warnings, fmt.Sprintf(
			"salary record currency %s differs from country currency %s; using salary record currency",
			salary.CurrencyCode, ctry.CurrencyCode,
		))
	}

	calc, ok := s.registry.Lookup(ctry.Code)
	if !ok {
		return nil, nil, payrollerrors.ErrNoCalculatorRegistered
	}

	input := CalculationInput{
		EmployeeID:          req.EmployeeID,
		CountryID:           req.CountryID,
		CountryCode:         ctry.Code,
		PayrollPeriodID:     req.PayrollPeriodID,
		CalculationDate:     calcDate,
		BaseSalary:          salary.BaseSalary,
		CurrencyCode:        currency,
		SalaryComponents:    salaryComps,
		StatutoryComponents: statComps,
		IncludeOvertime:     req.IncludeOvertime,
		IncludeNightShift:   req.IncludeNightShift,
		// Provenance yang dibawa sampai ke hasil kalkulasi.
		Metadata: map[string]string{
			"employment_record_id": record.ID.String(),
			"employee_name":        record.EmployeeName,
			"employee_email":       record.EmployeeEmail,
			"period_start":         period.StartDate.Format("2006-01-02"),
			"period_end":           period.EndDate.Format("2006-01-02"),
		},
	}

	result, err := runCalculation(calc, input)
	if err != nil {
		s.logger.Warn("payroll calculation failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("country_code", ctry.Code),
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		s.emitAudit(ctx, audit.Entry{
			Action:          audit.ActionPayrollCalculationErr,
			Status:          audit.StatusFailed,
			EmployeeID:      req.EmployeeID,
			CountryID:       req.CountryID,
			PayrollPeriodID: req.PayrollPeriodID,
			Message:         err.Error(),
		})
		return nil, nil, err
	}

	s.logger.Info("payroll calculated",
		zap.String("calculation_id", result.CalculationID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("country_code", ctry.Code),
		zap.Float64("net_pay", result.NetPay),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
	)
	s.emitAudit(ctx, audit.Entry{
		Action:          audit.ActionPayrollCalculated,
		Status:          audit.StatusSuccess,
		EmployeeID:      req.EmployeeID,
		CountryID:       req.CountryID,
		PayrollPeriodID: req.PayrollPeriodID,
		CalculationID:   result.CalculationID,
		Meta: map[string]any{
			"gross_pay": result.GrossPay,
			"net_pay":   result.NetPay,
			"currency":  result.CurrencyCode,
		},
	})

	return result, warnings, nil
}

// CalculateBulkPayroll processes the employee list in batches; employees in a
// batch run concurrently, batches run back to back. One employee's failure is
// recorded and never aborts the rest.
func (s *service) CalculateBulkPayroll(ctx context.Context, req BulkCalculatePayrollRequest) (*BulkPayrollCalculationResponse, error) {
	start := time.Now()

	if len(req.EmployeeIDs) == 0 {
		return nil, payrollerrors.ErrEmptyEmployeeList
	}

	bulk := BulkResult{TotalRequested: len(req.EmployeeIDs)}
	var mu sync.Mutex

	for from := 0; from < len(req.EmployeeIDs); from += bulkBatchSize {
		to := from + bulkBatchSize
		if to > len(req.EmployeeIDs) {
			to = len(req.EmployeeIDs)
		}

		var wg sync.WaitGroup
		for _, employeeID := range req.EmployeeIDs[from:to] {
			wg.Add(1)
			go func(employeeID string) {
				defer wg.Done()

				result, _, err := s.calculateOne(ctx, CalculatePayrollRequest{
					EmployeeID:      employeeID,
					CountryID:       req.CountryID,
					PayrollPeriodID: req.PayrollPeriodID,
					CalculationDate: req.CalculationDate,
				})

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					bulk.FailedCount++
					bulk.Errors = append(bulk.Errors, BulkError{
						EmployeeID: employeeID,
						Message:    err.Error(),
					})
					return
				}
				bulk.SuccessCount++
				bulk.Results = append(bulk.Results, *result)
			}(employeeID)
		}
		wg.Wait()
	}

	s.logger.Info("bulk payroll completed",
		zap.Int("total", bulk.TotalRequested),
		zap.Int("success", bulk.SuccessCount),
		zap.Int("failed", bulk.FailedCount),
		zap.String("payroll_period_id", req.PayrollPeriodID),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
	)
	s.emitAudit(ctx, audit.Entry{
		Action:          audit.ActionPayrollBulkCompleted,
		Status:          audit.StatusSuccess,
		CountryID:       req.CountryID,
		PayrollPeriodID: req.PayrollPeriodID,
		Meta: map[string]any{
			"total_requested": bulk.TotalRequested,
			"success_count":   bulk.SuccessCount,
			"failed_count":    bulk.FailedCount,
		},
	})

	return &BulkPayrollCalculationResponse{
		Result:           bulk,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// ClearCache drops all cached reference data. Exposed for admin tooling after
// master-data changes.
func (s *service) ClearCache() {
	s.countryCache.Clear()
	s.salaryCache.Clear()
	s.statutoryCache.Clear()
	s.logger.Info("reference data cache cleared")
}

func (s *service) countryFor(ctx context.Context, countryID string) (*country.Country, error) {
	key := countryCacheKey(countryID)
	if cached, ok := s.countryCache.Get(key); ok {
		return &cached, nil
	}

	// Singleflight supaya cache miss paralel tidak jadi query ganda.
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ctry, err := s.countries.FindOne(ctx, countryID)
		if err != nil {
			return nil, err
		}
		if ctry == nil {
			return nil, payrollerrors.ErrCountryNotFound
		}
		s.countryCache.Set(key, *ctry, referenceDataTTL)
		return ctry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*country.Country), nil
}

func (s *service) salaryComponentsFor(ctx context.Context, countryID string) ([]salarycomponent.SalaryComponent, error) {
	key := salaryComponentsCacheKey(countryID)
	if cached, ok := s.salaryCache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		comps, err := s.salaryComps.FindByCountry(ctx, countryID)
		if err != nil {
			return nil, err
		}
		s.salaryCache.Set(key, comps, referenceDataTTL)
		return comps, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]salarycomponent.SalaryComponent), nil
}

func (s *service) statutoryComponentsFor(ctx context.Context, countryID string) ([]statutorycomponent.StatutoryComponent, error) {
	key := statutoryComponentsCacheKey(countryID)
	if cached, ok := s.statutoryCache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		comps, err := s.statComps.FindByCountry(ctx, countryID)
		if err != nil {
			return nil, err
		}
		s.statutoryCache.Set(key, comps, referenceDataTTL)
		return comps, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]statutorycomponent.StatutoryComponent), nil
}

// effectiveSalary returns the salary history row with the most recent
// effective date on or before the calculation date.
func (s *service) effectiveSalary(ctx context.Context, employmentID string, calcDate time.Time) (*SalaryRecord, error) {
	history, err := s.employments.FindSalaryHistoryByEmployment(ctx, employmentID)
	if err != nil {
		return nil, err
	}

	// Repo sudah urut effective_date DESC; ambil yang pertama tidak lewat
	// dari tanggal kalkulasi.
	for i := range history {
		if !history[i].EffectiveDate.After(calcDate) {
			return &SalaryRecord{
				BaseSalary:   history[i].BaseSalary,
				CurrencyCode: history[i].CurrencyCode,
			}, nil
		}
	}
	return nil, payrollerrors.ErrNoSalaryRecord
}

// SalaryRecord is the resolved pay basis for one calculation.
type SalaryRecord struct {
	BaseSalary   float64
	CurrencyCode string
}

func parseCalculationDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidCalculationDate
	}
	return t, nil
}

func (s *service) emitAudit(ctx context.Context, entry audit.Entry) {
	if s.auditSink == nil {
		return
	}
	entry.RequestID = contextutil.GetRequestID(ctx)
	entry.ActorID = contextutil.GetUserID(ctx)
	entry.ActorRole = contextutil.GetRole(ctx)
	entry.OccurredAt = time.Now().UTC()
	if err := s.auditSink.Log(ctx, entry); err != nil {
		s.logger.Warn("audit sink failed", zap.String("action", entry.Action), zap.Error(err))
	}
}
