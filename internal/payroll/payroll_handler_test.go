package payroll_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/payroll"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePayrollService struct {
	calculateFn      func(ctx context.Context, req payroll.CalculatePayrollRequest) (*payroll.PayrollCalculationResponse, error)
	calculateBulkFn  func(ctx context.Context, req payroll.BulkCalculatePayrollRequest) (*payroll.BulkPayrollCalculationResponse, error)
	validateAccessFn func(requesterID, requesterRole, targetEmployeeID string) error
	clearCacheCalls  int
}

func (f *fakePayrollService) CalculatePayroll(ctx context.Context, req payroll.CalculatePayrollRequest) (*payroll.PayrollCalculationResponse, error) {
	if f.calculateFn != nil {
		return f.calculateFn(ctx, req)
	}
	return &payroll.PayrollCalculationResponse{Status: payroll.CalculationStatusSuccess}, nil
}

func (f *fakePayrollService) CalculateBulkPayroll(ctx context.Context, req payroll.BulkCalculatePayrollRequest) (*payroll.BulkPayrollCalculationResponse, error) {
	if f.calculateBulkFn != nil {
		return f.calculateBulkFn(ctx, req)
	}
	return &payroll.BulkPayrollCalculationResponse{}, nil
}

func (f *fakePayrollService) ValidateAccess(requesterID, requesterRole, targetEmployeeID string) error {
	if f.validateAccessFn != nil {
		return f.validateAccessFn(requesterID, requesterRole, targetEmployeeID)
	}
	return nil
}

func (f *fakePayrollService) ClearCache() {
	f.clearCacheCalls++
}

func calculateBody(employeeID string) string {
	return fmt.Sprintf(
		`{"employee_id":%q,"country_id":%q,"payroll_period_id":%q,"calculation_date":"2025-06-15"}`,
		employeeID, uuid.NewString(), uuid.NewString(),
	)
}

func TestHandler_Calculate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakePayrollService{
		calculateFn: func(ctx context.Context, req payroll.CalculatePayrollRequest) (*payroll.PayrollCalculationResponse, error) {
			assert.Equal(t, employeeID, req.EmployeeID)
			return &payroll.PayrollCalculationResponse{
				Result: &payroll.PayrollCalculationResult{EmployeeID: req.EmployeeID, NetPay: 61023},
				Status: payroll.CalculationStatusSuccess,
			}, nil
		},
	}
	h := payroll.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("role", "employee")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-calculations/calculate", strings.NewReader(calculateBody(employeeID)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"net_pay":61023`)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestHandler_CalculateForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayrollService{
		validateAccessFn: func(requesterID, requesterRole, targetEmployeeID string) error {
			return payrollerrors.ErrForbiddenTarget
		},
	}
	h := payroll.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.NewString())
	c.Set("role", "employee")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-calculations/calculate", strings.NewReader(calculateBody(uuid.NewString())))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestHandler_CalculateValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := payroll.NewHandler(&fakePayrollService{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-calculations/calculate", strings.NewReader(`{"employee_id":"not-a-uuid"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_CalculateServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakePayrollService{
		calculateFn: func(ctx context.Context, req payroll.CalculatePayrollRequest) (*payroll.PayrollCalculationResponse, error) {
			return nil, payrollerrors.ErrCountryNotFound
		},
	}
	h := payroll.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("role", "admin")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-calculations/calculate", strings.NewReader(calculateBody(employeeID)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestHandler_CalculateBulkRequiresPrivilegedRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := payroll.NewHandler(&fakePayrollService{}, nil)

	body := fmt.Sprintf(
		`{"country_id":%q,"payroll_period_id":%q,"employee_ids":[%q]}`,
		uuid.NewString(), uuid.NewString(), uuid.NewString(),
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.NewString())
	c.Set("role", "employee")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-calculations/calculate-bulk", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CalculateBulk(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_CalculateBulkSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayrollService{
		calculateBulkFn: func(ctx context.Context, req payroll.BulkCalculatePayrollRequest) (*payroll.BulkPayrollCalculationResponse, error) {
			return &payroll.BulkPayrollCalculationResponse{
				Result: payroll.BulkResult{TotalRequested: len(req.EmployeeIDs), SuccessCount: len(req.EmployeeIDs)},
			}, nil
		},
	}
	h := payroll.NewHandler(svc, nil)

	body := fmt.Sprintf(
		`{"country_id":%q,"payroll_period_id":%q,"employee_ids":[%q,%q]}`,
		uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString(),
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.NewString())
	c.Set("role", "hr")
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-calculations/calculate-bulk", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CalculateBulk(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_requested":2`)
}

func TestHandler_ClearCacheAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakePayrollService{}
	h := payroll.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("role", "hr")
	c.Request = httptest.NewRequest(http.MethodDelete, "/payroll-calculations/cache", nil)
	h.ClearCache(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, svc.clearCacheCalls)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("role", "admin")
	c2.Request = httptest.NewRequest(http.MethodDelete, "/payroll-calculations/cache", nil)
	h.ClearCache(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, 1, svc.clearCacheCalls)
}
