package payroll

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) Calculate(c *gin.Context) {
	var req CalculatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.ValidateAccess(
		c.GetString("employee_id"),
		c.GetString("role"),
		req.EmployeeID,
	); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.CalculatePayroll(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) CalculateBulk(c *gin.Context) {
	var req BulkCalculatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	// Bulk selalu lintas karyawan; hanya admin/hr yang boleh.
	role := strings.ToLower(c.GetString("role"))
	if role != "admin" && role != "hr" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "bulk calculation requires admin or hr role", nil)
		return
	}

	resp, err := h.service.CalculateBulkPayroll(c.Request.Context(), req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, err)
		return
	}

	h.storeIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp)
}

// ClearCache membuang cache reference data setelah master data berubah.
func (h *Handler) ClearCache(c *gin.Context) {
	role := strings.ToLower(c.GetString("role"))
	if role != "admin" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cache management requires admin role", nil)
		return
	}

	h.service.ClearCache()
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

// storeIdempotentResponse completes the idempotency handshake started by the
// middleware: cache the finished response and release the in-flight lock.
func (h *Handler) storeIdempotentResponse(c *gin.Context, resp *BulkPayrollCalculationResponse) {
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" || h.rdb == nil {
		return
	}

	if payload, err := json.Marshal(resp); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour)
	}
	h.releaseIdempotencyLock(c)
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	if lockKey == "" || h.rdb == nil {
		return
	}
	h.rdb.Del(c.Request.Context(), lockKey)
}

func writeServiceError(c *gin.Context, err error) {
	he := apperror.ToHTTP(err)
	response.Error(c, he.Status, he.Code, he.Message, he.Details)
}
