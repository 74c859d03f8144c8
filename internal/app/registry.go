package app

import (
	"context"

	"go-payroll/internal/audit"
	"go-payroll/internal/country"
	"go-payroll/internal/employment"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payrollperiod"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutorycomponent"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	auditSink audit.Sink,
) error {
	// --- Repositories ---
	countryRepo := country.NewRepository(gormDB)
	payrollPeriodRepo := payrollperiod.NewRepository(gormDB)
	salaryComponentRepo := salarycomponent.NewRepository(gormDB)
	statutoryComponentRepo := statutorycomponent.NewRepository(gormDB)
	employmentRepo := employment.NewRepository(gormDB)

	// --- Region calculators ---
	registry := payroll.NewRegistry()
	registry.Register(payroll.NewIndiaCalculator())
	registry.Register(payroll.NewPhilippinesCalculator())
	payroll.CheckRegisteredCountries(context.Background(), registry, countryRepo, zap.L())

	// --- Services ---
	payrollService := payroll.NewService(
		countryRepo,
		payrollPeriodRepo,
		salaryComponentRepo,
		statutoryComponentRepo,
		employmentRepo,
		registry,
		auditSink,
		zap.L(),
	)

	// --- Handlers ---
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID(), middleware.RateLimitByIP(50, 100))
	{
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
