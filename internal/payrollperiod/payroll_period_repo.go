package payrollperiod

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_period_repo.go -destination=mock/payroll_period_repo_mock.go -package=mock
type Repository interface {
	FindOne(ctx context.Context, id string) (*PayrollPeriod, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOne(ctx context.Context, id string) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
