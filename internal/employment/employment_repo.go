package employment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employment_repo.go -destination=mock/employment_repo_mock.go -package=mock
type Repository interface {
	FindActiveByUser(ctx context.Context, userID string) (*EmploymentRecord, error)
	FindSalaryHistoryByEmployment(ctx context.Context, employmentID string) ([]SalaryHistory, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByUser(ctx context.Context, userID string) (*EmploymentRecord, error) {
	var rec EmploymentRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusActive).
		Where("end_date IS NULL OR end_date > ?", time.Now()).
		Order("start_date DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindSalaryHistoryByEmployment(ctx context.Context, employmentID string) ([]SalaryHistory, error) {
	var history []SalaryHistory
	err := r.db.WithContext(ctx).
		Where("employment_id = ?", employmentID).
		Order("effective_date DESC").
		Find(&history).Error
	return history, err
}
