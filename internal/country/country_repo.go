package country

import (
	"context"
	"errors"
	"net/http"

	"go-payroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=country_repo.go -destination=mock/country_repo_mock.go -package=mock
type Repository interface {
	FindOne(ctx context.Context, id string) (*Country, error)
	FindByCode(ctx context.Context, code string) (*Country, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindOne returns nil (no error) when the country does not exist; the
// service layer decides whether that is a NOT_FOUND.
func (r *repository) FindOne(ctx context.Context, id string) (*Country, error) {
	var c Country
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &c, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Country, error) {
	var c Country
	err := r.db.WithContext(ctx).First(&c, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &c, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 22P02: invalid_text_representation, e.g. a non-UUID id
		if pgErr.Code == "22P02" {
			return apperror.Wrap(err, apperror.CodeInvalidInput, "invalid country id", http.StatusBadRequest)
		}
	}

	return err
}
