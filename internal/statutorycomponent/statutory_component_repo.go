package statutorycomponent

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=statutory_component_repo.go -destination=mock/statutory_component_repo_mock.go -package=mock
type Repository interface {
	FindByCountry(ctx context.Context, countryID string) ([]StatutoryComponent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCountry(ctx context.Context, countryID string) ([]StatutoryComponent, error) {
	var components []StatutoryComponent
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&components).Error
	return components, err
}
