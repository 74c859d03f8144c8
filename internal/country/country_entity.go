package country

import (
	"time"

	"github.com/google/uuid"
)

type Country struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Code         string `gorm:"size:2;uniqueIndex"` // ISO 3166-1 alpha-2
	CurrencyCode string `gorm:"size:3"`
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
