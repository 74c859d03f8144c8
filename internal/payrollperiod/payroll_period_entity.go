package payrollperiod

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen       = "OPEN"
	StatusProcessing = "PROCESSING"
	StatusClosed     = "CLOSED"
)

type PayrollPeriod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CountryID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
