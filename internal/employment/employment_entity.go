package employment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
)

type EmploymentRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index"`
	EmployeeName  string
	EmployeeEmail string
	Status        string
	StartDate     time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalaryHistory is effective-dated: the entry with the latest effective date
// not after the calculation date is the employee's current salary.
type SalaryHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmploymentID  uuid.UUID `gorm:"type:uuid;index"`
	BaseSalary    float64   `gorm:"type:numeric"`
	CurrencyCode  string    `gorm:"size:3"`
	EffectiveDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
