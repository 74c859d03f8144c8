package statutorycomponent

import (
	"time"

	"github.com/google/uuid"
)

// Statutory component types known to the region calculators.
const (
	TypeEPF             = "EPF"
	TypeESI             = "ESI"
	TypeProfessionalTax = "PT"
	TypeTDS             = "TDS"
	TypeSSS             = "SSS"
	TypePhilHealth      = "PHILHEALTH"
	TypePagIBIG         = "PAGIBIG"
	TypeWithholdingTax  = "WITHHOLDING_TAX"
)

type StatutoryComponent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CountryID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Type      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
