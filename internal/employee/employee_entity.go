package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Email       string    `gorm:"type:varchar(255)"`
	Department  string    `gorm:"type:varchar(120);index"`
	Designation string    `gorm:"type:varchar(120)"`

	// Inputs are stored unscaled; only computed payroll amounts are rounded.
	BaseSalary     float64 `gorm:"type:numeric;not null;default:0"`
	HRAPercent     float64 `gorm:"column:hra_percent;type:numeric;not null;default:0"`
	DAPercent      float64 `gorm:"column:da_percent;type:numeric;not null;default:0"`
	TaxPercent     float64 `gorm:"type:numeric;not null;default:0"`
	PFPercent      float64 `gorm:"column:pf_percent;type:numeric;not null;default:0"`
	OtherDeduction float64 `gorm:"type:numeric;not null;default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	// Soft delete keeps historical payroll items pointing at a valid row.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
