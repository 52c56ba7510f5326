package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayrollRun struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Month int       `gorm:"not null;uniqueIndex:idx_payroll_run_period"`
	Year  int       `gorm:"not null;uniqueIndex:idx_payroll_run_period"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

type Breakdown struct {
	Base  float64 `gorm:"type:numeric(14,2);not null;default:0"`
	HRA   float64 `gorm:"column:hra;type:numeric(14,2);not null;default:0"`
	DA    float64 `gorm:"column:da;type:numeric(14,2);not null;default:0"`
	Tax   float64 `gorm:"type:numeric(14,2);not null;default:0"`
	PF    float64 `gorm:"column:pf;type:numeric(14,2);not null;default:0"`
	Other float64 `gorm:"type:numeric(14,2);not null;default:0"`
}

// PayrollItem is the computed pay of one employee in one run. Items are
// replaced as a whole when the run is executed again.
type PayrollItem struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_item_run_employee"`
	Run        *PayrollRun       `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE"`
	EmployeeID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_item_run_employee;index"`
	Employee   *EmployeeSnapshot `gorm:"foreignKey:EmployeeID;references:ID"`

	Gross      float64   `gorm:"type:numeric(14,2);not null;default:0"`
	Deductions float64   `gorm:"type:numeric(14,2);not null;default:0"`
	Net        float64   `gorm:"type:numeric(14,2);not null;default:0"`
	Breakdown  Breakdown `gorm:"embedded;embeddedPrefix:breakdown_"`

	CreatedAt time.Time
}

func (PayrollItem) TableName() string {
	return "payroll_items"
}

// EmployeeSnapshot is the read side of the employees table used by runs.
type EmployeeSnapshot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Email       string
	Department  string
	Designation string

	BaseSalary     float64 `gorm:"type:numeric"`
	HRAPercent     float64 `gorm:"column:hra_percent;type:numeric"`
	DAPercent      float64 `gorm:"column:da_percent;type:numeric"`
	TaxPercent     float64 `gorm:"column:tax_percent;type:numeric"`
	PFPercent      float64 `gorm:"column:pf_percent;type:numeric"`
	OtherDeduction float64 `gorm:"type:numeric"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (EmployeeSnapshot) TableName() string {
	return "employees"
}

func (e EmployeeSnapshot) calculationInput() CalculationInput {
	return CalculationInput{
		BaseSalary:     e.BaseSalary,
		HRAPercent:     e.HRAPercent,
		DAPercent:      e.DAPercent,
		TaxPercent:     e.TaxPercent,
		PFPercent:      e.PFPercent,
		OtherDeduction: e.OtherDeduction,
	}
}
