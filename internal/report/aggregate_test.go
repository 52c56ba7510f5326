package report

import (
	"testing"

	"go-payroll/internal/payroll"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_UnresolvedEmployeeIsUnassigned(t *testing.T) {
	items := []payroll.PayrollItem{
		{Gross: 100.1, Deductions: 0.1, Net: 100, Employee: &payroll.EmployeeSnapshot{Department: "Ops"}},
		{Gross: 0.2, Deductions: 0.1, Net: 0.1},
		{Gross: 0.1, Deductions: 0, Net: 0.1, Employee: &payroll.EmployeeSnapshot{}},
	}

	totals, groups := aggregate(items)

	assert.Equal(t, Totals{EmployeeCount: 3, TotalGross: 100.4, TotalDeductions: 0.2, TotalNet: 100.2}, totals)
	assert.Equal(t, []DepartmentTotals{
		{Department: "Ops", EmployeeCount: 1, TotalGross: 100.1, TotalDeductions: 0.1, TotalNet: 100},
		{Department: UnassignedDepartment, EmployeeCount: 2, TotalGross: 0.3, TotalDeductions: 0.1, TotalNet: 0.2},
	}, groups)
}

func TestAggregate_Empty(t *testing.T) {
	totals, groups := aggregate(nil)

	assert.Equal(t, Totals{}, totals)
	assert.Empty(t, groups)
}

func TestAmount_MarshalCSV(t *testing.T) {
	s, err := Amount(1234.5).MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "1234.50", s)

	s, _ = Amount(0).MarshalCSV()
	assert.Equal(t, "0.00", s)
}
