package report

import "go-payroll/internal/payroll"

type Totals struct {
	EmployeeCount   int     `json:"employeeCount"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
}

type DepartmentTotals struct {
	Department      string  `json:"department"`
	EmployeeCount   int     `json:"employeeCount"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
}

type SummaryResponse struct {
	Run          payroll.RunResponse `json:"run"`
	Totals       Totals              `json:"totals"`
	ByDepartment []DepartmentTotals  `json:"byDepartment"`
}

type Export struct {
	Filename string
	Content  []byte
}
