package payroll

import (
	"sort"
	"time"
)

func ToRunResponse(run PayrollRun) RunResponse {
	return RunResponse{
		ID:        run.ID.String(),
		Month:     run.Month,
		Year:      run.Year,
		CreatedAt: run.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: run.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToItemResponse flattens an item and its employee. An employee that can no
// longer be resolved leaves the display fields empty.
func ToItemResponse(item PayrollItem) ItemResponse {
	res := ItemResponse{
		ID:         item.ID.String(),
		RunID:      item.RunID.String(),
		EmployeeID: item.EmployeeID.String(),
		Gross:      item.Gross,
		Deductions: item.Deductions,
		Net:        item.Net,
		Breakdown: BreakdownResponse{
			Base:  item.Breakdown.Base,
			HRA:   item.Breakdown.HRA,
			DA:    item.Breakdown.DA,
			Tax:   item.Breakdown.Tax,
			PF:    item.Breakdown.PF,
			Other: item.Breakdown.Other,
		},
	}
	if item.Employee != nil {
		res.Name = item.Employee.Name
		res.Email = item.Employee.Email
		res.Department = item.Employee.Department
		res.Designation = item.Employee.Designation
	}
	return res
}

// SortItemsByName orders items by employee name, then employee id.
func SortItemsByName(items []PayrollItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ni, nj := employeeName(items[i]), employeeName(items[j])
		if ni != nj {
			return ni < nj
		}
		return items[i].EmployeeID.String() < items[j].EmployeeID.String()
	})
}

func employeeName(item PayrollItem) string {
	if item.Employee == nil {
		return ""
	}
	return item.Employee.Name
}

func toRunDetail(run PayrollRun, items []PayrollItem) RunDetailResponse {
	SortItemsByName(items)
	res := RunDetailResponse{
		Run:   ToRunResponse(run),
		Items: make([]ItemResponse, 0, len(items)),
	}
	for _, item := range items {
		res.Items = append(res.Items, ToItemResponse(item))
	}
	return res
}
