package report

import (
	"sort"

	"go-payroll/internal/payroll"

	"github.com/shopspring/decimal"
)

const UnassignedDepartment = "Unassigned"

type accumulator struct {
	count      int
	gross      decimal.Decimal
	deductions decimal.Decimal
	net        decimal.Decimal
}

func (a *accumulator) add(item payroll.PayrollItem) {
	a.count++
	a.gross = a.gross.Add(decimal.NewFromFloat(item.Gross))
	a.deductions = a.deductions.Add(decimal.NewFromFloat(item.Deductions))
	a.net = a.net.Add(decimal.NewFromFloat(item.Net))
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func departmentOf(item payroll.PayrollItem) string {
	if item.Employee == nil || item.Employee.Department == "" {
		return UnassignedDepartment
	}
	return item.Employee.Department
}

// aggregate sums items overall and per department. Departments are ordered
// by net pay, largest first, then by name.
func aggregate(items []payroll.PayrollItem) (Totals, []DepartmentTotals) {
	var total accumulator
	groups := map[string]*accumulator{}

	for _, item := range items {
		total.add(item)

		dept := departmentOf(item)
		g, ok := groups[dept]
		if !ok {
			g = &accumulator{}
			groups[dept] = g
		}
		g.add(item)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := groups[names[i]].net.Cmp(groups[names[j]].net); c != 0 {
			return c > 0
		}
		return names[i] < names[j]
	})

	byDepartment := make([]DepartmentTotals, 0, len(names))
	for _, name := range names {
		g := groups[name]
		byDepartment = append(byDepartment, DepartmentTotals{
			Department:      name,
			EmployeeCount:   g.count,
			TotalGross:      money(g.gross),
			TotalDeductions: money(g.deductions),
			TotalNet:        money(g.net),
		})
	}

	return Totals{
		EmployeeCount:   total.count,
		TotalGross:      money(total.gross),
		TotalDeductions: money(total.deductions),
		TotalNet:        money(total.net),
	}, byDepartment
}
