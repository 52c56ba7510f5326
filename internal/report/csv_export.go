package report

import (
	"fmt"

	"go-payroll/internal/payroll"

	"github.com/gocarina/gocsv"
)

// Amount renders money with exactly two decimals.
type Amount float64

func (a Amount) MarshalCSV() (string, error) {
	return fmt.Sprintf("%.2f", float64(a)), nil
}

type csvRow struct {
	EmployeeID  string `csv:"employeeId"`
	Name        string `csv:"name"`
	Email       string `csv:"email"`
	Department  string `csv:"department"`
	Designation string `csv:"designation"`
	Base        Amount `csv:"base"`
	HRA         Amount `csv:"hra"`
	DA          Amount `csv:"da"`
	Gross       Amount `csv:"gross"`
	Tax         Amount `csv:"tax"`
	PF          Amount `csv:"pf"`
	Other       Amount `csv:"other"`
	Deductions  Amount `csv:"deductions"`
	Net         Amount `csv:"net"`
	Month       int    `csv:"month"`
	Year        int    `csv:"year"`
}

func exportFilename(run payroll.PayrollRun) string {
	return fmt.Sprintf("payroll_%04d_%02d.csv", run.Year, run.Month)
}

func buildCSV(run payroll.PayrollRun, items []payroll.PayrollItem) ([]byte, error) {
	payroll.SortItemsByName(items)

	rows := make([]*csvRow, 0, len(items))
	for _, item := range items {
		row := &csvRow{
			EmployeeID: item.EmployeeID.String(),
			Base:       Amount(item.Breakdown.Base),
			HRA:        Amount(item.Breakdown.HRA),
			DA:         Amount(item.Breakdown.DA),
			Gross:      Amount(item.Gross),
			Tax:        Amount(item.Breakdown.Tax),
			PF:         Amount(item.Breakdown.PF),
			Other:      Amount(item.Breakdown.Other),
			Deductions: Amount(item.Deductions),
			Net:        Amount(item.Net),
			Month:      run.Month,
			Year:       run.Year,
		}
		if e := item.Employee; e != nil {
			row.Name = e.Name
			row.Email = e.Email
			row.Department = e.Department
			row.Designation = e.Designation
		}
		rows = append(rows, row)
	}

	return gocsv.MarshalBytes(rows)
}
