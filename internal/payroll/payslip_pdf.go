package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

func renderPayslipPDF(run PayrollRun, item ItemResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %04d-%02d", run.Year, run.Month), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	period := time.Date(run.Year, time.Month(run.Month), 1, 0, 0, 0, 0, time.UTC)
	header := []string{
		fmt.Sprintf("Period: %s", period.Format("January 2006")),
		fmt.Sprintf("Employee: %s", displayOr(item.Name, item.EmployeeID)),
		fmt.Sprintf("Email: %s", displayOr(item.Email, "-")),
		fmt.Sprintf("Department: %s", displayOr(item.Department, "-")),
		fmt.Sprintf("Designation: %s", displayOr(item.Designation, "-")),
	}
	for _, line := range header {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	rows := []struct {
		label  string
		amount float64
	}{
		{"Base", item.Breakdown.Base},
		{"HRA", item.Breakdown.HRA},
		{"DA", item.Breakdown.DA},
		{"Gross", item.Gross},
		{"Tax", item.Breakdown.Tax},
		{"PF", item.Breakdown.PF},
		{"Other deductions", item.Breakdown.Other},
		{"Total deductions", item.Deductions},
		{"Net pay", item.Net},
	}
	for _, row := range rows {
		if row.label == "Gross" || row.label == "Total deductions" || row.label == "Net pay" {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "", 12)
		}
		pdf.CellFormat(80, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", row.amount), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func displayOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
