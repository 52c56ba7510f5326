package payroll

import (
	payrollerrors "go-payroll/internal/payroll/errors"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

// ValidatePeriod checks that month and year name a payable period.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return payrollerrors.ErrInvalidMonth
	}
	if year < MinYear || year > MaxYear {
		return payrollerrors.ErrInvalidYear
	}
	return nil
}
