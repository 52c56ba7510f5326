// Package cachekey holds redis key layouts shared between the payroll run
// engine, which invalidates, and the report aggregator, which caches.
package cachekey

import "fmt"

const (
	ReportSummaryPrefix = "reports:summary:"
	RunLockPrefix       = "payroll:run:lock:"
)

func period(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func ReportSummary(month, year int) string {
	return ReportSummaryPrefix + period(month, year)
}

func RunLock(month, year int) string {
	return RunLockPrefix + period(month, year)
}
