package reporterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPeriodRequired = apperror.New(
		apperror.CodeValidation,
		"month and year are required",
		http.StatusBadRequest,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found for month/year",
		http.StatusNotFound,
	)
	ErrExportNotFound = apperror.New(
		apperror.CodeNotFound,
		"run not found",
		http.StatusNotFound,
	)
	ErrReportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to build report",
		http.StatusInternalServerError,
	)
)
