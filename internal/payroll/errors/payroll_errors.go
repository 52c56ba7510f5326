package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

const (
	CodeEmptyRegistry = "EMPTY_REGISTRY"
	CodeRunInProgress = "RUN_IN_PROGRESS"
	CodeRunConflict   = "RUN_CONFLICT"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeValidation,
		"month must be an integer between 1 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidation,
		"year must be an integer between 2000 and 2100",
		http.StatusBadRequest,
	)
	ErrEmptyRegistry = apperror.New(
		CodeEmptyRegistry,
		"no employees to run payroll for",
		http.StatusBadRequest,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll item not found",
		http.StatusNotFound,
	)
	ErrRunInProgress = apperror.New(
		CodeRunInProgress,
		"a payroll run for this period is already in progress",
		http.StatusConflict,
	)
	ErrRunConflict = apperror.New(
		CodeRunConflict,
		"payroll run conflicted with a concurrent run, retry the request",
		http.StatusConflict,
	)
	ErrPayrollPersistence = apperror.New(
		apperror.CodeInternalError,
		"failed to persist payroll",
		http.StatusInternalServerError,
	)
	ErrPayslipRender = apperror.New(
		apperror.CodeInternalError,
		"failed to render payslip",
		http.StatusInternalServerError,
	)
)
