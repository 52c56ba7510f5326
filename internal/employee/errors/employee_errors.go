package employeeerrors

import (
	"go-payroll/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeValidation,
		"Name is required",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeValidation,
		"Salary amounts must be finite and non-negative, percentages between 0 and 100",
		http.StatusBadRequest,
	)
	ErrEmployeeConflict = apperror.New(
		apperror.CodeConflict,
		"Employee conflicts with an existing record",
		http.StatusConflict,
	)
	ErrEmployeePersistence = apperror.New(
		apperror.CodeInternalError,
		"Failed to persist employee",
		http.StatusInternalServerError,
	)
)
