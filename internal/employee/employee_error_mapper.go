package employee

import (
	"errors"
	"strings"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return employeeerrors.ErrEmployeeConflict.WithCause(err)
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint failed") || strings.Contains(errMsg, "duplicate key value") {
		return employeeerrors.ErrEmployeeConflict.WithCause(err)
	}

	return employeeerrors.ErrEmployeePersistence.WithCause(err)
}
