package employee

import (
	"context"
	"math"
	"strings"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req EmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error) {
	md := contextutil.ExtractMetadata(ctx)
	rid := md.RequestID
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", md.UserID),
		zap.String("department", req.Department),
	)

	emp := &Employee{ID: uuid.New()}
	if err := applyRequest(emp, req); err != nil {
		s.logger.Warn("create employee rejected", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("user_id", md.UserID),
		zap.String("employee_id", emp.ID.String()),
	)
	return mapToResponse(emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, 0, len(emps))
	for i := range emps {
		res = append(res, mapToResponse(&emps[i]))
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(emp), nil
}

// Update replaces every mutable field of the employee with the request values.
func (s *service) Update(ctx context.Context, id string, req EmployeeRequest) (EmployeeResponse, error) {
	md := contextutil.ExtractMetadata(ctx)
	rid := md.RequestID
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	var updated *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		emp, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyRequest(emp, req); err != nil {
			return err
		}
		if err := qtx.Update(ctx, emp); err != nil {
			return err
		}
		updated = emp
		return nil
	})
	if err != nil {
		s.logger.Warn("update employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("employee updated",
		zap.String("request_id", rid),
		zap.String("user_id", md.UserID),
		zap.String("employee_id", id),
	)
	return mapToResponse(updated), nil
}

// Delete hides the employee from the registry and from future runs. Items
// of past runs keep resolving the employee's name and department.
func (s *service) Delete(ctx context.Context, id string) error {
	md := contextutil.ExtractMetadata(ctx)
	rid := md.RequestID
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("employee deleted",
		zap.String("request_id", rid),
		zap.String("user_id", md.UserID),
		zap.String("employee_id", id),
	)
	return nil
}

func applyRequest(emp *Employee, req EmployeeRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return employeeerrors.ErrNameRequired
	}
	if req.BaseSalary == nil {
		return employeeerrors.ErrInvalidAmount
	}

	amounts := []float64{*req.BaseSalary, req.OtherDeduction}
	for _, v := range amounts {
		if !validAmount(v) {
			return employeeerrors.ErrInvalidAmount
		}
	}
	percents := []float64{req.HRAPercent, req.DAPercent, req.TaxPercent, req.PFPercent}
	for _, v := range percents {
		if !validAmount(v) || v > 100 {
			return employeeerrors.ErrInvalidAmount
		}
	}

	emp.Name = name
	emp.Email = strings.TrimSpace(req.Email)
	emp.Department = strings.TrimSpace(req.Department)
	emp.Designation = strings.TrimSpace(req.Designation)
	emp.BaseSalary = *req.BaseSalary
	emp.HRAPercent = req.HRAPercent
	emp.DAPercent = req.DAPercent
	emp.TaxPercent = req.TaxPercent
	emp.PFPercent = req.PFPercent
	emp.OtherDeduction = req.OtherDeduction
	return nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func mapToResponse(e *Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID.String(),
		Name:           e.Name,
		Email:          e.Email,
		Department:     e.Department,
		Designation:    e.Designation,
		BaseSalary:     e.BaseSalary,
		HRAPercent:     e.HRAPercent,
		DAPercent:      e.DAPercent,
		TaxPercent:     e.TaxPercent,
		PFPercent:      e.PFPercent,
		OtherDeduction: e.OtherDeduction,
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
