package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const itemBatchSize = 200

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindEmployeesForRun(ctx context.Context) ([]EmployeeSnapshot, error)
	FindRunByPeriod(ctx context.Context, month, year int) (*PayrollRun, error)
	FindRunByID(ctx context.Context, id string) (*PayrollRun, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)
	CreateRunIfAbsent(ctx context.Context, run *PayrollRun) error
	TouchRun(ctx context.Context, run *PayrollRun) error
	DeleteItemsByRun(ctx context.Context, runID uuid.UUID) (int64, error)
	CreateItems(ctx context.Context, items []PayrollItem) error
	FindItemsByRun(ctx context.Context, runID uuid.UUID) ([]PayrollItem, error)
	FindItem(ctx context.Context, runID, employeeID uuid.UUID) (*PayrollItem, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// FindEmployeesForRun returns active employees in creation order.
func (r *repository) FindEmployeesForRun(ctx context.Context) ([]EmployeeSnapshot, error) {
	var employees []EmployeeSnapshot
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindRunByPeriod(ctx context.Context, month, year int) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindRunByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) ListRuns(ctx context.Context) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Order("month DESC").
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

// CreateRunIfAbsent inserts run unless the period already has one. Callers
// re-read the period afterwards to learn which row won.
func (r *repository) CreateRunIfAbsent(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(run).Error
}

func (r *repository) TouchRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).
		Model(run).
		Update("updated_at", time.Now()).Error
}

func (r *repository) DeleteItemsByRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Delete(&PayrollItem{})
	return res.RowsAffected, res.Error
}

func (r *repository) CreateItems(ctx context.Context, items []PayrollItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(items, itemBatchSize).Error
}

// FindItemsByRun loads the items of a run with their employees. Deleted
// employees are still resolved.
func (r *repository) FindItemsByRun(ctx context.Context, runID uuid.UUID) ([]PayrollItem, error) {
	var items []PayrollItem
	err := r.db.WithContext(ctx).
		Preload("Employee", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("run_id = ?", runID).
		Find(&items).Error
	return items, err
}

func (r *repository) FindItem(ctx context.Context, runID, employeeID uuid.UUID) (*PayrollItem, error) {
	var item PayrollItem
	err := r.db.WithContext(ctx).
		Preload("Employee", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("run_id = ? AND employee_id = ?", runID, employeeID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
