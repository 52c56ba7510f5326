package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/cachekey"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultRunLockTTL = 60 * time.Second

type Service interface {
	RunPayroll(ctx context.Context, month, year int) (RunDetailResponse, error)
	ListRuns(ctx context.Context) ([]RunResponse, error)
	GetRun(ctx context.Context, runID string) (RunDetailResponse, error)
	Payslip(ctx context.Context, runID, employeeID string) (Payslip, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewService builds the run engine. outboxRepo and rdb are optional.
func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	lockTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if lockTTL <= 0 {
		lockTTL = DefaultRunLockTTL
	}
	return &service{
		db:      db,
		repo:    repo,
		outbox:  outboxRepo,
		rdb:     rdb,
		lockTTL: lockTTL,
		logger:  l,
	}
}

func (s *service) RunPayroll(ctx context.Context, month, year int) (RunDetailResponse, error) {
	md := contextutil.ExtractMetadata(ctx)
	rid := md.RequestID
	s.logger.Debug("run payroll requested",
		zap.String("request_id", rid),
		zap.String("user_id", md.UserID),
		zap.Int("month", month),
		zap.Int("year", year),
	)

	if err := ValidatePeriod(month, year); err != nil {
		s.logger.Warn("run payroll invalid period",
			zap.String("request_id", rid),
			zap.Int("month", month),
			zap.Int("year", year),
		)
		return RunDetailResponse{}, err
	}

	release, err := s.acquireRunLock(ctx, month, year)
	if err != nil {
		return RunDetailResponse{}, err
	}
	defer release()

	employees, err := s.repo.FindEmployeesForRun(ctx)
	if err != nil {
		s.logger.Error("run payroll load employees failed", zap.String("request_id", rid), zap.Error(err))
		return RunDetailResponse{}, mapRepositoryError(err)
	}
	if len(employees) == 0 {
		s.logger.Warn("run payroll empty registry", zap.String("request_id", rid))
		return RunDetailResponse{}, payrollerrors.ErrEmptyRegistry
	}

	var (
		run   *PayrollRun
		rerun bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		run, rerun, err = s.resolveRun(ctx, qtx, month, year)
		if err != nil {
			return err
		}

		if rerun {
			deleted, err := qtx.DeleteItemsByRun(ctx, run.ID)
			if err != nil {
				return err
			}
			if err := qtx.TouchRun(ctx, run); err != nil {
				return err
			}
			s.logger.Debug("run payroll replacing items",
				zap.String("request_id", rid),
				zap.String("run_id", run.ID.String()),
				zap.Int64("deleted", deleted),
			)
		}

		items := buildItems(run.ID, employees)
		if err := qtx.CreateItems(ctx, items); err != nil {
			return err
		}

		return s.writeCompletedEvent(ctx, tx, run, items, rerun)
	})
	if err != nil {
		s.logger.Error("run payroll transaction failed",
			zap.String("request_id", rid),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err),
		)
		return RunDetailResponse{}, mapRunError(err)
	}

	s.invalidateSummary(ctx, month, year)

	items, err := s.repo.FindItemsByRun(ctx, run.ID)
	if err != nil {
		s.logger.Error("run payroll reload items failed", zap.String("request_id", rid), zap.Error(err))
		return RunDetailResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payroll run completed",
		zap.String("request_id", rid),
		zap.String("user_id", md.UserID),
		zap.String("run_id", run.ID.String()),
		zap.Int("employees", len(items)),
		zap.Bool("rerun", rerun),
	)
	return toRunDetail(*run, items), nil
}

// resolveRun returns the run of the period, creating it when absent. The
// boolean reports whether the period already had a run.
func (s *service) resolveRun(ctx context.Context, qtx Repository, month, year int) (*PayrollRun, bool, error) {
	existing, err := qtx.FindRunByPeriod(ctx, month, year)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	candidate := &PayrollRun{ID: uuid.New(), Month: month, Year: year}
	if err := qtx.CreateRunIfAbsent(ctx, candidate); err != nil {
		return nil, false, err
	}

	run, err := qtx.FindRunByPeriod(ctx, month, year)
	if err != nil {
		return nil, false, err
	}
	return run, run.ID != candidate.ID, nil
}

func buildItems(runID uuid.UUID, employees []EmployeeSnapshot) []PayrollItem {
	items := make([]PayrollItem, 0, len(employees))
	for _, emp := range employees {
		calc := Calculate(emp.calculationInput())
		items = append(items, PayrollItem{
			ID:         uuid.New(),
			RunID:      runID,
			EmployeeID: emp.ID,
			Gross:      calc.Gross,
			Deductions: calc.Deductions,
			Net:        calc.Net,
			Breakdown:  calc.Breakdown,
		})
	}
	return items
}

func (s *service) writeCompletedEvent(ctx context.Context, tx *gorm.DB, run *PayrollRun, items []PayrollItem, rerun bool) error {
	if s.outbox == nil {
		return nil
	}

	totalNet := decimal.Zero
	for _, item := range items {
		totalNet = totalNet.Add(decimal.NewFromFloat(item.Net))
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.PayrollRunCompletedEvent{
		EventType:     events.PayrollRunCompletedType,
		RequestID:     rid,
		RunID:         run.ID.String(),
		Month:         run.Month,
		Year:          run.Year,
		EmployeeCount: len(items),
		TotalNet:      totalNet.StringFixed(2),
		Rerun:         rerun,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal payroll_run_completed: %w", err)
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: events.PayrollRunAggregateType,
		AggregateID:   run.ID.String(),
		EventType:     events.PayrollRunCompletedType,
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// acquireRunLock takes the per-period redis lock. Without redis, or when
// redis is unreachable, runs rely on the unique indexes alone.
func (s *service) acquireRunLock(ctx context.Context, month, year int) (func(), error) {
	noop := func() {}
	if s.rdb == nil {
		return noop, nil
	}

	key := cachekey.RunLock(month, year)
	ok, err := s.rdb.SetNX(ctx, key, "locked", s.lockTTL).Result()
	if err != nil {
		s.logger.Warn("run lock unavailable", zap.String("key", key), zap.Error(err))
		return noop, nil
	}
	if !ok {
		s.logger.Warn("run already in progress", zap.String("key", key))
		return nil, payrollerrors.ErrRunInProgress
	}

	return func() {
		if err := s.rdb.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			s.logger.Warn("run lock release failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (s *service) invalidateSummary(ctx context.Context, month, year int) {
	if s.rdb == nil {
		return
	}
	key := cachekey.ReportSummary(month, year)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("summary cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) ListRuns(ctx context.Context) ([]RunResponse, error) {
	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		s.logger.Error("list payroll runs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		res = append(res, ToRunResponse(run))
	}
	return res, nil
}

func (s *service) GetRun(ctx context.Context, runID string) (RunDetailResponse, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return RunDetailResponse{}, err
	}

	items, err := s.repo.FindItemsByRun(ctx, run.ID)
	if err != nil {
		s.logger.Error("get payroll run items failed", zap.String("run_id", runID), zap.Error(err))
		return RunDetailResponse{}, mapRepositoryError(err)
	}
	return toRunDetail(*run, items), nil
}

func (s *service) Payslip(ctx context.Context, runID, employeeID string) (Payslip, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return Payslip{}, err
	}

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return Payslip{}, payrollerrors.ErrItemNotFound
	}

	item, err := s.repo.FindItem(ctx, run.ID, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payslip{}, payrollerrors.ErrItemNotFound
		}
		s.logger.Error("payslip load item failed", zap.String("run_id", runID), zap.Error(err))
		return Payslip{}, mapRepositoryError(err)
	}

	content, err := renderPayslipPDF(*run, ToItemResponse(*item))
	if err != nil {
		s.logger.Error("payslip render failed", zap.String("run_id", runID), zap.Error(err))
		return Payslip{}, payrollerrors.ErrPayslipRender.WithCause(err)
	}

	return Payslip{
		Filename: fmt.Sprintf("payslip_%04d_%02d_%s.pdf", run.Year, run.Month, empID.String()),
		Content:  content,
	}, nil
}

func (s *service) findRun(ctx context.Context, runID string) (*PayrollRun, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, payrollerrors.ErrRunNotFound
	}

	run, err := s.repo.FindRunByID(ctx, runID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("find payroll run failed", zap.String("run_id", runID), zap.Error(err))
		}
		return nil, mapRepositoryError(err)
	}
	return run, nil
}

// mapRunError reports unique violations during a run as a retryable conflict.
func mapRunError(err error) error {
	if isUniqueViolation(err) {
		return payrollerrors.ErrRunConflict.WithCause(err)
	}
	return mapRepositoryError(err)
}
