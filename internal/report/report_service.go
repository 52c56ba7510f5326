package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/payroll"
	reporterrors "go-payroll/internal/report/errors"
	"go-payroll/internal/shared/cachekey"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DefaultSummaryCacheTTL = 10 * time.Minute

// PayrollReader is the read side of the payroll store.
type PayrollReader interface {
	FindRunByPeriod(ctx context.Context, month, year int) (*payroll.PayrollRun, error)
	FindRunByID(ctx context.Context, id string) (*payroll.PayrollRun, error)
	FindItemsByRun(ctx context.Context, runID uuid.UUID) ([]payroll.PayrollItem, error)
}

type Service interface {
	Summary(ctx context.Context, month, year int) (SummaryResponse, error)
	ExportCSV(ctx context.Context, runID string) (Export, error)
}

type service struct {
	reader   PayrollReader
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(reader PayrollReader, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultSummaryCacheTTL
	}
	return &service{
		reader:   reader,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

// cachedSummary tags a summary with the updated_at of the run it was built
// from. Entries with another version are treated as misses.
type cachedSummary struct {
	Version int64           `json:"version"`
	Summary SummaryResponse `json:"summary"`
}

func runVersion(run *payroll.PayrollRun) int64 {
	return run.UpdatedAt.UnixNano()
}

func (s *service) Summary(ctx context.Context, month, year int) (SummaryResponse, error) {
	if err := payroll.ValidatePeriod(month, year); err != nil {
		return SummaryResponse{}, err
	}

	run, err := s.reader.FindRunByPeriod(ctx, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, reporterrors.ErrRunNotFound
		}
		s.logger.Error("summary load run failed", zap.Error(err))
		return SummaryResponse{}, reporterrors.ErrReportFailed.WithCause(err)
	}
	version := runVersion(run)

	cacheKey := cachekey.ReportSummary(month, year)
	if resp, ok := s.readCache(ctx, cacheKey, version); ok {
		return resp, nil
	}

	v, err, _ := s.sf.Do(fmt.Sprintf("%s:%d", cacheKey, version), func() (interface{}, error) {
		resp, err := s.buildSummary(ctx, run)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			payload, err := json.Marshal(cachedSummary{Version: version, Summary: resp})
			if err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(payload), s.cacheTTL).Err(); err != nil {
					s.logger.Warn("summary cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) readCache(ctx context.Context, key string, version int64) (SummaryResponse, bool) {
	if s.rdb == nil {
		return SummaryResponse{}, false
	}

	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		}
		return SummaryResponse{}, false
	}

	var cached cachedSummary
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return SummaryResponse{}, false
	}
	if cached.Version != version {
		s.logger.Debug("summary cache stale", zap.String("key", key))
		return SummaryResponse{}, false
	}

	s.logger.Debug("summary cache hit", zap.String("key", key))
	return cached.Summary, true
}

func (s *service) buildSummary(ctx context.Context, run *payroll.PayrollRun) (SummaryResponse, error) {
	items, err := s.reader.FindItemsByRun(ctx, run.ID)
	if err != nil {
		s.logger.Error("summary load items failed", zap.String("run_id", run.ID.String()), zap.Error(err))
		return SummaryResponse{}, reporterrors.ErrReportFailed.WithCause(err)
	}

	totals, byDepartment := aggregate(items)
	return SummaryResponse{
		Run:          payroll.ToRunResponse(*run),
		Totals:       totals,
		ByDepartment: byDepartment,
	}, nil
}

func (s *service) ExportCSV(ctx context.Context, runID string) (Export, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return Export{}, reporterrors.ErrExportNotFound
	}

	run, err := s.reader.FindRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Export{}, reporterrors.ErrExportNotFound
		}
		s.logger.Error("export load run failed", zap.String("run_id", runID), zap.Error(err))
		return Export{}, reporterrors.ErrReportFailed.WithCause(err)
	}

	items, err := s.reader.FindItemsByRun(ctx, run.ID)
	if err != nil {
		s.logger.Error("export load items failed", zap.String("run_id", runID), zap.Error(err))
		return Export{}, reporterrors.ErrReportFailed.WithCause(err)
	}

	content, err := buildCSV(*run, items)
	if err != nil {
		s.logger.Error("export marshal csv failed", zap.String("run_id", runID), zap.Error(err))
		return Export{}, reporterrors.ErrReportFailed.WithCause(err)
	}

	s.logger.Info("payroll csv exported",
		zap.String("run_id", runID),
		zap.Int("rows", len(items)),
	)
	return Export{Filename: exportFilename(*run), Content: content}, nil
}
