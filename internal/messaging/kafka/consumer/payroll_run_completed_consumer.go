package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-payroll/internal/events"
	"go-payroll/internal/report"
	"go-payroll/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// SummaryWarmer rebuilds and caches the report summary of a period.
type SummaryWarmer interface {
	Summary(ctx context.Context, month, year int) (report.SummaryResponse, error)
}

// ConsumePayrollRunCompleted warms the summary cache after each run. Events
// that can never succeed are committed and skipped; transient failures are
// left uncommitted.
func ConsumePayrollRunCompleted(
	ctx context.Context,
	reader MessageReader,
	summaries SummaryWarmer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_run_completed")
	log.Info("payroll run completed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run completed consumer stopped")
				return
			}
			log.Error("fetch payroll run completed message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_run_completed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		eventLog := log.With(
			zap.String("run_id", event.RunID),
			zap.String("request_id", event.RequestID),
			zap.Int("month", event.Month),
			zap.Int("year", event.Year),
		)

		if _, err := summaries.Summary(ctx, event.Month, event.Year); err != nil {
			if isPermanent(err) {
				eventLog.Warn("summary cannot be built for event, skipping", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			eventLog.Error("warm report summary failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			eventLog.Error("commit payroll run completed message failed", zap.Error(err))
			continue
		}

		eventLog.Info("report summary warmed",
			zap.Int("employee_count", event.EmployeeCount),
			zap.Bool("rerun", event.Rerun),
		)
	}
}

func isPermanent(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError
}
