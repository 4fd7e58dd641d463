package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// drainTimeout bounds a single scheduled pass.
const drainTimeout = 30 * time.Second

// OutboxSchedulerConfig configures the periodic outbox drain.
type OutboxSchedulerConfig struct {
	Schedule  string // cron spec or descriptor, e.g. "@every 10s"
	BatchSize int
}

// StartOutboxScheduler runs Drain on the configured schedule. Overlapping ticks
// are skipped while a pass is still running. Stop the returned cron to shut down;
// its Stop() context is done once the running pass returns.
func StartOutboxScheduler(dispatcher portssvc.OutboxDispatcherSvc, cfg OutboxSchedulerConfig, logger *slog.Logger) (*cron.Cron, error) {
	logger = logger.With(slog.String("component", "outbox"))
	cronLogger := slogCronLogger{logger: logger}

	c := cron.New(cron.WithLogger(cronLogger), cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	_, err := c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		drainOnce(ctx, dispatcher, cfg.BatchSize, logger)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule outbox drain %q: %w", cfg.Schedule, err)
	}

	logger.Info("Outbox scheduler started", slog.String("schedule", cfg.Schedule), slog.Int("batch_size", cfg.BatchSize))
	c.Start()
	return c, nil
}

func drainOnce(ctx context.Context, dispatcher portssvc.OutboxDispatcherSvc, batchSize int, logger *slog.Logger) int {
	delivered, err := dispatcher.Drain(ctx, batchSize)
	if err != nil {
		logger.Error("Outbox drain failed", slog.String("error", err.Error()))
		return delivered
	}
	if delivered > 0 {
		logger.Debug("Outbox drained", slog.Int("delivered", delivered))
	}
	return delivered
}

// slogCronLogger lets cron report through slog.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
