// Package trigger runs automatic generation on a schedule.
package trigger

import (
	"context"
	"fmt"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultTickTimeout bounds a tick when no timeout is given. Keep it no longer
// than the generation lock ttl.
const DefaultTickTimeout = 5 * time.Minute

// CronTrigger calls the generation use case in automatic mode on a standard
// five-field cron spec. Overlapping ticks are skipped rather than queued.
type CronTrigger struct {
	cron    *cron.Cron
	runner  app.GenerateOrdersUseCase
	logger  *zap.Logger
	timeout time.Duration
	entry   cron.EntryID
}

// NewCronTrigger schedules automatic runs. timeout bounds each tick; a
// non-positive value means DefaultTickTimeout.
func NewCronTrigger(spec string, runner app.GenerateOrdersUseCase, timeout time.Duration, logger *zap.Logger) (*CronTrigger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTickTimeout
	}
	t := &CronTrigger{
		runner:  runner,
		logger:  logger.Named("cron"),
		timeout: timeout,
	}
	t.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger{t.logger}),
		cron.SkipIfStillRunning(cronLogger{t.logger}),
	))

	id, err := t.cron.AddFunc(spec, t.Tick)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	t.entry = id
	return t, nil
}

func (t *CronTrigger) Start() {
	t.cron.Start()
	t.logger.Info("generation schedule started", zap.Time("next", t.Next()))
}

// Stop halts the schedule and waits for a running tick up to ctx's deadline.
func (t *CronTrigger) Stop(ctx context.Context) {
	done := t.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		t.logger.Warn("generation tick still running at shutdown")
	}
}

// Next is the instant of the next scheduled tick.
func (t *CronTrigger) Next() time.Time {
	return t.cron.Entry(t.entry).Next
}

// Tick runs one automatic generation.
func (t *CronTrigger) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	res, err := t.runner.Run(ctx, app.NewRunRequest(domain.ModeAutomatic, app.TriggerCron))
	if err != nil {
		t.logger.Error("scheduled generation failed", zap.Error(err))
		return
	}
	if !res.Success {
		t.logger.Warn("scheduled generation not applied",
			zap.String("run_id", res.RunID),
			zap.String("error", res.Error))
		return
	}
	t.logger.Info("scheduled generation done",
		zap.String("run_id", res.RunID),
		zap.Int("orders_created", res.OrdersCreated),
		zap.Int("plan_errors", len(res.Errors)))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Sugar().Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
