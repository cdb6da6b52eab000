// Package worker runs the periodic background sweeps: quiz session cleanup,
// consent retention purges and renewal reminders.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// SessionSweeper removes expired quiz sessions.
type SessionSweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// RecordSweeper purges consent records past the retention window.
type RecordSweeper interface {
	CleanupExpiredRecords(ctx context.Context) (int, error)
}

// ReminderEmitter emits renewal reminders for consents nearing expiry.
type ReminderEmitter interface {
	SendRenewalReminders(ctx context.Context, lead time.Duration) (int, error)
}

// Config holds the sweep intervals. Zero values disable the sweep.
type Config struct {
	SessionInterval   time.Duration
	RetentionInterval time.Duration
	RenewalInterval   time.Duration
	RenewalLead       time.Duration
}

// Worker drives the periodic maintenance loops.
type Worker struct {
	sessions  SessionSweeper
	records   RecordSweeper
	reminders ReminderEmitter
	cfg       Config
	logger    *slog.Logger
}

func New(sessions SessionSweeper, records RecordSweeper, reminders ReminderEmitter, cfg Config, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		sessions:  sessions,
		records:   records,
		reminders: reminders,
		cfg:       cfg,
		logger:    logger,
	}
}

// RunSessionSweep deletes expired quiz sessions until ctx is cancelled.
func (w *Worker) RunSessionSweep(ctx context.Context) error {
	if w.sessions == nil || w.cfg.SessionInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	return w.loop(ctx, w.cfg.SessionInterval, func(ctx context.Context) {
		removed, err := w.sessions.CleanupExpired(ctx)
		if err != nil {
			w.logger.Error("session sweep failed", "error", err)
			return
		}
		if removed > 0 {
			w.logger.Info("expired quiz sessions removed", "count", removed)
		}
	})
}

// RunRetentionSweep purges records past the retention window until ctx is cancelled.
func (w *Worker) RunRetentionSweep(ctx context.Context) error {
	if w.records == nil || w.cfg.RetentionInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	return w.loop(ctx, w.cfg.RetentionInterval, func(ctx context.Context) {
		purged, err := w.records.CleanupExpiredRecords(ctx)
		if err != nil {
			w.logger.Error("retention sweep failed", "error", err)
			return
		}
		if purged > 0 {
			w.logger.Info("consent records purged", "count", purged)
		}
	})
}

// RunRenewalSweep emits renewal reminders until ctx is cancelled.
func (w *Worker) RunRenewalSweep(ctx context.Context) error {
	if w.reminders == nil || w.cfg.RenewalInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	return w.loop(ctx, w.cfg.RenewalInterval, func(ctx context.Context) {
		emitted, err := w.reminders.SendRenewalReminders(ctx, w.cfg.RenewalLead)
		if err != nil {
			w.logger.Error("renewal sweep failed", "error", err)
			return
		}
		if emitted > 0 {
			w.logger.Info("renewal reminders emitted", "count", emitted)
		}
	})
}

// loop errors from individual sweeps are logged and the loop keeps running;
// a transient store failure must not kill the background worker.
func (w *Worker) loop(ctx context.Context, interval time.Duration, sweep func(context.Context)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweep(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
