package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. Failed
// appends are logged and skipped rather than crashing the drain loop: losing
// one ops event beats stalling every consent operation behind a sink outage.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"error", err.Error(),
				)
			}
		}
	}
}
