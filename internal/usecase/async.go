package usecase

import (
	"context"
	"log/slog"

	"pushmic/internal/domain"
)

// AsyncRecorder runs session controller actions on a worker goroutine so the
// dispatcher can return to the OS event tap immediately. Actions are queued
// and executed strictly in order, preserving the start/stop sequence the
// dispatcher produced.
type AsyncRecorder struct {
	controller *SessionController
	log        *slog.Logger
	queue      chan func(ctx context.Context)
}

func NewAsyncRecorder(controller *SessionController, log *slog.Logger) *AsyncRecorder {
	if log == nil {
		log = slog.Default()
	}
	return &AsyncRecorder{
		controller: controller,
		log:        log,
		queue:      make(chan func(ctx context.Context), 16),
	}
}

// Run drains the action queue until ctx is cancelled. It must be running
// before the dispatcher receives input.
func (r *AsyncRecorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case action := <-r.queue:
			action(ctx)
		}
	}
}

func (r *AsyncRecorder) Start() error {
	r.enqueue(func(ctx context.Context) {
		if err := r.controller.Start(ctx); err != nil {
			r.log.Error("failed to start session", "error", err)
		}
	})
	return nil
}

func (r *AsyncRecorder) Stop() error {
	r.enqueue(func(ctx context.Context) {
		if _, err := r.controller.Stop(ctx); err != nil {
			r.log.Error("failed to stop session", "error", err)
		}
	})
	return nil
}

func (r *AsyncRecorder) Abort(reason domain.SessionStateReason) error {
	r.enqueue(func(ctx context.Context) {
		err := r.controller.Abort(reason)
		if err != nil && err != ErrNoActiveSession {
			r.log.Error("failed to abort session", "error", err)
		}
	})
	return nil
}

func (r *AsyncRecorder) enqueue(action func(ctx context.Context)) {
	select {
	case r.queue <- action:
	default:
		// A full queue means the controller is wedged; dropping is better
		// than blocking the input tap.
		r.log.Warn("recorder action queue full, dropping action")
	}
}
