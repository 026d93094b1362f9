package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ayo6706/payment-instructions/internal/observability"
	"go.uber.org/zap"
)

const sweeperName = "idempotency_sweeper"

// ExpiredKeyPurger deletes idempotency keys whose retention window has passed.
type ExpiredKeyPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// IdempotencySweeper periodically purges expired idempotency keys.
type IdempotencySweeper struct {
	purger   ExpiredKeyPurger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewIdempotencySweeper constructs a sweeper with a default hourly interval.
func NewIdempotencySweeper(purger ExpiredKeyPurger) *IdempotencySweeper {
	return &IdempotencySweeper{
		purger:   purger,
		interval: time.Hour,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithInterval updates the run interval.
func (w *IdempotencySweeper) WithInterval(interval time.Duration) *IdempotencySweeper {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// Start blocks and sweeps at the configured interval.
func (w *IdempotencySweeper) Start(ctx context.Context) {
	defer close(w.done)
	zap.L().Info("idempotency sweeper starting", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once immediately at startup.
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("idempotency sweeper context canceled")
			return
		case <-w.stopCh:
			zap.L().Info("idempotency sweeper stop signal received")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// Stop stops the running loop and waits for it to exit.
func (w *IdempotencySweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.done
}

// Run starts the sweeper in a goroutine and returns a stop function.
func (w *IdempotencySweeper) Run(ctx context.Context) func() {
	go w.Start(ctx)
	return w.Stop
}

// RunOnce performs a single sweep.
func (w *IdempotencySweeper) RunOnce(ctx context.Context) {
	deleted, err := w.purger.PurgeExpired(ctx)
	if err != nil {
		observability.IncrementWorkerRun(sweeperName, "failed")
		zap.L().Error("idempotency sweep failed", zap.Error(err))
		return
	}
	observability.IncrementWorkerRun(sweeperName, "success")
	if deleted > 0 {
		zap.L().Info("expired idempotency keys purged", zap.Int64("deleted", deleted))
	}
}
