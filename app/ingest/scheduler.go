package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler triggers periodic background ingestion runs through the
// coordinator. A tick that lands while a run is in flight is rejected by
// the coordinator's single-flight gate and amounts to a no-op.
type Scheduler struct {
	coordinator *Coordinator
	interval    time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewScheduler(coordinator *Coordinator, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		coordinator: coordinator,
		interval:    interval,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the ticker loop. An interval of zero disables scheduling.
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		slog.Debug("Scheduler disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if !s.coordinator.TriggerAsync(s.ctx) {
					slog.Debug("Scheduled run skipped, ingestion already in progress")
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
