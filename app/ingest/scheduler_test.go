package ingest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingPipeline struct {
	runs atomic.Int32
}

func (p *countingPipeline) Run(ctx context.Context) (int, error) {
	p.runs.Add(1)
	return 0, nil
}

func TestSchedulerTriggersRuns(t *testing.T) {
	pipeline := &countingPipeline{}
	coordinator := NewCoordinator(pipeline)
	scheduler := NewScheduler(coordinator, 10*time.Millisecond)

	scheduler.Start()
	defer scheduler.Stop()

	deadline := time.After(2 * time.Second)
	for pipeline.runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Timed out waiting for a scheduled run")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerDisabledInterval(t *testing.T) {
	pipeline := &countingPipeline{}
	coordinator := NewCoordinator(pipeline)
	scheduler := NewScheduler(coordinator, 0)

	scheduler.Start()
	scheduler.Stop()

	time.Sleep(30 * time.Millisecond)
	if runs := pipeline.runs.Load(); runs != 0 {
		t.Errorf("Expected no runs with scheduling disabled, got: %d", runs)
	}
}
