package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Messages queued for the next status read after an asynchronous trigger.
const (
	busyMessage    = "A data pull is already in progress."
	startedMessage = "Data pull started. New results will appear when it completes."
)

// TriggerOutcome is the result of a synchronous trigger.
type TriggerOutcome struct {
	Busy    bool
	Records int
	Err     error
}

// Coordinator is the single-flight gate around the pipeline. At most one
// run executes at a time; concurrent triggers are rejected, never queued.
// Pending message and error slots are one-shot: a status read returns each
// at most once.
type Coordinator struct {
	pipeline PipelineRunner

	mu             sync.Mutex
	running        bool
	pendingMessage string
	pendingError   string
}

func NewCoordinator(pipeline PipelineRunner) *Coordinator {
	return &Coordinator{pipeline: pipeline}
}

// tryAcquire flips the running flag if the coordinator is idle.
func (c *Coordinator) tryAcquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return false
	}
	c.running = true
	return true
}

func (c *Coordinator) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// TriggerSync runs the pipeline inline and reports the outcome directly.
// A concurrent run yields a busy outcome without touching the pipeline.
func (c *Coordinator) TriggerSync(ctx context.Context) TriggerOutcome {
	if !c.tryAcquire() {
		return TriggerOutcome{Busy: true}
	}
	defer c.release()

	// a started run proceeds to completion even if the triggering request
	// is cancelled; a severed caller context would otherwise drain every
	// in-flight fetch and report an empty run as success
	records, err := c.pipeline.Run(context.WithoutCancel(ctx))
	return TriggerOutcome{Records: records, Err: err}
}

// TriggerAsync starts the pipeline in the background and reports whether a
// run was started. The outcome is deferred to the pending message or error
// slot for the next status read. A run in flight queues a busy notice
// instead.
func (c *Coordinator) TriggerAsync(ctx context.Context) bool {
	if !c.tryAcquire() {
		c.NotifyBusy()
		return false
	}

	c.mu.Lock()
	c.pendingMessage = startedMessage
	c.mu.Unlock()

	// A started run is never cancelled mid-flight; it proceeds to
	// completion even if the triggering request goes away.
	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer c.release()

		records, err := c.pipeline.Run(runCtx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			slog.Error("Background ingestion run failed", "error", err)
			c.pendingError = err.Error()
			return
		}
		c.pendingMessage = fmt.Sprintf("Data pull complete. %d new records loaded.", records)
	}()

	return true
}

// NotifyBusy queues the busy notice for the next status read.
func (c *Coordinator) NotifyBusy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingMessage = busyMessage
}

// Running reports whether a run is currently in flight.
func (c *Coordinator) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Status returns and clears the pending message and error slots.
func (c *Coordinator) Status() (message, errMessage string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	message, errMessage = c.pendingMessage, c.pendingError
	c.pendingMessage, c.pendingError = "", ""
	return message, errMessage
}
