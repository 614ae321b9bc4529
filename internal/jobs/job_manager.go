package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// JobManager coordinates all background jobs in the application.
// Provides a unified interface to start and stop them.
type JobManager struct {
	archiveJob *ArchiveConfirmedOrdersJob
	demo       *DemoScenario
	logger     *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobManager creates a job manager. demo may be nil to skip the demo scenario.
func NewJobManager(
	archiveJob *ArchiveConfirmedOrdersJob,
	demo *DemoScenario,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		archiveJob: archiveJob,
		demo:       demo,
		logger:     logger.With("component", "job_manager"),
	}
}

// StartAll starts the archive schedule and, when configured, the demo scenario.
// The demo runs in the background until it finishes or StopAll is called.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.archiveJob.Start(); err != nil {
		return fmt.Errorf("failed to start archive job: %w", err)
	}

	if jm.demo == nil {
		return nil
	}

	demoCtx, cancel := context.WithCancel(ctx)
	jm.cancel = cancel

	jm.wg.Add(1)
	go func() {
		defer jm.wg.Done()

		err := jm.demo.Run(demoCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			jm.logger.ErrorContext(demoCtx, "Demo scenario failed", "error", err)
		}
	}()

	return nil
}

// StopAll stops all jobs and waits for them to return.
func (jm *JobManager) StopAll() {
	if jm.cancel != nil {
		jm.cancel()
	}
	jm.wg.Wait()
	jm.archiveJob.Stop()
}
