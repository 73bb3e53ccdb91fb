package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryEffectsSweepJob *DeliveryEffectsSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(machine *commands.StatusMachine, logger *slog.Logger) *JobManager {
	return &JobManager{
		deliveryEffectsSweepJob: NewDeliveryEffectsSweepJob(machine, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryEffectsSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery effects sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryEffectsSweepJob.Stop()
}
