package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryEffectsSweepJob retries the one-time delivery side effects for
// terminal orders whose claim is still open. Runs every minute; a crash
// between a status commit and its effects transaction leaves such orders
// behind, and this job picks them up.
type DeliveryEffectsSweepJob struct {
	machine *commands.StatusMachine
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryEffectsSweepJob creates a new sweep job over the status machine.
func NewDeliveryEffectsSweepJob(machine *commands.StatusMachine, logger *slog.Logger) *DeliveryEffectsSweepJob {
	return &DeliveryEffectsSweepJob{
		machine: machine,
		cron:    cron.New(),
		logger:  logger.With("component", "delivery_effects_sweep_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *DeliveryEffectsSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		processed, sweepErr := j.machine.SweepDeliveryEffects(ctx)
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Delivery effects sweep failed", "error", sweepErr)
			return
		}

		if processed > 0 {
			j.logger.InfoContext(ctx, "Delivery effects sweep processed orders", "count", processed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery effects sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *DeliveryEffectsSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery effects sweep job stopped")
}
