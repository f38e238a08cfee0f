package worker

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"vehicle-shipping-backend/internal/logger"
)

// Orchestrator registers workers on a shared cron scheduler.
type Orchestrator struct {
	workers []Worker
}

func NewOrchestrator(workers ...Worker) *Orchestrator {
	return &Orchestrator{workers: workers}
}

// Start schedules every worker and starts the cron loop. The returned cron
// is stopped by the caller on shutdown.
func (o *Orchestrator) Start() (*cron.Cron, error) {
	c := cron.New()

	for _, w := range o.workers {
		worker := w
		// cron runs each job in its own goroutine; overlap protection
		// lives inside Execute itself.
		_, err := c.AddFunc(worker.Schedule(), worker.Execute)
		if err != nil {
			logger.Error("Failed to schedule worker",
				zap.String("schedule", worker.Schedule()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	c.Start()
	logger.Info("Background workers started", zap.Int("count", len(o.workers)))
	return c, nil
}
