package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vehicle-shipping-backend/internal/logger"
	"vehicle-shipping-backend/internal/usecase/invoice"
)

// InvoiceSweepWorker periodically flags sent invoices whose due date has
// passed. The underlying update is idempotent, so overlapping or repeated
// runs are harmless.
type InvoiceSweepWorker struct {
	service  *invoice.Service
	schedule string
	guard    runGuard
}

func NewInvoiceSweepWorker(service *invoice.Service, schedule string) *InvoiceSweepWorker {
	return &InvoiceSweepWorker{service: service, schedule: schedule}
}

func (w *InvoiceSweepWorker) Schedule() string {
	return w.schedule
}

func (w *InvoiceSweepWorker) Execute() {
	if !w.guard.tryAcquire() {
		logger.Warn("Invoice overdue sweep still running, skipping tick")
		return
	}
	defer w.guard.release()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	flagged, err := w.service.SweepOverdue(ctx)
	if err != nil {
		logger.Error("Invoice overdue sweep failed", zap.Error(err))
		return
	}

	logger.Info("Invoice overdue sweep completed", zap.Int64("flagged", flagged))
}
