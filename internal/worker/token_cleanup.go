package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vehicle-shipping-backend/internal/logger"
	"vehicle-shipping-backend/internal/usecase/user"
)

// TokenCleanupWorker purges expired refresh tokens and stale password-reset
// tokens so those tables do not grow without bound.
type TokenCleanupWorker struct {
	service  *user.Service
	schedule string
	guard    runGuard
}

func NewTokenCleanupWorker(service *user.Service, schedule string) *TokenCleanupWorker {
	return &TokenCleanupWorker{service: service, schedule: schedule}
}

func (w *TokenCleanupWorker) Schedule() string {
	return w.schedule
}

func (w *TokenCleanupWorker) Execute() {
	if !w.guard.tryAcquire() {
		logger.Warn("Expired token cleanup still running, skipping tick")
		return
	}
	defer w.guard.release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := w.service.CleanupExpiredTokens(ctx); err != nil {
		logger.Error("Expired token cleanup failed", zap.Error(err))
		return
	}

	logger.Info("Expired token cleanup completed")
}
