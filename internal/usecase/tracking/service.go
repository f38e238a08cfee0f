package tracking

import (
	"context"

	"go.uber.org/zap"

	domainTracking "vehicle-shipping-backend/internal/domain/tracking"
	"vehicle-shipping-backend/internal/logger"
	appErrors "vehicle-shipping-backend/pkg/errors"
	"vehicle-shipping-backend/pkg/utils"
)

// Service exposes carrier tracking lookups. It validates the number before
// touching the carrier so malformed input never leaves the process.
type Service struct {
	source domainTracking.Source
}

// NewService creates a new tracking service
func NewService(source domainTracking.Source) *Service {
	return &Service{source: source}
}

// Track fetches normalized tracking details for a tracking number.
func (s *Service) Track(ctx context.Context, trackingNumber string, withRoute bool) (*domainTracking.Details, error) {
	number := utils.SanitizeTrackingNumber(trackingNumber)
	if !utils.IsValidTrackingNumber(number) {
		return nil, appErrors.NewAppError("INVALID_TRACKING_NUMBER", "Tracking number format is invalid", nil)
	}

	details, err := s.source.Fetch(ctx, number, withRoute)
	if err != nil {
		logger.Warn("Carrier lookup failed",
			zap.String("tracking_number", number),
			zap.Error(err),
		)
		return nil, err
	}

	return details, nil
}
