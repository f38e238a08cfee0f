package shipment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainShipment "vehicle-shipping-backend/internal/domain/shipment"
	"vehicle-shipping-backend/internal/domain/shipment/lifecycle"
	domainUser "vehicle-shipping-backend/internal/domain/user"
	"vehicle-shipping-backend/internal/logger"
	appErrors "vehicle-shipping-backend/pkg/errors"
	"vehicle-shipping-backend/pkg/utils"
)

// Service implements shipment use cases
type Service struct {
	shipmentRepo domainShipment.Repository
	userRepo     domainUser.Repository
}

// NewService creates a new shipment service
func NewService(shipmentRepo domainShipment.Repository, userRepo domainUser.Repository) *Service {
	return &Service{
		shipmentRepo: shipmentRepo,
		userRepo:     userRepo,
	}
}

// Book creates a new shipment for a customer.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, req *BookShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, appErrors.ErrUserNotFound
	}
	if !owner.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	shipment := &domainShipment.Shipment{
		TrackingNumber:     generateTrackingNumber(),
		UserID:             userID,
		Status:             domainShipment.StatusPending,
		Progress:           0,
		PaymentStatus:      domainShipment.PaymentUnpaid,
		Origin:             req.Origin,
		Destination:        req.Destination,
		VehicleDescription: req.VehicleDescription,
		EstimatedDelivery:  req.EstimatedDelivery,
		Notes:              req.Notes,
	}

	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}

	logger.Info("Shipment booked",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("tracking_number", shipment.TrackingNumber),
		zap.String("user_id", userID.String()),
		zap.String("event", "shipment_booked"),
	)

	return toShipmentResponse(shipment), nil
}

// Get returns a shipment. Non-admin callers only see their own shipments.
func (s *Service) Get(ctx context.Context, shipmentID, callerID uuid.UUID, isAdmin bool) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && shipment.UserID != callerID {
		return nil, domainShipment.ErrNotOwner
	}

	return toShipmentResponse(shipment), nil
}

// List returns shipments matching the filter. Non-admin callers are pinned
// to their own shipments regardless of the requested filter.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, isAdmin bool, req *ShipmentFilterRequest) (*ShipmentListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	filter := &domainShipment.Filter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		ActiveOnly:    req.ActiveOnly,
		CreatedAfter:  req.CreatedAfter,
		CreatedBefore: req.CreatedBefore,
		Search:        req.Search,
		Page:          req.Page,
		PageSize:      req.PageSize,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}
	if !isAdmin {
		filter.UserID = &callerID
	}

	shipments, total, err := s.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ShipmentResponse, 0, len(shipments))
	for _, sh := range shipments {
		responses = append(responses, toShipmentResponse(sh))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return &ShipmentListResponse{
		Shipments: responses,
		Total:     total,
		Page:      page,
	}, nil
}

// UpdateStatus moves a shipment through its lifecycle. The transition table
// is authoritative; illegal moves and progress regressions are rejected
// before anything is written.
func (s *Service) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, req *UpdateStatusRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	shipment, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ValidateTransition(shipment.Status, req.Status); err != nil {
		return nil, err
	}

	progress, err := lifecycle.ResolveProgress(req.Status, shipment.Progress, req.Progress)
	if err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.UpdateStatus(ctx, shipmentID, req.Status, progress); err != nil {
		return nil, err
	}

	logger.Info("Shipment status updated",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("from", string(shipment.Status)),
		zap.String("to", string(req.Status)),
		zap.Int("progress", progress),
		zap.String("event", "shipment_status_updated"),
	)

	updated, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	return toShipmentResponse(updated), nil
}

// ApplyCarrierStatus is the tracking-refresh entry point: the carrier feed
// is advisory input, so a reported regression is skipped rather than
// surfaced. A report further ahead on the main line is folded in by walking
// every stage in between, keeping each written transition legal.
func (s *Service) ApplyCarrierStatus(ctx context.Context, shipmentID uuid.UUID, status domainShipment.Status) error {
	shipment, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return err
	}

	if shipment.Status == status {
		return nil
	}

	steps, ok := lifecycle.ForwardPath(shipment.Status, status)
	if !ok {
		logger.Warn("Skipping carrier-reported status regression",
			zap.String("shipment_id", shipmentID.String()),
			zap.String("current", string(shipment.Status)),
			zap.String("reported", string(status)),
		)
		return nil
	}

	progress := shipment.Progress
	for _, next := range steps {
		resolved, err := lifecycle.ResolveProgress(next, progress, nil)
		if err != nil {
			return nil
		}
		if err := s.shipmentRepo.UpdateStatus(ctx, shipmentID, next, resolved); err != nil {
			return err
		}
		progress = resolved
	}

	logger.Info("Carrier-reported status applied",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("from", string(shipment.Status)),
		zap.String("to", string(status)),
		zap.Int("stages", len(steps)),
	)

	return nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, shipmentID uuid.UUID, req *UpdatePaymentStatusRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	shipment, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	shipment.PaymentStatus = req.PaymentStatus
	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	return toShipmentResponse(shipment), nil
}

// ListActiveShipments returns every shipment still in motion. Used by the
// periodic tracking refresh.
func (s *Service) ListActiveShipments(ctx context.Context) ([]*domainShipment.Shipment, error) {
	return s.shipmentRepo.ListActive(ctx)
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.shipmentRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalShipments:  stats.TotalShipments,
		ByStatus:        stats.ByStatus,
		ActiveShipments: stats.ActiveShipments,
		DeliveredToday:  stats.DeliveredToday,
		OnTimeRate:      stats.OnTimeRate,
		RevenueUSD:      stats.RevenueUSD,
		RevenueAED:      stats.RevenueAED,
	}, nil
}

// generateTrackingNumber produces an external-facing number like
// VSL-9F2C41AB.
func generateTrackingNumber() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to a
		// uuid fragment rather than panicking mid-booking.
		return "VSL-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	}
	return fmt.Sprintf("VSL-%s", strings.ToUpper(hex.EncodeToString(buf)))
}

func toShipmentResponse(sh *domainShipment.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:                  sh.ID,
		TrackingNumber:      sh.TrackingNumber,
		UserID:              sh.UserID,
		Status:              sh.Status,
		Progress:            sh.Progress,
		PaymentStatus:       sh.PaymentStatus,
		Origin:              sh.Origin,
		Destination:         sh.Destination,
		VehicleDescription:  sh.VehicleDescription,
		EstimatedDelivery:   sh.EstimatedDelivery,
		ActualDelivery:      sh.ActualDelivery,
		Notes:               sh.Notes,
		AllowedNextStatuses: lifecycle.AllowedTransitions(sh.Status),
		CreatedAt:           sh.CreatedAt,
		UpdatedAt:           sh.UpdatedAt,
	}
}
