package container

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainContainer "vehicle-shipping-backend/internal/domain/container"
	domainShipment "vehicle-shipping-backend/internal/domain/shipment"
	"vehicle-shipping-backend/internal/logger"
	appErrors "vehicle-shipping-backend/pkg/errors"
	"vehicle-shipping-backend/pkg/utils"
)

// Service implements container and item use cases
type Service struct {
	containerRepo domainContainer.Repository
	shipmentRepo  domainShipment.Repository
}

// NewService creates a new container service
func NewService(containerRepo domainContainer.Repository, shipmentRepo domainShipment.Repository) *Service {
	return &Service{
		containerRepo: containerRepo,
		shipmentRepo:  shipmentRepo,
	}
}

// Create registers a new container.
func (s *Service) Create(ctx context.Context, req *CreateContainerRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.ShipmentID != nil {
		if _, err := s.shipmentRepo.GetByID(ctx, *req.ShipmentID); err != nil {
			return nil, domainShipment.ErrShipmentNotFound
		}
	}

	container := &domainContainer.Container{
		ContainerNumber: utils.SanitizeString(req.ContainerNumber),
		Status:          domainContainer.StatusActive,
		ContainerType:   req.ContainerType,
		ShipmentID:      req.ShipmentID,
	}

	if err := s.containerRepo.Create(ctx, container); err != nil {
		return nil, err
	}

	logger.Info("Container created",
		zap.String("container_id", container.ID.String()),
		zap.String("container_number", container.ContainerNumber),
		zap.String("event", "container_created"),
	)

	return ToContainerResponse(container), nil
}

// Get returns a container with its items loaded.
func (s *Service) Get(ctx context.Context, containerID uuid.UUID) (*ContainerResponse, error) {
	container, err := s.containerRepo.GetByID(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return ToContainerResponse(container), nil
}

// GetByNumber looks a container up by its printed number.
func (s *Service) GetByNumber(ctx context.Context, containerNumber string) (*ContainerResponse, error) {
	container, err := s.containerRepo.GetByNumber(ctx, utils.SanitizeString(containerNumber))
	if err != nil {
		return nil, err
	}
	return ToContainerResponse(container), nil
}

// List returns containers matching the filter, paginated.
func (s *Service) List(ctx context.Context, req *ContainerFilterRequest) (*ContainerListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid filter", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := &domainContainer.Filter{
		Status:    req.Status,
		Search:    utils.SanitizeString(req.Search),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	containers, total, err := s.containerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &ContainerListResponse{
		Containers: make([]*ContainerResponse, 0, len(containers)),
		Total:      total,
		Page:       req.Page,
	}
	for _, c := range containers {
		resp.Containers = append(resp.Containers, ToContainerResponse(c))
	}
	return resp, nil
}

// UpdateStatus moves a container to a new status.
func (s *Service) UpdateStatus(ctx context.Context, containerID uuid.UUID, req *UpdateContainerStatusRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.containerRepo.UpdateStatus(ctx, containerID, req.Status); err != nil {
		return nil, err
	}

	logger.Info("Container status updated",
		zap.String("container_id", containerID.String()),
		zap.String("status", string(req.Status)),
		zap.String("event", "container_status_updated"),
	)

	return s.Get(ctx, containerID)
}

// LinkShipment attaches a container to a shipment. A container can only be
// linked once.
func (s *Service) LinkShipment(ctx context.Context, containerID uuid.UUID, req *LinkShipmentRequest) (*ContainerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.shipmentRepo.GetByID(ctx, req.ShipmentID); err != nil {
		return nil, domainShipment.ErrShipmentNotFound
	}

	if err := s.containerRepo.LinkShipment(ctx, containerID, req.ShipmentID); err != nil {
		return nil, err
	}

	logger.Info("Container linked to shipment",
		zap.String("container_id", containerID.String()),
		zap.String("shipment_id", req.ShipmentID.String()),
		zap.String("event", "container_linked"),
	)

	return s.Get(ctx, containerID)
}

// CreateItem adds a vehicle entry to a container. The container is verified
// first so a missing container returns not-found without writing anything.
func (s *Service) CreateItem(ctx context.Context, containerID uuid.UUID, req *CreateItemRequest) (*ItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	exists, err := s.containerRepo.Exists(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainContainer.ErrContainerNotFound
	}

	item := &domainContainer.Item{
		ContainerID:   containerID,
		VIN:           utils.SanitizeVIN(req.VIN),
		LotNumber:     utils.SanitizeString(req.LotNumber),
		AuctionCity:   utils.SanitizeString(req.AuctionCity),
		Description:   req.Description,
		FreightCost:   req.FreightCost,
		TowingCost:    req.TowingCost,
		ClearanceCost: req.ClearanceCost,
		VATCost:       req.VATCost,
		CustomsCost:   req.CustomsCost,
		OtherCost:     req.OtherCost,
	}

	if err := s.containerRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Item added to container",
		zap.String("item_id", item.ID.String()),
		zap.String("container_id", containerID.String()),
		zap.String("vin", item.VIN),
		zap.String("event", "item_created"),
	)

	return ToItemResponse(item), nil
}

// GetItem returns a single item.
func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.containerRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// ListItems returns all items in a container.
func (s *Service) ListItems(ctx context.Context, containerID uuid.UUID) ([]*ItemResponse, error) {
	exists, err := s.containerRepo.Exists(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainContainer.ErrContainerNotFound
	}

	items, err := s.containerRepo.ListItems(ctx, containerID)
	if err != nil {
		return nil, err
	}

	resp := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, ToItemResponse(item))
	}
	return resp, nil
}

// UpdateItem applies partial updates to an item's identity and cost fields.
func (s *Service) UpdateItem(ctx context.Context, itemID uuid.UUID, req *UpdateItemRequest) (*ItemResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	item, err := s.containerRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.VIN != nil {
		item.VIN = utils.SanitizeVIN(*req.VIN)
	}
	if req.LotNumber != nil {
		item.LotNumber = utils.SanitizeString(*req.LotNumber)
	}
	if req.AuctionCity != nil {
		item.AuctionCity = utils.SanitizeString(*req.AuctionCity)
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.FreightCost != nil {
		item.FreightCost = *req.FreightCost
	}
	if req.TowingCost != nil {
		item.TowingCost = *req.TowingCost
	}
	if req.ClearanceCost != nil {
		item.ClearanceCost = *req.ClearanceCost
	}
	if req.VATCost != nil {
		item.VATCost = *req.VATCost
	}
	if req.CustomsCost != nil {
		item.CustomsCost = *req.CustomsCost
	}
	if req.OtherCost != nil {
		item.OtherCost = *req.OtherCost
	}

	if err := s.containerRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return ToItemResponse(item), nil
}

// DeleteItem removes an item from its container.
func (s *Service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.containerRepo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	logger.Info("Item deleted",
		zap.String("item_id", itemID.String()),
		zap.String("event", "item_deleted"),
	)
	return nil
}
