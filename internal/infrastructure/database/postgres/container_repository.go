package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vehicle-shipping-backend/internal/domain/container"
	"vehicle-shipping-backend/internal/infrastructure/database/postgres/models"
)

type ContainerRepository struct {
	db *DB
}

func NewContainerRepository(db *DB) *ContainerRepository {
	return &ContainerRepository{db: db}
}

func (r *ContainerRepository) Create(ctx context.Context, c *container.Container) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if c.Status == "" {
		c.Status = container.StatusActive
	}

	dbModel := &models.ContainerModel{
		ID:              c.ID,
		ContainerNumber: c.ContainerNumber,
		Status:          string(c.Status),
		ContainerType:   c.ContainerType,
		ShipmentID:      c.ShipmentID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return container.ErrDuplicateNumber
		}
		return fmt.Errorf("failed to create container: %w", err)
	}

	return nil
}

func (r *ContainerRepository) GetByID(ctx context.Context, containerID uuid.UUID) (*container.Container, error) {
	var dbModel models.ContainerModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ?", containerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, container.ErrContainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get container: %w", err)
	}

	return toContainerEntity(&dbModel), nil
}

func (r *ContainerRepository) GetByNumber(ctx context.Context, containerNumber string) (*container.Container, error) {
	var dbModel models.ContainerModel
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("container_number = ?", containerNumber).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, container.ErrContainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get container by number: %w", err)
	}

	return toContainerEntity(&dbModel), nil
}

func (r *ContainerRepository) List(ctx context.Context, filter *container.Filter) ([]*container.Container, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ContainerModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ShipmentID != nil {
		query = query.Where("shipment_id = ?", *filter.ShipmentID)
	}
	if filter.Search != "" {
		query = query.Where("container_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count containers: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filter.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	var dbModels []models.ContainerModel
	err := query.
		Preload("Items").
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list containers: %w", err)
	}

	containers := make([]*container.Container, 0, len(dbModels))
	for i := range dbModels {
		containers = append(containers, toContainerEntity(&dbModels[i]))
	}

	return containers, total, nil
}

func (r *ContainerRepository) UpdateStatus(ctx context.Context, containerID uuid.UUID, status container.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("id = ?", containerID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update container status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return container.ErrContainerNotFound
	}

	return nil
}

func (r *ContainerRepository) LinkShipment(ctx context.Context, containerID, shipmentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("id = ? AND shipment_id IS NULL", containerID).
		Updates(map[string]interface{}{
			"shipment_id": shipmentID,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to link shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either absent or already linked; disambiguate for the caller.
		var count int64
		if err := r.db.DB.WithContext(ctx).
			Model(&models.ContainerModel{}).
			Where("id = ?", containerID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check container: %w", err)
		}
		if count == 0 {
			return container.ErrContainerNotFound
		}
		return container.ErrShipmentLinkExists
	}

	return nil
}

func (r *ContainerRepository) Exists(ctx context.Context, containerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.ContainerModel{}).
		Where("id = ?", containerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check container existence: %w", err)
	}

	return count > 0, nil
}

func (r *ContainerRepository) CreateItem(ctx context.Context, item *container.Item) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	dbModel := toItemModel(item)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

func (r *ContainerRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*container.Item, error) {
	var dbModel models.ItemModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", itemID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, container.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return toItemEntity(&dbModel), nil
}

func (r *ContainerRepository) ListItems(ctx context.Context, containerID uuid.UUID) ([]*container.Item, error) {
	var dbModels []models.ItemModel
	err := r.db.DB.WithContext(ctx).
		Where("container_id = ?", containerID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*container.Item, 0, len(dbModels))
	for i := range dbModels {
		items = append(items, toItemEntity(&dbModels[i]))
	}

	return items, nil
}

func (r *ContainerRepository) UpdateItem(ctx context.Context, item *container.Item) error {
	item.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"vin":            item.VIN,
			"lot_number":     item.LotNumber,
			"auction_city":   item.AuctionCity,
			"description":    item.Description,
			"freight_cost":   item.FreightCost,
			"towing_cost":    item.TowingCost,
			"clearance_cost": item.ClearanceCost,
			"vat_cost":       item.VATCost,
			"customs_cost":   item.CustomsCost,
			"other_cost":     item.OtherCost,
			"updated_at":     item.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return container.ErrItemNotFound
	}

	return nil
}

func (r *ContainerRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.ItemModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return container.ErrItemNotFound
	}

	return nil
}

func toContainerEntity(m *models.ContainerModel) *container.Container {
	c := &container.Container{
		ID:              m.ID,
		ContainerNumber: m.ContainerNumber,
		Status:          container.Status(m.Status),
		ContainerType:   m.ContainerType,
		ShipmentID:      m.ShipmentID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, item := range m.Items {
		c.Items = append(c.Items, toItemEntity(item))
	}
	return c
}

func toItemModel(i *container.Item) *models.ItemModel {
	return &models.ItemModel{
		ID:            i.ID,
		ContainerID:   i.ContainerID,
		VIN:           i.VIN,
		LotNumber:     i.LotNumber,
		AuctionCity:   i.AuctionCity,
		Description:   i.Description,
		FreightCost:   i.FreightCost,
		TowingCost:    i.TowingCost,
		ClearanceCost: i.ClearanceCost,
		VATCost:       i.VATCost,
		CustomsCost:   i.CustomsCost,
		OtherCost:     i.OtherCost,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toItemEntity(m *models.ItemModel) *container.Item {
	return &container.Item{
		ID:            m.ID,
		ContainerID:   m.ContainerID,
		VIN:           m.VIN,
		LotNumber:     m.LotNumber,
		AuctionCity:   m.AuctionCity,
		Description:   m.Description,
		FreightCost:   m.FreightCost,
		TowingCost:    m.TowingCost,
		ClearanceCost: m.ClearanceCost,
		VATCost:       m.VATCost,
		CustomsCost:   m.CustomsCost,
		OtherCost:     m.OtherCost,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
