package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vehicle-shipping-backend/internal/domain/shipment"
	"vehicle-shipping-backend/internal/domain/shipment/lifecycle"
	"vehicle-shipping-backend/internal/infrastructure/database/postgres/models"
)

type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	if s.Status == "" {
		s.Status = shipment.StatusPending
	}
	if s.PaymentStatus == "" {
		s.PaymentStatus = shipment.PaymentUnpaid
	}

	dbModel := toShipmentModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return shipment.ErrDuplicateTracking
		}
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	s.ID = dbModel.ID
	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment by tracking number: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	s.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"status":              string(s.Status),
			"progress":            s.Progress,
			"payment_status":      string(s.PaymentStatus),
			"origin":              s.Origin,
			"destination":         s.Destination,
			"vehicle_description": s.VehicleDescription,
			"estimated_delivery":  s.EstimatedDelivery,
			"actual_delivery":     s.ActualDelivery,
			"notes":               s.Notes,
			"updated_at":          s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

// UpdateStatus writes status and progress in one statement. Callers validate
// the transition through the lifecycle table first.
func (r *ShipmentRepository) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, status shipment.Status, progress int) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"progress":   progress,
		"updated_at": time.Now(),
	}
	if status == shipment.StatusDelivered {
		updates["actual_delivery"] = time.Now()
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) SetActualDelivery(ctx context.Context, shipmentID uuid.UUID, deliveredAt time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Updates(map[string]interface{}{
			"actual_delivery": deliveredAt,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set actual delivery time: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ShipmentModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", string(*filter.PaymentStatus))
	}
	if filter.ActiveOnly {
		query = query.Where("status IN ?", activeStatusStrings())
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"tracking_number ILIKE ? OR origin ILIKE ? OR destination ILIKE ? OR vehicle_description ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filter.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var dbModels []models.ShipmentModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, 0, len(dbModels))
	for i := range dbModels {
		shipments = append(shipments, toShipmentEntity(&dbModels[i]))
	}

	return shipments, total, nil
}

func (r *ShipmentRepository) ListActive(ctx context.Context) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("status IN ?", activeStatusStrings()).
		Order("updated_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, 0, len(dbModels))
	for i := range dbModels {
		shipments = append(shipments, toShipmentEntity(&dbModels[i]))
	}

	return shipments, nil
}

func (r *ShipmentRepository) GetStatistics(ctx context.Context) (*shipment.Statistics, error) {
	stats := &shipment.Statistics{
		ByStatus: make(map[string]int),
	}

	var statusCounts []struct {
		Status string
		Count  int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM shipments
		WHERE deleted_at IS NULL
		GROUP BY status
	`).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	for _, sc := range statusCounts {
		stats.TotalShipments += sc.Count
		stats.ByStatus[sc.Status] = sc.Count
		if lifecycle.IsActive(shipment.Status(sc.Status)) {
			stats.ActiveShipments += sc.Count
		}
	}

	today := time.Now().Truncate(24 * time.Hour)
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) as count
		FROM shipments
		WHERE status = 'DELIVERED' AND DATE(actual_delivery) = DATE(?) AND deleted_at IS NULL
	`, today).Scan(&stats.DeliveredToday).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get delivered today: %w", err)
	}

	deliveredCount := stats.ByStatus[string(shipment.StatusDelivered)]
	if deliveredCount > 0 {
		var onTimeCount int
		err = r.db.DB.WithContext(ctx).Raw(`
			SELECT COUNT(*) as count
			FROM shipments
			WHERE status = 'DELIVERED'
			  AND estimated_delivery IS NOT NULL
			  AND actual_delivery <= estimated_delivery
			  AND deleted_at IS NULL
		`).Scan(&onTimeCount).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get on-time delivery count: %w", err)
		}

		stats.OnTimeRate = float64(onTimeCount) / float64(deliveredCount) * 100
	}

	var revenue struct {
		USD float64
		AED float64
	}
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_usd), 0) AS usd, COALESCE(SUM(total_aed), 0) AS aed
		FROM invoices
		WHERE status = 'PAID'
	`).Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue totals: %w", err)
	}
	stats.RevenueUSD = revenue.USD
	stats.RevenueAED = revenue.AED

	return stats, nil
}

func activeStatusStrings() []string {
	active := lifecycle.ActiveStatuses()
	out := make([]string, 0, len(active))
	for _, s := range active {
		out = append(out, string(s))
	}
	return out
}

func toShipmentModel(s *shipment.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
		ID:                 s.ID,
		TrackingNumber:     s.TrackingNumber,
		UserID:             s.UserID,
		Status:             string(s.Status),
		Progress:           s.Progress,
		PaymentStatus:      string(s.PaymentStatus),
		Origin:             s.Origin,
		Destination:        s.Destination,
		VehicleDescription: s.VehicleDescription,
		EstimatedDelivery:  s.EstimatedDelivery,
		ActualDelivery:     s.ActualDelivery,
		Notes:              s.Notes,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *shipment.Shipment {
	return &shipment.Shipment{
		ID:                 m.ID,
		TrackingNumber:     m.TrackingNumber,
		UserID:             m.UserID,
		Status:             shipment.Status(m.Status),
		Progress:           m.Progress,
		PaymentStatus:      shipment.PaymentStatus(m.PaymentStatus),
		Origin:             m.Origin,
		Destination:        m.Destination,
		VehicleDescription: m.VehicleDescription,
		EstimatedDelivery:  m.EstimatedDelivery,
		ActualDelivery:     m.ActualDelivery,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
