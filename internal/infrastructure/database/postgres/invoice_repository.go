package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vehicle-shipping-backend/internal/domain/invoice"
	"vehicle-shipping-backend/internal/infrastructure/database/postgres/models"
)

type InvoiceRepository struct {
	db *DB
}

func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = time.Now()
	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now()
	}

	dbModel := toInvoiceModel(inv)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return invoice.ErrDuplicateNumber
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID uuid.UUID) (*invoice.Invoice, error) {
	var dbModel models.InvoiceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", invoiceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoice.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return toInvoiceEntity(&dbModel), nil
}

func (r *InvoiceRepository) ListByContainer(ctx context.Context, containerID uuid.UUID) ([]*invoice.Invoice, error) {
	var dbModels []models.InvoiceModel
	err := r.db.DB.WithContext(ctx).
		Where("container_id = ?", containerID).
		Order("issued_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, 0, len(dbModels))
	for i := range dbModels {
		invoices = append(invoices, toInvoiceEntity(&dbModels[i]))
	}

	return invoices, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter *invoice.Filter) ([]*invoice.Invoice, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.InvoiceModel{})

	if filter.ContainerID != nil {
		query = query.Where("container_id = ?", *filter.ContainerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.OverdueOnly {
		query = query.Where("overdue = true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
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
		sortBy = "issued_at"
	}
	sortOrder := filter.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	var dbModels []models.InvoiceModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, 0, len(dbModels))
	for i := range dbModels {
		invoices = append(invoices, toInvoiceEntity(&dbModels[i]))
	}

	return invoices, total, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"status":     string(inv.Status),
			"total_usd":  inv.TotalUSD,
			"total_aed":  inv.TotalAED,
			"overdue":    inv.Overdue,
			"due_date":   inv.DueDate,
			"paid_at":    inv.PaidAt,
			"updated_at": inv.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return invoice.ErrInvoiceNotFound
	}

	return nil
}

func (r *InvoiceRepository) SetStatus(ctx context.Context, invoiceID uuid.UUID, status invoice.Status, paidAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
		updates["overdue"] = false
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoiceID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to set invoice status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return invoice.ErrInvoiceNotFound
	}

	return nil
}

// MarkOverdue flags SENT invoices past their due date in a single statement.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ? AND overdue = false", string(invoice.StatusSent), now).
		Updates(map[string]interface{}{
			"status":     string(invoice.StatusOverdue),
			"overdue":    true,
			"updated_at": now,
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func toInvoiceModel(i *invoice.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ContainerID:   i.ContainerID,
		Status:        string(i.Status),
		TotalUSD:      i.TotalUSD,
		TotalAED:      i.TotalAED,
		Overdue:       i.Overdue,
		IssuedAt:      i.IssuedAt,
		DueDate:       i.DueDate,
		PaidAt:        i.PaidAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toInvoiceEntity(m *models.InvoiceModel) *invoice.Invoice {
	return &invoice.Invoice{
		ID:            m.ID,
		InvoiceNumber: m.InvoiceNumber,
		ContainerID:   m.ContainerID,
		Status:        invoice.Status(m.Status),
		TotalUSD:      m.TotalUSD,
		TotalAED:      m.TotalAED,
		Overdue:       m.Overdue,
		IssuedAt:      m.IssuedAt,
		DueDate:       m.DueDate,
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
