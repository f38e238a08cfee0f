package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainContainer "vehicle-shipping-backend/internal/domain/container"
	domainInvoice "vehicle-shipping-backend/internal/domain/invoice"
	"vehicle-shipping-backend/internal/logger"
	appErrors "vehicle-shipping-backend/pkg/errors"
	"vehicle-shipping-backend/pkg/utils"
)

// Service implements invoice use cases
type Service struct {
	invoiceRepo   domainInvoice.Repository
	containerRepo domainContainer.Repository
}

// NewService creates a new invoice service
func NewService(invoiceRepo domainInvoice.Repository, containerRepo domainContainer.Repository) *Service {
	return &Service{
		invoiceRepo:   invoiceRepo,
		containerRepo: containerRepo,
	}
}

// Create issues a new invoice against a container. The container must exist;
// the USD and AED totals are taken as given and not reconciled against the
// container's item cost sum.
func (s *Service) Create(ctx context.Context, req *CreateInvoiceRequest) (*InvoiceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	exists, err := s.containerRepo.Exists(ctx, req.ContainerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainContainer.ErrContainerNotFound
	}

	invoice := &domainInvoice.Invoice{
		InvoiceNumber: utils.SanitizeString(req.InvoiceNumber),
		ContainerID:   req.ContainerID,
		Status:        domainInvoice.StatusDraft,
		TotalUSD:      req.TotalUSD,
		TotalAED:      req.TotalAED,
		IssuedAt:      time.Now().UTC(),
		DueDate:       req.DueDate,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("container_id", invoice.ContainerID.String()),
		zap.String("event", "invoice_created"),
	)

	return ToInvoiceResponse(invoice), nil
}

// Get returns a single invoice.
func (s *Service) Get(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// ListByContainer returns all invoices issued against a container.
func (s *Service) ListByContainer(ctx context.Context, containerID uuid.UUID) ([]*InvoiceResponse, error) {
	exists, err := s.containerRepo.Exists(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainContainer.ErrContainerNotFound
	}

	invoices, err := s.invoiceRepo.ListByContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}

	resp := make([]*InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, ToInvoiceResponse(inv))
	}
	return resp, nil
}

// List returns invoices matching the filter, paginated.
func (s *Service) List(ctx context.Context, req *InvoiceFilterRequest) (*InvoiceListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid filter", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := &domainInvoice.Filter{
		ContainerID: req.ContainerID,
		Status:      req.Status,
		OverdueOnly: req.OverdueOnly,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &InvoiceListResponse{
		Invoices: make([]*InvoiceResponse, 0, len(invoices)),
		Total:    total,
		Page:     req.Page,
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, ToInvoiceResponse(inv))
	}
	return resp, nil
}

// Update edits the amounts and due date of an invoice. Paid invoices are
// frozen.
func (s *Service) Update(ctx context.Context, invoiceID uuid.UUID, req *UpdateInvoiceRequest) (*InvoiceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domainInvoice.StatusPaid {
		return nil, domainInvoice.ErrAlreadyPaid
	}

	if req.TotalUSD != nil {
		invoice.TotalUSD = *req.TotalUSD
	}
	if req.TotalAED != nil {
		invoice.TotalAED = *req.TotalAED
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// SetStatus moves an invoice to a new billing status. Marking an invoice
// PAID stamps the payment time and clears the overdue flag.
func (s *Service) SetStatus(ctx context.Context, invoiceID uuid.UUID, req *SetInvoiceStatusRequest) (*InvoiceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domainInvoice.StatusPaid && req.Status != domainInvoice.StatusPaid {
		return nil, domainInvoice.ErrAlreadyPaid
	}

	var paidAt *time.Time
	if req.Status == domainInvoice.StatusPaid {
		now := time.Now().UTC()
		paidAt = &now
	}

	if err := s.invoiceRepo.SetStatus(ctx, invoiceID, req.Status, paidAt); err != nil {
		return nil, err
	}

	logger.Info("Invoice status updated",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("status", string(req.Status)),
		zap.String("event", "invoice_status_updated"),
	)

	return s.Get(ctx, invoiceID)
}

// SweepOverdue flags every sent invoice whose due date has passed. Called by
// the scheduled worker; safe to run repeatedly.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	flagged, err := s.invoiceRepo.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if flagged > 0 {
		logger.Info("Overdue invoices flagged",
			zap.Int64("count", flagged),
			zap.String("event", "invoice_overdue_sweep"),
		)
	}
	return flagged, nil
}
