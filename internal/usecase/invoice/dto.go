package invoice

import (
	"time"

	"github.com/google/uuid"

	domainInvoice "vehicle-shipping-backend/internal/domain/invoice"
)

// Request DTOs
type CreateInvoiceRequest struct {
	InvoiceNumber string    `json:"invoice_number" validate:"required,min=3,max=30"`
	ContainerID   uuid.UUID `json:"container_id" validate:"required"`

	TotalUSD float64    `json:"total_usd" validate:"omitempty,min=0"`
	TotalAED float64    `json:"total_aed" validate:"omitempty,min=0"`
	DueDate  *time.Time `json:"due_date"`
}

type UpdateInvoiceRequest struct {
	TotalUSD *float64   `json:"total_usd" validate:"omitempty,min=0"`
	TotalAED *float64   `json:"total_aed" validate:"omitempty,min=0"`
	DueDate  *time.Time `json:"due_date"`
}

type SetInvoiceStatusRequest struct {
	Status domainInvoice.Status `json:"status" validate:"required,oneof=DRAFT SENT PAID OVERDUE"`
}

type InvoiceFilterRequest struct {
	ContainerID *uuid.UUID            `form:"container_id"`
	Status      *domainInvoice.Status `form:"status"`
	OverdueOnly bool                  `form:"overdue_only"`

	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at issued_at due_date invoice_number status"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type InvoiceResponse struct {
	ID            uuid.UUID            `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	ContainerID   uuid.UUID            `json:"container_id"`
	Status        domainInvoice.Status `json:"status"`
	TotalUSD      float64              `json:"total_usd"`
	TotalAED      float64              `json:"total_aed"`
	Overdue       bool                 `json:"overdue"`
	IssuedAt      time.Time            `json:"issued_at"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type InvoiceListResponse struct {
	Invoices []*InvoiceResponse `json:"invoices"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
}

func ToInvoiceResponse(inv *domainInvoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ContainerID:   inv.ContainerID,
		Status:        inv.Status,
		TotalUSD:      inv.TotalUSD,
		TotalAED:      inv.TotalAED,
		Overdue:       inv.Overdue,
		IssuedAt:      inv.IssuedAt,
		DueDate:       inv.DueDate,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
