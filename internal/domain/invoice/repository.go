package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for invoice persistence
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error)
	ListByContainer(ctx context.Context, containerID uuid.UUID) ([]*Invoice, error)
	List(ctx context.Context, filter *Filter) ([]*Invoice, int64, error)
	Update(ctx context.Context, invoice *Invoice) error
	SetStatus(ctx context.Context, invoiceID uuid.UUID, status Status, paidAt *time.Time) error

	// MarkOverdue flags every SENT invoice whose due date lies before now.
	// Idempotent; returns the number of rows flagged.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// Filter represents filtering options for listing invoices
type Filter struct {
	ContainerID *uuid.UUID
	Status      *Status
	OverdueOnly bool

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
