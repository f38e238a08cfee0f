package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for shipment repository operations
type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	Update(ctx context.Context, shipment *Shipment) error
	UpdateStatus(ctx context.Context, shipmentID uuid.UUID, status Status, progress int) error
	SetActualDelivery(ctx context.Context, shipmentID uuid.UUID, deliveredAt time.Time) error
	List(ctx context.Context, filter *Filter) ([]*Shipment, int64, error)
	ListActive(ctx context.Context) ([]*Shipment, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// Filter represents filtering options for listing shipments
type Filter struct {
	UserID        *uuid.UUID
	Status        *Status
	PaymentStatus *PaymentStatus
	ActiveOnly    bool

	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	Search string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
