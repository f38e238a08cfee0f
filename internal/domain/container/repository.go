package container

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for container and item persistence
type Repository interface {
	Create(ctx context.Context, container *Container) error
	GetByID(ctx context.Context, containerID uuid.UUID) (*Container, error)
	GetByNumber(ctx context.Context, containerNumber string) (*Container, error)
	List(ctx context.Context, filter *Filter) ([]*Container, int64, error)
	UpdateStatus(ctx context.Context, containerID uuid.UUID, status Status) error
	LinkShipment(ctx context.Context, containerID, shipmentID uuid.UUID) error

	// Exists is checked before any item write; items must never be created
	// against a missing container.
	Exists(ctx context.Context, containerID uuid.UUID) (bool, error)

	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, containerID uuid.UUID) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// Filter represents filtering options for listing containers
type Filter struct {
	Status     *Status
	ShipmentID *uuid.UUID
	Search     string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
