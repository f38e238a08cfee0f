package container

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a physical container
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusLoaded    Status = "LOADED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusClosed    Status = "CLOSED"
)

// Container groups vehicle items for transport
type Container struct {
	ID              uuid.UUID
	ContainerNumber string
	Status          Status
	ContainerType   *string
	ShipmentID      *uuid.UUID

	Items []*Item

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a single vehicle entry within a container carrying its
// acquisition and logistics cost components.
type Item struct {
	ID          uuid.UUID
	ContainerID uuid.UUID

	VIN         string
	LotNumber   string
	AuctionCity string
	Description *string

	FreightCost   float64
	TowingCost    float64
	ClearanceCost float64
	VATCost       float64
	CustomsCost   float64
	OtherCost     float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCost is the sum of the six cost components. Computed on read, never
// stored; this method is the single definition of "total".
func (i *Item) TotalCost() float64 {
	return i.FreightCost + i.TowingCost + i.ClearanceCost + i.VATCost + i.CustomsCost + i.OtherCost
}

// ItemsCostSum returns the combined total cost of all items in the container.
func (c *Container) ItemsCostSum() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.TotalCost()
	}
	return sum
}
