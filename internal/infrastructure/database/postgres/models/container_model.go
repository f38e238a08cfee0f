package models

import (
	"time"

	"github.com/google/uuid"
)

// ContainerModel represents the database model for Containers
type ContainerModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContainerNumber string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Status          string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ContainerType   *string    `gorm:"type:varchar(30)"`
	ShipmentID      *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"not null;index"`
	UpdatedAt       time.Time  `gorm:"not null"`

	// Relations
	Shipment *ShipmentModel  `gorm:"foreignKey:ShipmentID"`
	Items    []*ItemModel    `gorm:"foreignKey:ContainerID"`
	Invoices []*InvoiceModel `gorm:"foreignKey:ContainerID"`
}

func (ContainerModel) TableName() string {
	return "containers"
}

// ItemModel represents the database model for vehicle Items. Cost components
// are stored individually; the total is always computed, never stored.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContainerID uuid.UUID `gorm:"type:uuid;not null;index"`
	VIN         string    `gorm:"type:varchar(17);not null;index"`
	LotNumber   string    `gorm:"type:varchar(50);not null"`
	AuctionCity string    `gorm:"type:varchar(100);not null"`
	Description *string   `gorm:"type:text"`

	FreightCost   float64 `gorm:"type:decimal(12,2);not null;default:0"`
	TowingCost    float64 `gorm:"type:decimal(12,2);not null;default:0"`
	ClearanceCost float64 `gorm:"type:decimal(12,2);not null;default:0"`
	VATCost       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	CustomsCost   float64 `gorm:"type:decimal(12,2);not null;default:0"`
	OtherCost     float64 `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Container *ContainerModel `gorm:"foreignKey:ContainerID"`
}

func (ItemModel) TableName() string {
	return "items"
}
