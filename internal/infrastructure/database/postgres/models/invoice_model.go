package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceModel represents the database model for Invoices. USD and AED
// totals are independent columns; no exchange rate is stored.
type InvoiceModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	InvoiceNumber string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	ContainerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(10);not null;default:'DRAFT';index"`
	TotalUSD      float64   `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAED      float64   `gorm:"type:decimal(12,2);not null;default:0"`
	Overdue       bool      `gorm:"not null;default:false;index"`

	IssuedAt time.Time  `gorm:"not null"`
	DueDate  *time.Time `gorm:"type:timestamptz;index"`
	PaidAt   *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Container *ContainerModel `gorm:"foreignKey:ContainerID"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
