package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentModel represents the database model for Shipments. Rows are only
// ever soft-deleted; history stays queryable.
type ShipmentModel struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TrackingNumber     string         `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status             string         `gorm:"type:varchar(30);not null;default:'PENDING';index"`
	Progress           int            `gorm:"type:integer;not null;default:0;check:progress >= 0 AND progress <= 100"`
	PaymentStatus      string         `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	Origin             string         `gorm:"type:text;not null"`
	Destination        string         `gorm:"type:text;not null"`
	VehicleDescription string         `gorm:"type:text;not null"`
	EstimatedDelivery  *time.Time     `gorm:"type:timestamptz"`
	ActualDelivery     *time.Time     `gorm:"type:timestamptz"`
	Notes              *string        `gorm:"type:text"`
	CreatedAt          time.Time      `gorm:"not null;index"`
	UpdatedAt          time.Time      `gorm:"not null"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`

	// Relations
	User *UserModel `gorm:"foreignKey:UserID"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}
