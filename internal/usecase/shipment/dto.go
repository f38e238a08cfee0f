package shipment

import (
	"time"

	"github.com/google/uuid"

	domainShipment "vehicle-shipping-backend/internal/domain/shipment"
)

// Request DTOs
type BookShipmentRequest struct {
	Origin             string     `json:"origin" validate:"required,min=3,max=500"`
	Destination        string     `json:"destination" validate:"required,min=3,max=500"`
	VehicleDescription string     `json:"vehicle_description" validate:"required,min=3,max=1000"`
	EstimatedDelivery  *time.Time `json:"estimated_delivery" validate:"omitempty"`
	Notes              *string    `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status   domainShipment.Status `json:"status" validate:"required"`
	Progress *int                  `json:"progress" validate:"omitempty,min=0,max=100"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus domainShipment.PaymentStatus `json:"payment_status" validate:"required,oneof=UNPAID PARTIALLY_PAID PAID REFUNDED"`
}

type ShipmentFilterRequest struct {
	Status        *domainShipment.Status        `form:"status"`
	PaymentStatus *domainShipment.PaymentStatus `form:"payment_status"`
	ActiveOnly    bool                          `form:"active"`

	CreatedAfter  *time.Time `form:"created_after"`
	CreatedBefore *time.Time `form:"created_before"`

	Search string `form:"search"`

	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at estimated_delivery status"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type ShipmentResponse struct {
	ID             uuid.UUID             `json:"id"`
	TrackingNumber string                `json:"tracking_number"`
	UserID         uuid.UUID             `json:"user_id"`
	Status         domainShipment.Status `json:"status"`
	Progress       int                   `json:"progress"`
	PaymentStatus  domainShipment.PaymentStatus `json:"payment_status"`

	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	VehicleDescription string `json:"vehicle_description"`

	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	Notes             *string    `json:"notes,omitempty"`

	AllowedNextStatuses []domainShipment.Status `json:"allowed_next_statuses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShipmentListResponse struct {
	Shipments []*ShipmentResponse `json:"shipments"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
}

type StatisticsResponse struct {
	TotalShipments  int            `json:"total_shipments"`
	ByStatus        map[string]int `json:"by_status"`
	ActiveShipments int            `json:"active_shipments"`
	DeliveredToday  int            `json:"delivered_today"`
	OnTimeRate      float64        `json:"on_time_rate"`
	RevenueUSD      float64        `json:"revenue_usd"`
	RevenueAED      float64        `json:"revenue_aed"`
}
