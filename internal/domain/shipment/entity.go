package shipment

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle stage of a shipment
type Status string

const (
	StatusPending              Status = "PENDING"
	StatusQuoteRequested       Status = "QUOTE_REQUESTED"
	StatusQuoteApproved        Status = "QUOTE_APPROVED"
	StatusPickupScheduled      Status = "PICKUP_SCHEDULED"
	StatusPickupCompleted      Status = "PICKUP_COMPLETED"
	StatusInTransit            Status = "IN_TRANSIT"
	StatusAtPort               Status = "AT_PORT"
	StatusLoadedOnVessel       Status = "LOADED_ON_VESSEL"
	StatusInTransitOcean       Status = "IN_TRANSIT_OCEAN"
	StatusArrivedAtDestination Status = "ARRIVED_AT_DESTINATION"
	StatusCustomsClearance     Status = "CUSTOMS_CLEARANCE"
	StatusOutForDelivery       Status = "OUT_FOR_DELIVERY"
	StatusDelivered            Status = "DELIVERED"
	StatusOnHold               Status = "ON_HOLD"
	StatusCancelled            Status = "CANCELLED"
)

// PaymentStatus is tracked independently of the shipping lifecycle
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

// Shipment represents a customer-facing vehicle shipping job
type Shipment struct {
	ID             uuid.UUID
	TrackingNumber string
	UserID         uuid.UUID

	Status        Status
	Progress      int // 0-100, never decreases
	PaymentStatus PaymentStatus

	Origin             string
	Destination        string
	VehicleDescription string

	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Statistics represents aggregated shipment reporting numbers
type Statistics struct {
	TotalShipments  int
	ByStatus        map[string]int
	ActiveShipments int
	DeliveredToday  int
	OnTimeRate      float64

	// Paid-invoice totals, per currency.
	RevenueUSD float64
	RevenueAED float64
}
