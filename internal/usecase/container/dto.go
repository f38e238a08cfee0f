package container

import (
	"time"

	"github.com/google/uuid"

	domainContainer "vehicle-shipping-backend/internal/domain/container"
)

// Request DTOs
type CreateContainerRequest struct {
	ContainerNumber string     `json:"container_number" validate:"required,min=4,max=20"`
	ContainerType   *string    `json:"container_type" validate:"omitempty,max=30"`
	ShipmentID      *uuid.UUID `json:"shipment_id" validate:"omitempty"`
}

type UpdateContainerStatusRequest struct {
	Status domainContainer.Status `json:"status" validate:"required,oneof=ACTIVE LOADED SHIPPED DELIVERED CLOSED"`
}

type LinkShipmentRequest struct {
	ShipmentID uuid.UUID `json:"shipment_id" validate:"required"`
}

type CreateItemRequest struct {
	VIN         string  `json:"vin" validate:"required,vin"`
	LotNumber   string  `json:"lot_number" validate:"required,min=1,max=50"`
	AuctionCity string  `json:"auction_city" validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`

	FreightCost   float64 `json:"freight_cost" validate:"omitempty,min=0"`
	TowingCost    float64 `json:"towing_cost" validate:"omitempty,min=0"`
	ClearanceCost float64 `json:"clearance_cost" validate:"omitempty,min=0"`
	VATCost       float64 `json:"vat_cost" validate:"omitempty,min=0"`
	CustomsCost   float64 `json:"customs_cost" validate:"omitempty,min=0"`
	OtherCost     float64 `json:"other_cost" validate:"omitempty,min=0"`
}

type UpdateItemRequest struct {
	VIN         *string `json:"vin" validate:"omitempty,vin"`
	LotNumber   *string `json:"lot_number" validate:"omitempty,min=1,max=50"`
	AuctionCity *string `json:"auction_city" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`

	FreightCost   *float64 `json:"freight_cost" validate:"omitempty,min=0"`
	TowingCost    *float64 `json:"towing_cost" validate:"omitempty,min=0"`
	ClearanceCost *float64 `json:"clearance_cost" validate:"omitempty,min=0"`
	VATCost       *float64 `json:"vat_cost" validate:"omitempty,min=0"`
	CustomsCost   *float64 `json:"customs_cost" validate:"omitempty,min=0"`
	OtherCost     *float64 `json:"other_cost" validate:"omitempty,min=0"`
}

type ContainerFilterRequest struct {
	Status *domainContainer.Status `form:"status"`
	Search string                  `form:"search"`

	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at container_number status"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ContainerID uuid.UUID `json:"container_id"`
	VIN         string    `json:"vin"`
	LotNumber   string    `json:"lot_number"`
	AuctionCity string    `json:"auction_city"`
	Description *string   `json:"description,omitempty"`

	FreightCost   float64 `json:"freight_cost"`
	TowingCost    float64 `json:"towing_cost"`
	ClearanceCost float64 `json:"clearance_cost"`
	VATCost       float64 `json:"vat_cost"`
	CustomsCost   float64 `json:"customs_cost"`
	OtherCost     float64 `json:"other_cost"`

	// TotalCost is computed from the six components at response time.
	TotalCost float64 `json:"total_cost"`

	CreatedAt time.Time `json:"created_at"`
}

type ContainerResponse struct {
	ID              uuid.UUID              `json:"id"`
	ContainerNumber string                 `json:"container_number"`
	Status          domainContainer.Status `json:"status"`
	ContainerType   *string                `json:"container_type,omitempty"`
	ShipmentID      *uuid.UUID             `json:"shipment_id,omitempty"`

	Items []*ItemResponse `json:"items,omitempty"`

	// ItemsCostSum is the combined computed total of all items, shown next
	// to invoice totals so discrepancies are visible.
	ItemsCostSum float64 `json:"items_cost_sum"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContainerListResponse struct {
	Containers []*ContainerResponse `json:"containers"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
}

func ToItemResponse(i *domainContainer.Item) *ItemResponse {
	return &ItemResponse{
		ID:            i.ID,
		ContainerID:   i.ContainerID,
		VIN:           i.VIN,
		LotNumber:     i.LotNumber,
		AuctionCity:   i.AuctionCity,
		Description:   i.Description,
		FreightCost:   i.FreightCost,
		TowingCost:    i.TowingCost,
		ClearanceCost: i.ClearanceCost,
		VATCost:       i.VATCost,
		CustomsCost:   i.CustomsCost,
		OtherCost:     i.OtherCost,
		TotalCost:     i.TotalCost(),
		CreatedAt:     i.CreatedAt,
	}
}

func ToContainerResponse(c *domainContainer.Container) *ContainerResponse {
	resp := &ContainerResponse{
		ID:              c.ID,
		ContainerNumber: c.ContainerNumber,
		Status:          c.Status,
		ContainerType:   c.ContainerType,
		ShipmentID:      c.ShipmentID,
		ItemsCostSum:    c.ItemsCostSum(),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	for _, item := range c.Items {
		resp.Items = append(resp.Items, ToItemResponse(item))
	}
	return resp
}
