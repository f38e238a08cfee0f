package shipment

import "errors"

var (
	ErrShipmentNotFound        = errors.New("shipment not found")
	ErrDuplicateTracking       = errors.New("tracking number already exists")
	ErrInvalidStatus           = errors.New("invalid shipment status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrProgressRegression      = errors.New("progress cannot decrease")
	ErrShipmentDelivered       = errors.New("shipment is already delivered")
	ErrShipmentCancelled       = errors.New("shipment is cancelled")
	ErrNotOwner                = errors.New("shipment belongs to another user")
)
