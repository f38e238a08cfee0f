package container

import "errors"

var (
	ErrContainerNotFound  = errors.New("container not found")
	ErrDuplicateNumber    = errors.New("container number already exists")
	ErrItemNotFound       = errors.New("item not found")
	ErrContainerClosed    = errors.New("container is closed")
	ErrShipmentLinkExists = errors.New("container is already linked to a shipment")
)
