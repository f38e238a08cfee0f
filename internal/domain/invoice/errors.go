package invoice

import "errors"

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrDuplicateNumber  = errors.New("invoice number already exists")
	ErrAlreadyPaid      = errors.New("invoice is already paid")
	ErrInvalidStatus    = errors.New("invalid invoice status")
	ErrInvalidStatusSet = errors.New("invalid invoice status change")
)
