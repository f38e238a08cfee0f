package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the billing state of an invoice
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusSent    Status = "SENT"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

// Invoice is a billing document for a container. Totals are denominated in
// USD and AED independently; there is no stored exchange rate and no
// enforced reconciliation against the container's item cost sum.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	ContainerID   uuid.UUID

	Status   Status
	TotalUSD float64
	TotalAED float64
	Overdue  bool

	IssuedAt time.Time
	DueDate  *time.Time
	PaidAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPastDue reports whether a sent invoice has an expired due date at the
// given time. Paid and draft invoices are never past due.
func (i *Invoice) IsPastDue(now time.Time) bool {
	if i.Status != StatusSent && i.Status != StatusOverdue {
		return false
	}
	return i.DueDate != nil && i.DueDate.Before(now)
}
