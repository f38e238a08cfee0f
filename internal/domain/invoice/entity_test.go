package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceIsPastDue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		invoice Invoice
		want    bool
	}{
		{name: "sent and overdue", invoice: Invoice{Status: StatusSent, DueDate: &yesterday}, want: true},
		{name: "sent but not yet due", invoice: Invoice{Status: StatusSent, DueDate: &tomorrow}, want: false},
		{name: "sent without due date", invoice: Invoice{Status: StatusSent}, want: false},
		{name: "draft never past due", invoice: Invoice{Status: StatusDraft, DueDate: &yesterday}, want: false},
		{name: "paid never past due", invoice: Invoice{Status: StatusPaid, DueDate: &yesterday}, want: false},
		{name: "already flagged stays past due", invoice: Invoice{Status: StatusOverdue, DueDate: &yesterday}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.invoice.IsPastDue(now))
		})
	}
}
