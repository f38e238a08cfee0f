package tracking

import (
	"context"
	"errors"
)

var (
	// ErrNoData means the carrier answered but knows nothing about the
	// number. Distinct from ErrUnavailable so callers can render an empty
	// result instead of a failure.
	ErrNoData      = errors.New("no tracking data found")
	ErrUnavailable = errors.New("carrier tracking source unavailable")
)

// Source fetches tracking details for a number from an external carrier.
// withRoute requests the full milestone route instead of the latest-only
// summary.
type Source interface {
	Fetch(ctx context.Context, trackingNumber string, withRoute bool) (*Details, error)
}
