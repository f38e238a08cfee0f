package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-shipping-backend/internal/domain/shipment"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    shipment.Status
		to      shipment.Status
		wantErr bool
	}{
		{name: "pending to quote requested", from: shipment.StatusPending, to: shipment.StatusQuoteRequested, wantErr: false},
		{name: "full happy path step", from: shipment.StatusOutForDelivery, to: shipment.StatusDelivered, wantErr: false},
		{name: "skip a step", from: shipment.StatusPending, to: shipment.StatusInTransit, wantErr: true},
		{name: "backwards", from: shipment.StatusInTransit, to: shipment.StatusPending, wantErr: true},
		{name: "delivered is terminal", from: shipment.StatusDelivered, to: shipment.StatusPending, wantErr: true},
		{name: "cancelled is terminal", from: shipment.StatusCancelled, to: shipment.StatusPending, wantErr: true},
		{name: "any active to on hold", from: shipment.StatusCustomsClearance, to: shipment.StatusOnHold, wantErr: false},
		{name: "any active to cancelled", from: shipment.StatusAtPort, to: shipment.StatusCancelled, wantErr: false},
		{name: "on hold resumes anywhere active", from: shipment.StatusOnHold, to: shipment.StatusLoadedOnVessel, wantErr: false},
		{name: "on hold cannot jump to delivered", from: shipment.StatusOnHold, to: shipment.StatusDelivered, wantErr: true},
		{name: "on hold can cancel", from: shipment.StatusOnHold, to: shipment.StatusCancelled, wantErr: false},
		{name: "unknown current status", from: shipment.Status("LOST"), to: shipment.StatusPending, wantErr: true},
		{name: "unknown target status", from: shipment.StatusPending, to: shipment.Status("TELEPORTED"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHappyPathIsFullyConnected(t *testing.T) {
	path := []shipment.Status{
		shipment.StatusPending,
		shipment.StatusQuoteRequested,
		shipment.StatusQuoteApproved,
		shipment.StatusPickupScheduled,
		shipment.StatusPickupCompleted,
		shipment.StatusInTransit,
		shipment.StatusAtPort,
		shipment.StatusLoadedOnVessel,
		shipment.StatusInTransitOcean,
		shipment.StatusArrivedAtDestination,
		shipment.StatusCustomsClearance,
		shipment.StatusOutForDelivery,
		shipment.StatusDelivered,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.NoError(t, ValidateTransition(path[i], path[i+1]),
			"step %s -> %s should be legal", path[i], path[i+1])
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(shipment.StatusDelivered))
	assert.True(t, IsTerminal(shipment.StatusCancelled))
	assert.False(t, IsTerminal(shipment.StatusOnHold))
	assert.False(t, IsTerminal(shipment.StatusPending))
	assert.False(t, IsTerminal(shipment.Status("LOST")))
}

func TestActiveStatuses(t *testing.T) {
	active := ActiveStatuses()

	assert.Len(t, active, 13)
	assert.NotContains(t, active, shipment.StatusDelivered)
	assert.NotContains(t, active, shipment.StatusCancelled)
	assert.Contains(t, active, shipment.StatusOnHold)

	// Mutating the returned slice must not leak into the package state.
	active[0] = shipment.StatusCancelled
	assert.Equal(t, shipment.StatusPending, ActiveStatuses()[0])
}

func TestDefaultProgressIsMonotoneAlongHappyPath(t *testing.T) {
	path := []shipment.Status{
		shipment.StatusPending,
		shipment.StatusQuoteRequested,
		shipment.StatusQuoteApproved,
		shipment.StatusPickupScheduled,
		shipment.StatusPickupCompleted,
		shipment.StatusInTransit,
		shipment.StatusAtPort,
		shipment.StatusLoadedOnVessel,
		shipment.StatusInTransitOcean,
		shipment.StatusArrivedAtDestination,
		shipment.StatusCustomsClearance,
		shipment.StatusOutForDelivery,
		shipment.StatusDelivered,
	}

	prev := -1
	for _, s := range path {
		p := DefaultProgress(s, 0)
		assert.Greater(t, p, prev, "progress for %s must exceed the previous step", s)
		prev = p
	}
	assert.Equal(t, 0, DefaultProgress(shipment.StatusPending, 0))
	assert.Equal(t, 100, DefaultProgress(shipment.StatusDelivered, 0))
}

func TestDefaultProgressFreezesOnHoldAndCancelled(t *testing.T) {
	assert.Equal(t, 42, DefaultProgress(shipment.StatusOnHold, 42))
	assert.Equal(t, 67, DefaultProgress(shipment.StatusCancelled, 67))
}

func TestResolveProgress(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name     string
		status   shipment.Status
		current  int
		override *int
		want     int
		wantErr  bool
	}{
		{name: "canonical when no override", status: shipment.StatusInTransit, current: 25, override: nil, want: 35},
		{name: "override above canonical", status: shipment.StatusInTransit, current: 25, override: intPtr(40), want: 40},
		{name: "override below canonical rejected", status: shipment.StatusInTransit, current: 25, override: intPtr(30), wantErr: true},
		{name: "override below current rejected", status: shipment.StatusInTransit, current: 40, override: intPtr(36), wantErr: true},
		{name: "override above 100 rejected", status: shipment.StatusInTransit, current: 25, override: intPtr(101), wantErr: true},
		{name: "cancel keeps frozen progress", status: shipment.StatusCancelled, current: 55, override: nil, want: 55},
		{name: "resume below frozen progress clamps up", status: shipment.StatusPickupCompleted, current: 60, override: nil, want: 60},
		{name: "delivered lands on 100", status: shipment.StatusDelivered, current: 95, override: nil, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProgress(tt.status, tt.current, tt.override)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowedTransitionsMatchesValidation(t *testing.T) {
	for _, from := range append(ActiveStatuses(), shipment.StatusDelivered, shipment.StatusCancelled) {
		for _, to := range AllowedTransitions(from) {
			assert.NoError(t, ValidateTransition(from, to))
		}
	}
}

func TestForwardPath(t *testing.T) {
	tests := []struct {
		name   string
		from   shipment.Status
		to     shipment.Status
		want   []shipment.Status
		wantOK bool
	}{
		{
			name:   "same status is an empty path",
			from:   shipment.StatusInTransit,
			to:     shipment.StatusInTransit,
			want:   nil,
			wantOK: true,
		},
		{
			name:   "single legal step",
			from:   shipment.StatusInTransit,
			to:     shipment.StatusAtPort,
			want:   []shipment.Status{shipment.StatusAtPort},
			wantOK: true,
		},
		{
			name: "two-stage jump walks the stage in between",
			from: shipment.StatusInTransit,
			to:   shipment.StatusLoadedOnVessel,
			want: []shipment.Status{
				shipment.StatusAtPort,
				shipment.StatusLoadedOnVessel,
			},
			wantOK: true,
		},
		{
			name: "pending to delivered walks the whole main line",
			from: shipment.StatusPending,
			to:   shipment.StatusDelivered,
			want: []shipment.Status{
				shipment.StatusQuoteRequested,
				shipment.StatusQuoteApproved,
				shipment.StatusPickupScheduled,
				shipment.StatusPickupCompleted,
				shipment.StatusInTransit,
				shipment.StatusAtPort,
				shipment.StatusLoadedOnVessel,
				shipment.StatusInTransitOcean,
				shipment.StatusArrivedAtDestination,
				shipment.StatusCustomsClearance,
				shipment.StatusOutForDelivery,
				shipment.StatusDelivered,
			},
			wantOK: true,
		},
		{
			name:   "regression is unreachable",
			from:   shipment.StatusAtPort,
			to:     shipment.StatusPickupCompleted,
			wantOK: false,
		},
		{
			name:   "nothing leaves delivered",
			from:   shipment.StatusDelivered,
			to:     shipment.StatusPending,
			wantOK: false,
		},
		{
			name:   "nothing leaves cancelled",
			from:   shipment.StatusCancelled,
			to:     shipment.StatusInTransit,
			wantOK: false,
		},
		{
			name:   "hold resumes in a single step",
			from:   shipment.StatusOnHold,
			to:     shipment.StatusAtPort,
			want:   []shipment.Status{shipment.StatusAtPort},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ForwardPath(tt.from, tt.to)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestForwardPathStepsAreEachLegal(t *testing.T) {
	steps, ok := ForwardPath(shipment.StatusPending, shipment.StatusDelivered)
	require.True(t, ok)

	current := shipment.StatusPending
	for _, next := range steps {
		require.NoError(t, ValidateTransition(current, next))
		current = next
	}
	assert.Equal(t, shipment.StatusDelivered, current)
}
