package lifecycle

import (
	"fmt"

	"vehicle-shipping-backend/internal/domain/shipment"
	appErrors "vehicle-shipping-backend/pkg/errors"
)

// State machine for shipment status transitions. Every write that changes a
// shipment's status goes through ValidateTransition; there is no advisory
// path around it.
var validTransitions = map[shipment.Status][]shipment.Status{
	shipment.StatusPending: {
		shipment.StatusQuoteRequested,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusQuoteRequested: {
		shipment.StatusQuoteApproved,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusQuoteApproved: {
		shipment.StatusPickupScheduled,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusPickupScheduled: {
		shipment.StatusPickupCompleted,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusPickupCompleted: {
		shipment.StatusInTransit,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusInTransit: {
		shipment.StatusAtPort,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusAtPort: {
		shipment.StatusLoadedOnVessel,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusLoadedOnVessel: {
		shipment.StatusInTransitOcean,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusInTransitOcean: {
		shipment.StatusArrivedAtDestination,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusArrivedAtDestination: {
		shipment.StatusCustomsClearance,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusCustomsClearance: {
		shipment.StatusOutForDelivery,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	shipment.StatusOutForDelivery: {
		shipment.StatusDelivered,
		shipment.StatusOnHold,
		shipment.StatusCancelled,
	},
	// ON_HOLD resumes to any active state or cancels. The held-from state is
	// not persisted; the admin picks the resume target and the active-only
	// restriction keeps terminal jumps out.
	shipment.StatusOnHold: {
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
		shipment.StatusCancelled,
	},
	shipment.StatusDelivered: {
		// Terminal state - no transitions
	},
	shipment.StatusCancelled: {
		// Terminal state - no transitions
	},
}

// Canonical progress per status. ON_HOLD and CANCELLED are absent on
// purpose: they freeze whatever progress the shipment had.
var defaultProgress = map[shipment.Status]int{
	shipment.StatusPending:              0,
	shipment.StatusQuoteRequested:       5,
	shipment.StatusQuoteApproved:        10,
	shipment.StatusPickupScheduled:      15,
	shipment.StatusPickupCompleted:      25,
	shipment.StatusInTransit:            35,
	shipment.StatusAtPort:               45,
	shipment.StatusLoadedOnVessel:       55,
	shipment.StatusInTransitOcean:       65,
	shipment.StatusArrivedAtDestination: 75,
	shipment.StatusCustomsClearance:     85,
	shipment.StatusOutForDelivery:       95,
	shipment.StatusDelivered:            100,
}

// The main-line progression from booking to delivery. Used to fill in stages
// a carrier feed skipped over; ON_HOLD and CANCELLED sit outside it.
var happyPath = []shipment.Status{
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

var activeStatuses = []shipment.Status{
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
	shipment.StatusOnHold,
}

// IsKnown reports whether s is a recognized lifecycle status.
func IsKnown(s shipment.Status) bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s shipment.Status) bool {
	next, ok := validTransitions[s]
	return ok && len(next) == 0
}

// IsActive reports whether s counts as "in flight". ON_HOLD is active:
// paused, not finished.
func IsActive(s shipment.Status) bool {
	for _, a := range activeStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// ActiveStatuses returns the allow-list of non-terminal statuses. This is
// the single definition of "active"; list filters and statistics both use it.
func ActiveStatuses() []shipment.Status {
	out := make([]shipment.Status, len(activeStatuses))
	copy(out, activeStatuses)
	return out
}

// ValidateTransition checks if a status transition is allowed
func ValidateTransition(currentStatus, newStatus shipment.Status) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			shipment.ErrInvalidStatus,
		)
	}
	if !IsKnown(newStatus) {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown target status: %s", newStatus),
			shipment.ErrInvalidStatus,
		)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		shipment.ErrInvalidStatusTransition,
	)
}

// ForwardPath returns the transitions needed to move from one status to
// another, one legal step at a time. A directly-legal move is a single step;
// a target further ahead on the main line is reached through every stage in
// between. The second return is false when the target cannot be reached
// without a regression or a terminal escape.
func ForwardPath(from, to shipment.Status) ([]shipment.Status, bool) {
	if from == to {
		return nil, true
	}
	if ValidateTransition(from, to) == nil {
		return []shipment.Status{to}, true
	}

	fromIdx := happyPathIndex(from)
	toIdx := happyPathIndex(to)
	if fromIdx < 0 || toIdx <= fromIdx {
		return nil, false
	}

	steps := make([]shipment.Status, 0, toIdx-fromIdx)
	for i := fromIdx + 1; i <= toIdx; i++ {
		steps = append(steps, happyPath[i])
	}
	return steps, true
}

func happyPathIndex(s shipment.Status) int {
	for i, stage := range happyPath {
		if stage == s {
			return i
		}
	}
	return -1
}

// AllowedTransitions returns allowed next statuses
func AllowedTransitions(currentStatus shipment.Status) []shipment.Status {
	return validTransitions[currentStatus]
}

// DefaultProgress returns the canonical completion percentage for a status.
// For ON_HOLD and CANCELLED it returns current unchanged.
func DefaultProgress(s shipment.Status, current int) int {
	if p, ok := defaultProgress[s]; ok {
		return p
	}
	return current
}

// ResolveProgress computes the progress to store for a transition into
// newStatus. A nil override takes the canonical value; an explicit override
// must lie within [canonical, 100] and may never fall below the current
// progress.
func ResolveProgress(newStatus shipment.Status, current int, override *int) (int, error) {
	canonical := DefaultProgress(newStatus, current)

	// Resuming from ON_HOLD can land on a status whose canonical value is
	// below the frozen progress; monotonicity wins.
	target := canonical
	if target < current {
		target = current
	}
	if override != nil {
		target = *override
	}

	if target < 0 || target > 100 {
		return 0, appErrors.NewAppError(
			"INVALID_PROGRESS",
			fmt.Sprintf("Progress %d is out of range", target),
			shipment.ErrProgressRegression,
		)
	}
	if target < current {
		return 0, appErrors.NewAppError(
			"PROGRESS_REGRESSION",
			fmt.Sprintf("Progress cannot decrease from %d to %d", current, target),
			shipment.ErrProgressRegression,
		)
	}
	if override != nil && target < canonical {
		return 0, appErrors.NewAppError(
			"INVALID_PROGRESS",
			fmt.Sprintf("Progress %d is below the floor %d for status %s", target, canonical, newStatus),
			shipment.ErrProgressRegression,
		)
	}

	return target, nil
}
