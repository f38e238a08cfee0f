package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domainShipment "vehicle-shipping-backend/internal/domain/shipment"
	domainTracking "vehicle-shipping-backend/internal/domain/tracking"
	"vehicle-shipping-backend/internal/logger"
	"vehicle-shipping-backend/internal/usecase/shipment"
)

// carrierStatusMap translates carrier milestone codes into shipment
// statuses. Codes outside the map leave the shipment untouched.
var carrierStatusMap = map[string]domainShipment.Status{
	"PU":  domainShipment.StatusPickupCompleted,
	"IT":  domainShipment.StatusInTransit,
	"AP":  domainShipment.StatusAtPort,
	"LV":  domainShipment.StatusLoadedOnVessel,
	"OW":  domainShipment.StatusInTransitOcean,
	"AR":  domainShipment.StatusArrivedAtDestination,
	"CC":  domainShipment.StatusCustomsClearance,
	"OFD": domainShipment.StatusOutForDelivery,
	"DL":  domainShipment.StatusDelivered,
}

// TrackingRefreshWorker polls the carrier for every active shipment and
// folds legal status advances back into the lifecycle.
// maxConcurrentFetches bounds the fan-out against the carrier API so a
// large active fleet does not open hundreds of simultaneous requests.
const maxConcurrentFetches = 5

type TrackingRefreshWorker struct {
	shipments *shipment.Service
	source    domainTracking.Source
	schedule  string
	guard     runGuard
}

func NewTrackingRefreshWorker(shipments *shipment.Service, source domainTracking.Source, schedule string) *TrackingRefreshWorker {
	return &TrackingRefreshWorker{
		shipments: shipments,
		source:    source,
		schedule:  schedule,
	}
}

func (w *TrackingRefreshWorker) Schedule() string {
	return w.schedule
}

func (w *TrackingRefreshWorker) Execute() {
	if !w.guard.tryAcquire() {
		logger.Warn("Tracking refresh still running, skipping tick")
		return
	}
	defer w.guard.release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	logger.Info("Starting tracking refresh")

	active, err := w.shipments.ListActiveShipments(ctx)
	if err != nil {
		logger.Error("Tracking refresh failed to list shipments", zap.Error(err))
		return
	}

	var toCheck []*domainShipment.Shipment
	for _, sh := range active {
		if w.shouldCheck(sh) {
			toCheck = append(toCheck, sh)
		}
	}

	if len(toCheck) == 0 {
		logger.Info("No shipments due for tracking refresh")
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)
	for _, sh := range toCheck {
		wg.Add(1)
		sem <- struct{}{}
		go func(sh *domainShipment.Shipment) {
			defer wg.Done()
			defer func() { <-sem }()
			w.refresh(ctx, sh)
		}(sh)
	}
	wg.Wait()

	logger.Info("Tracking refresh completed", zap.Int("checked", len(toCheck)))
}

// shouldCheck throttles carrier calls: recently touched shipments wait a
// beat before the next poll.
func (w *TrackingRefreshWorker) shouldCheck(sh *domainShipment.Shipment) bool {
	const recheckDelay = 15 * time.Minute
	return time.Since(sh.UpdatedAt) > recheckDelay
}

func (w *TrackingRefreshWorker) refresh(ctx context.Context, sh *domainShipment.Shipment) {
	details, err := w.source.Fetch(ctx, sh.TrackingNumber, false)
	if err != nil {
		if errors.Is(err, domainTracking.ErrNoData) {
			// Carrier does not know the number yet; nothing to fold in.
			return
		}
		logger.Warn("Tracking refresh fetch failed",
			zap.String("tracking_number", sh.TrackingNumber),
			zap.Error(err),
		)
		return
	}

	status, ok := latestCarrierStatus(details)
	if !ok {
		return
	}

	if err := w.shipments.ApplyCarrierStatus(ctx, sh.ID, status); err != nil {
		logger.Warn("Tracking refresh could not apply status",
			zap.String("shipment_id", sh.ID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

// latestCarrierStatus picks the newest realized event that maps to a known
// shipment status. Projected events never drive the lifecycle.
func latestCarrierStatus(details *domainTracking.Details) (domainShipment.Status, bool) {
	for i := len(details.Events) - 1; i >= 0; i-- {
		event := details.Events[i]
		if !event.Actual {
			continue
		}
		if status, ok := carrierStatusMap[event.StatusCode]; ok {
			return status, true
		}
	}
	return "", false
}
