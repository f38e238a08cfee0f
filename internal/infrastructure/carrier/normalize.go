package carrier

import (
	"sort"
	"strings"
	"time"

	"vehicle-shipping-backend/internal/domain/tracking"
)

const milestoneTimeLayout = "20060102 150405"

// Normalize maps a raw carrier shipment payload onto the uniform tracking
// projection. The result owns temporal ordering: realized events come first,
// sorted by timestamp ascending, followed by projected events in carrier
// order. Consumers read completion off Event.Actual alone.
func Normalize(trackingNumber string, payload *ShipmentPayload, withRoute bool) *tracking.Details {
	details := &tracking.Details{
		TrackingNumber:  trackingNumber,
		ContainerNumber: payload.Container.Number,
		ContainerType:   payload.Container.Type,
		ShipmentStatus:  statusLabel(payload.CurrentStatus),
		Origin:          formatLocation(payload.Origin),
		Destination:     formatLocation(payload.Destination),
	}

	if payload.Carrier.Name != "" {
		details.Company = &tracking.CompanyInfo{
			Name:  payload.Carrier.Name,
			Phone: payload.Carrier.Phone,
			URL:   payload.Carrier.URL,
		}
	}

	if t := parseMilestoneTime(payload.EstimatedDeparture, ""); t != nil {
		details.EstimatedDeparture = t
	}
	if t := parseMilestoneTime(payload.EstimatedArrival, ""); t != nil {
		details.EstimatedArrival = t
	}

	realized, projected := splitMilestones(payload.Milestones)

	// Realized history ordered oldest first; entries without a parseable
	// timestamp sink to the front so the latest known position stays last.
	sort.SliceStable(realized, func(i, j int) bool {
		ti, tj := realized[i].Timestamp, realized[j].Timestamp
		if ti == nil {
			return tj != nil
		}
		if tj == nil {
			return false
		}
		return ti.Before(*tj)
	})

	events := append(realized, projected...)
	if !withRoute && len(realized) > 0 {
		// Summary view: latest realized milestone plus the projected tail.
		events = append([]tracking.Event{realized[len(realized)-1]}, projected...)
	}
	details.Events = events

	if len(realized) > 0 {
		last := realized[len(realized)-1]
		details.CurrentLocation = last.Location
	}

	if payload.Progress != nil && *payload.Progress >= 0 && *payload.Progress <= 100 {
		p := *payload.Progress
		details.Progress = &p
	} else if total := len(realized) + len(projected); total > 0 {
		// Carrier gave no figure; fall back to the realized share of the
		// milestone route.
		p := len(realized) * 100 / total
		details.Progress = &p
	}

	return details
}

func splitMilestones(milestones []Milestone) (realized, projected []tracking.Event) {
	for _, m := range milestones {
		event := tracking.Event{
			Status:      statusLabel(m.Status),
			StatusCode:  m.Status.Code,
			Location:    formatLocation(m.Location),
			Terminal:    m.Location.Terminal,
			Timestamp:   parseMilestoneTime(m.Date, m.Time),
			Actual:      isRealized(m),
			Description: m.Description,
		}

		if event.Actual {
			realized = append(realized, event)
		} else {
			projected = append(projected, event)
		}
	}
	return realized, projected
}

// isRealized distinguishes history from projection. Carriers are not
// consistent here: some tag estimates with a type, others just omit the
// timestamp on future milestones.
func isRealized(m Milestone) bool {
	switch strings.ToUpper(m.Type) {
	case "ESTIMATE", "ESTIMATED", "PLANNED":
		return false
	case "EVENT", "ACTUAL":
		return m.Date != ""
	}
	return m.Date != ""
}

func parseMilestoneTime(date, clock string) *time.Time {
	if date == "" {
		return nil
	}
	if clock == "" {
		clock = "000000"
	}
	t, err := time.Parse(milestoneTimeLayout, date+" "+clock)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func statusLabel(s Status) string {
	if s.Description != "" {
		return s.Description
	}
	return s.Code
}

func formatLocation(l Location) string {
	parts := make([]string, 0, 3)
	if l.Address.City != "" {
		parts = append(parts, l.Address.City)
	}
	if l.Address.State != "" {
		parts = append(parts, l.Address.State)
	}
	if l.Address.Country != "" {
		parts = append(parts, l.Address.Country)
	} else if l.Address.CountryCode != "" {
		parts = append(parts, l.Address.CountryCode)
	}
	return strings.Join(parts, ", ")
}
