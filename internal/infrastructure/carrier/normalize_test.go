package carrier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestone(code, typ, date, clock, city string) Milestone {
	return Milestone{
		Status:   Status{Code: code, Description: code},
		Type:     typ,
		Date:     date,
		Time:     clock,
		Location: Location{Address: Address{City: city, Country: "US"}},
	}
}

func TestNormalizeOrdersRealizedBeforeProjected(t *testing.T) {
	payload := &ShipmentPayload{
		CurrentStatus: Status{Code: "IT", Description: "In Transit"},
		Milestones: []Milestone{
			// Out of order on purpose: newest realized first, then an
			// estimate, then the oldest realized event.
			milestone("IT", "EVENT", "20260310", "090000", "Newark"),
			milestone("DL", "ESTIMATE", "", "", "Jebel Ali"),
			milestone("PU", "EVENT", "20260301", "120000", "Dallas"),
		},
	}

	details := Normalize("VSL-9F2C41AB", payload, true)

	require.Len(t, details.Events, 3)
	assert.Equal(t, "PU", details.Events[0].StatusCode)
	assert.Equal(t, "IT", details.Events[1].StatusCode)
	assert.Equal(t, "DL", details.Events[2].StatusCode)

	assert.True(t, details.Events[0].Actual)
	assert.True(t, details.Events[1].Actual)
	assert.False(t, details.Events[2].Actual)

	// Current location follows the newest realized milestone.
	assert.Equal(t, "Newark, US", details.CurrentLocation)
}

func TestNormalizeSummaryViewKeepsLatestRealizedOnly(t *testing.T) {
	payload := &ShipmentPayload{
		Milestones: []Milestone{
			milestone("PU", "EVENT", "20260301", "120000", "Dallas"),
			milestone("IT", "EVENT", "20260310", "090000", "Newark"),
			milestone("DL", "ESTIMATE", "", "", "Jebel Ali"),
		},
	}

	details := Normalize("VSL-9F2C41AB", payload, false)

	require.Len(t, details.Events, 2)
	assert.Equal(t, "IT", details.Events[0].StatusCode)
	assert.Equal(t, "DL", details.Events[1].StatusCode)
}

func TestNormalizeProgressFallback(t *testing.T) {
	payload := &ShipmentPayload{
		Milestones: []Milestone{
			milestone("PU", "EVENT", "20260301", "120000", "Dallas"),
			milestone("IT", "EVENT", "20260310", "090000", "Newark"),
			milestone("AR", "ESTIMATE", "", "", "Jebel Ali"),
			milestone("DL", "ESTIMATE", "", "", "Jebel Ali"),
		},
	}

	details := Normalize("VSL-9F2C41AB", payload, true)

	// 2 of 4 milestones realized.
	require.NotNil(t, details.Progress)
	assert.Equal(t, 50, *details.Progress)
}

func TestNormalizePrefersCarrierProgress(t *testing.T) {
	progress := 72
	payload := &ShipmentPayload{
		Progress: &progress,
		Milestones: []Milestone{
			milestone("PU", "EVENT", "20260301", "120000", "Dallas"),
		},
	}

	details := Normalize("VSL-9F2C41AB", payload, true)

	require.NotNil(t, details.Progress)
	assert.Equal(t, 72, *details.Progress)
}

func TestNormalizeRejectsOutOfRangeCarrierProgress(t *testing.T) {
	progress := 140
	payload := &ShipmentPayload{
		Progress: &progress,
		Milestones: []Milestone{
			milestone("PU", "EVENT", "20260301", "120000", "Dallas"),
			milestone("DL", "ESTIMATE", "", "", "Jebel Ali"),
		},
	}

	details := Normalize("VSL-9F2C41AB", payload, true)

	require.NotNil(t, details.Progress)
	assert.Equal(t, 50, *details.Progress)
}

func TestNormalizeNoMilestones(t *testing.T) {
	details := Normalize("VSL-9F2C41AB", &ShipmentPayload{}, true)

	assert.Empty(t, details.Events)
	assert.Nil(t, details.Progress)
	assert.Empty(t, details.CurrentLocation)
}

func TestIsRealized(t *testing.T) {
	tests := []struct {
		name string
		m    Milestone
		want bool
	}{
		{name: "event with date", m: Milestone{Type: "EVENT", Date: "20260301"}, want: true},
		{name: "event without date", m: Milestone{Type: "EVENT"}, want: false},
		{name: "estimate with date", m: Milestone{Type: "ESTIMATE", Date: "20260301"}, want: false},
		{name: "planned", m: Milestone{Type: "PLANNED", Date: "20260301"}, want: false},
		{name: "untyped with date", m: Milestone{Date: "20260301"}, want: true},
		{name: "untyped without date", m: Milestone{}, want: false},
		{name: "lowercase type", m: Milestone{Type: "estimate", Date: "20260301"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRealized(tt.m))
		})
	}
}

func TestParseMilestoneTime(t *testing.T) {
	parsed := parseMilestoneTime("20260310", "093015")
	require.NotNil(t, parsed)
	assert.Equal(t, "2026-03-10T09:30:15Z", parsed.Format("2006-01-02T15:04:05Z"))

	midnight := parseMilestoneTime("20260310", "")
	require.NotNil(t, midnight)
	assert.Equal(t, 0, midnight.Hour())

	assert.Nil(t, parseMilestoneTime("", "093015"))
	assert.Nil(t, parseMilestoneTime("not-a-date", ""))
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Newark, NJ, US",
		formatLocation(Location{Address: Address{City: "Newark", State: "NJ", CountryCode: "US"}}))
	assert.Equal(t, "Dubai, United Arab Emirates",
		formatLocation(Location{Address: Address{City: "Dubai", Country: "United Arab Emirates"}}))
	assert.Equal(t, "", formatLocation(Location{}))
}
