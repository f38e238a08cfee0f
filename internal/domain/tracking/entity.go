package tracking

import "time"

// Details is the normalized projection of a carrier tracking feed. It is
// never persisted; the UI consumes it as-is.
type Details struct {
	TrackingNumber     string       `json:"tracking_number"`
	ContainerNumber    string       `json:"container_number,omitempty"`
	ShipmentStatus     string       `json:"shipment_status"`
	CurrentLocation    string       `json:"current_location,omitempty"`
	EstimatedDeparture *time.Time   `json:"estimated_departure,omitempty"`
	EstimatedArrival   *time.Time   `json:"estimated_arrival,omitempty"`
	Progress           *int         `json:"progress"` // 0-100 or null
	Company            *CompanyInfo `json:"company,omitempty"`
	Origin             string       `json:"origin,omitempty"`
	Destination        string       `json:"destination,omitempty"`
	ContainerType      string       `json:"container_type,omitempty"`
	Events             []Event      `json:"events"`
}

// Event is a single milestone in the shipment's carrier-reported journey.
// Actual distinguishes realized history from projected future milestones;
// consumers infer "completed" purely from this flag, never from timestamp
// comparison, so the adapter owns temporal ordering.
type Event struct {
	Status      string     `json:"status"`
	StatusCode  string     `json:"status_code,omitempty"`
	Location    string     `json:"location,omitempty"`
	Terminal    string     `json:"terminal,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Actual      bool       `json:"actual"`
	Description string     `json:"description,omitempty"`
}

// CompanyInfo identifies the shipping company reported by the carrier.
type CompanyInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	URL   string `json:"url,omitempty"`
}
