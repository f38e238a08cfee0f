package carrier

type OAuthResponse struct {
	TokenType   string `json:"token_type"`
	ExpiresIn   string `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

type Status struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type Address struct {
	City        string `json:"city"`
	State       string `json:"stateProvince"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

type Location struct {
	Address  Address `json:"address"`
	Terminal string  `json:"terminal"`
}

// Milestone is a single entry in the carrier's event feed. Type is "EVENT"
// for realized milestones and "ESTIMATE" for projected ones; realized
// entries carry GMT date/time, estimates may omit them.
type Milestone struct {
	Location       Location `json:"location"`
	Date           string   `json:"gmtDate"`
	Time           string   `json:"gmtTime"`
	TimeZoneOffset string   `json:"gmtOffset"`
	Status         Status   `json:"status"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
}

type Party struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

type ContainerInfo struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type ShipmentPayload struct {
	InquiryNumber      string        `json:"inquiryNumber"`
	Container          ContainerInfo `json:"container"`
	CurrentStatus      Status        `json:"currentStatus"`
	Carrier            Party         `json:"carrier"`
	Origin             Location      `json:"origin"`
	Destination        Location      `json:"destination"`
	EstimatedDeparture string        `json:"estimatedDeparture"`
	EstimatedArrival   string        `json:"estimatedArrival"`
	Progress           *int          `json:"progressPercent"`
	Milestones         []Milestone   `json:"milestone"`
}

type TrackingResponse struct {
	Shipments []ShipmentPayload `json:"shipment"`
}

type ApiResponse struct {
	Response TrackingResponse `json:"trackResponse"`
}
