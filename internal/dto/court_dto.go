package dto

type CourtRequest struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	MapsURL    string   `json:"maps_url"`
	FixedPrice *float64 `json:"fixed_price"`
}

type CreateCourtResponse struct {
	CourtID int64  `json:"court_id"`
	Message string `json:"message"`
}

// SelectOption is one entry of a searchable select widget. Value is a string
// on the wire regardless of the underlying key type.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type OptionsResponse struct {
	Clients []SelectOption `json:"clients"`
	Coaches []SelectOption `json:"coaches"`
	Courts  []SelectOption `json:"courts"`
}
