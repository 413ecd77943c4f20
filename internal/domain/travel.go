package domain

type TransportMode string

const (
	TransportBus    TransportMode = "bus"
	TransportTrain  TransportMode = "train"
	TransportFlight TransportMode = "flight"
	TransportAny    TransportMode = "any"
)

type AccommodationType string

const (
	AccommodationHostel     AccommodationType = "hostel"
	AccommodationHotel      AccommodationType = "hotel"
	AccommodationGuesthouse AccommodationType = "guesthouse"
)

// TripPreferences are the user-supplied trip parameters. JSON tags match the
// wire format shared with the browser client and the stored blob.
type TripPreferences struct {
	// Source is the trip origin and is the only required field.
	Source string `json:"source"`
	// Destination is optional; empty means "let the planner choose".
	Destination string `json:"destination"`
	// Dates is a free-form date string; empty means unspecified.
	Dates         string            `json:"dates"`
	Duration      int               `json:"duration"` // days, 1-14
	Budget        int               `json:"budget"`   // ₹, 1000-30000
	Interests     []string          `json:"interests"`
	GroupSize     int               `json:"groupSize"` // 1-6
	Transport     TransportMode     `json:"transport"`
	Accommodation AccommodationType `json:"accommodation"`
}

// Activity is one itinerary entry. Time is a free-text label, not a parsed
// time. A zero cost means "free" and is suppressed by consumers.
type Activity struct {
	Time        string  `json:"time"`
	Activity    string  `json:"activity"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

type ItineraryDay struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// BudgetBreakdown carries the planner's per-category amounts. Total is trusted
// as-is and never reconciled against the category sum.
type BudgetBreakdown struct {
	Travel     float64 `json:"travel"`
	Stay       float64 `json:"stay"`
	Food       float64 `json:"food"`
	Activities float64 `json:"activities"`
	Total      float64 `json:"total"`
}

type AccommodationInfo struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	CostPerNight float64 `json:"costPerNight"`
}

// Itinerary is the generated plan. It is produced by NormalizeItinerary from
// untrusted external text and is immutable afterwards.
type Itinerary struct {
	Destination         string             `json:"destination"`
	Summary             string             `json:"summary"`
	Days                []ItineraryDay     `json:"days"`
	Budget              BudgetBreakdown    `json:"budget"`
	Tips                []string           `json:"tips"`
	FoodRecommendations []string           `json:"foodRecommendations"`
	Accommodation       *AccommodationInfo `json:"accommodation,omitempty"`
}

// SavedTrip is a persisted pairing of the preferences that produced an
// itinerary and the itinerary itself. Records are never mutated after creation.
type SavedTrip struct {
	ID        TripID          `json:"id"`
	SavedAt   string          `json:"savedAt"` // RFC 3339
	FormData  TripPreferences `json:"formData"`
	Itinerary Itinerary       `json:"itinerary"`
}
