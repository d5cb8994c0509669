package trip

import "github.com/google/uuid"

// ItemType categorizes an itinerary activity.
type ItemType string

const (
	TypeSightseeing ItemType = "SIGHTSEEING"
	TypeFood        ItemType = "FOOD"
	TypeTransport   ItemType = "TRANSPORT"
	TypeShopping    ItemType = "SHOPPING"
	TypeHotel       ItemType = "HOTEL"
	TypeMisc        ItemType = "MISC"
)

// Tag is a short user-defined colored label on an itinerary item.
type Tag struct {
	Label string `json:"label"`
	Color string `json:"color"` // "red" | "gold" | "gray"
}

// ItineraryItem is one scheduled activity within a day.
type ItineraryItem struct {
	ID          string   `json:"id"`
	Time        string   `json:"time"` // HH:MM, fixed width so lexicographic order is time order
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Type        ItemType `json:"type"`
	Description string   `json:"description,omitempty"`
	Tips        []string `json:"tips,omitempty"`
	Tags        []Tag    `json:"tags,omitempty"`
	Weather     string   `json:"weather,omitempty"`
	NavQuery    string   `json:"navQuery"`
	MapsURL     string   `json:"mapsUrl,omitempty"`
}

// ForecastEntry is one day of an AI-produced multi-day forecast.
type ForecastEntry struct {
	Date string `json:"date"`
	Icon string `json:"icon"`
	Temp string `json:"temp"`
}

// DayPlan is one calendar day within a trip. Day ids are 1-based and
// contiguous; they are renumbered whenever a day is removed.
type DayPlan struct {
	DayID          int             `json:"dayId"`
	Date           string          `json:"date"`
	WeatherSummary string          `json:"weatherSummary,omitempty"`
	Forecast       []ForecastEntry `json:"forecast,omitempty"`
	Pace           string          `json:"pace,omitempty"`
	LogicWarning   string          `json:"logicWarning,omitempty"`
	Items          []ItineraryItem `json:"items"`

	// BackupItems holds the item list captured immediately before the most
	// recent enrichment call. It is the single undo level.
	BackupItems []ItineraryItem `json:"backupItems,omitempty"`
}

// BudgetLine is one expense record.
type BudgetLine struct {
	ID       string  `json:"id"`
	Item     string  `json:"item"`
	Cost     float64 `json:"cost"`
	Currency string  `json:"currency"`
	Category string  `json:"category"`
}

// FlightInfo is one flight record.
type FlightInfo struct {
	ID               string `json:"id"`
	FlightNumber     string `json:"flightNumber"`
	DepartureDate    string `json:"departureDate"`
	DepartureTime    string `json:"departureTime"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalDate      string `json:"arrivalDate"`
	ArrivalTime      string `json:"arrivalTime"`
	ArrivalAirport   string `json:"arrivalAirport"`
	Gate             string `json:"gate,omitempty"`
	Terminal         string `json:"terminal,omitempty"`
	BookingRef       string `json:"bookingRef,omitempty"`
}

// HotelInfo is one accommodation record.
type HotelInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	BookingRef string `json:"bookingRef"`
}

// EmergencyContact is one emergency phone entry.
type EmergencyContact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Note   string `json:"note"`
}

// ChecklistItem is one packing checklist entry.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Trip is a complete planning unit for one journey.
type Trip struct {
	ID          string             `json:"id"`
	Destination string             `json:"destination"`
	StartDate   string             `json:"startDate"`
	Itinerary   []DayPlan          `json:"itinerary"`
	Flights     []FlightInfo       `json:"flights"`
	Hotels      []HotelInfo        `json:"hotels"`
	Budget      []BudgetLine       `json:"budget"`
	Contacts    []EmergencyContact `json:"contacts"`
	TotalBudget float64            `json:"totalBudget"`
	Checklist   []ChecklistItem    `json:"checklist"`
	Notes       string             `json:"notes,omitempty"`
	CoverImage  string             `json:"coverImage,omitempty"`
}

// NewID generates an opaque unique id for trips and records.
func NewID() string {
	return uuid.New().String()
}

// Day returns the day plan with the given id, or nil.
func (t *Trip) Day(dayID int) *DayPlan {
	for i := range t.Itinerary {
		if t.Itinerary[i].DayID == dayID {
			return &t.Itinerary[i]
		}
	}
	return nil
}

// LastLocation returns the location of the day's latest item that has one,
// falling back to the trip destination. It anchors nearby-venue lookups.
func (t *Trip) LastLocation(dayID int) string {
	if day := t.Day(dayID); day != nil {
		for i := len(day.Items) - 1; i >= 0; i-- {
			if day.Items[i].Location != "" {
				return day.Items[i].Location
			}
		}
	}
	return t.Destination
}
