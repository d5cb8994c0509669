package ledger

import (
	"errors"
	"testing"

	"ai-trip-planner/internal/trip"
)

func TestBudgetLineCRUD(t *testing.T) {
	tr := &trip.Trip{Destination: "TOKYO"}

	line, err := AddBudgetLine(tr, "Lunch", 1200, "jpy", "Food")
	if err != nil {
		t.Fatalf("AddBudgetLine failed: %v", err)
	}
	if line.ID == "" {
		t.Error("Expected a fresh id")
	}
	if line.Currency != "JPY" {
		t.Errorf("Currency = %q, want upper-cased JPY", line.Currency)
	}

	updated := *line
	updated.Cost = 1500
	if err := UpdateBudgetLine(tr, updated); err != nil {
		t.Fatalf("UpdateBudgetLine failed: %v", err)
	}
	if tr.Budget[0].Cost != 1500 {
		t.Errorf("Cost = %v after update, want 1500", tr.Budget[0].Cost)
	}

	if err := DeleteBudgetLine(tr, line.ID); err != nil {
		t.Fatalf("DeleteBudgetLine failed: %v", err)
	}
	if len(tr.Budget) != 0 {
		t.Errorf("Expected empty budget after delete, got %d lines", len(tr.Budget))
	}

	var verr *trip.ValidationError
	if err := DeleteBudgetLine(tr, "missing"); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for unknown id, got %v", err)
	}
}

func TestAddBudgetLine_Invalid(t *testing.T) {
	tr := &trip.Trip{}

	if _, err := AddBudgetLine(tr, "  ", 10, "HKD", "Food"); err == nil {
		t.Error("Expected error for empty item")
	}
	if _, err := AddBudgetLine(tr, "Lunch", -5, "HKD", "Food"); err == nil {
		t.Error("Expected error for negative cost")
	}
	if len(tr.Budget) != 0 {
		t.Errorf("Invalid adds must not modify the trip, got %d lines", len(tr.Budget))
	}
}

func TestAddBudgetLine_DefaultCurrency(t *testing.T) {
	tr := &trip.Trip{}
	line, err := AddBudgetLine(tr, "Taxi", 80, "", "Transport")
	if err != nil {
		t.Fatalf("AddBudgetLine failed: %v", err)
	}
	if line.Currency != "HKD" {
		t.Errorf("Currency = %q, want home-currency default HKD", line.Currency)
	}
}

func TestFlightCRUD(t *testing.T) {
	tr := &trip.Trip{}

	f, err := AddFlight(tr, trip.FlightInfo{
		FlightNumber:     "CX520",
		DepartureAirport: "HKG",
		ArrivalAirport:   "NRT",
		DepartureDate:    "2024-01-01",
	})
	if err != nil {
		t.Fatalf("AddFlight failed: %v", err)
	}
	if f.ID == "" {
		t.Error("Expected a fresh id")
	}

	updated := *f
	updated.Gate = "24"
	if err := UpdateFlight(tr, updated); err != nil {
		t.Fatalf("UpdateFlight failed: %v", err)
	}
	if tr.Flights[0].Gate != "24" {
		t.Errorf("Gate = %q after update, want 24", tr.Flights[0].Gate)
	}

	if err := DeleteFlight(tr, f.ID); err != nil {
		t.Fatalf("DeleteFlight failed: %v", err)
	}
	if len(tr.Flights) != 0 {
		t.Error("Expected no flights after delete")
	}

	if _, err := AddFlight(tr, trip.FlightInfo{}); err == nil {
		t.Error("Expected error for missing flight number")
	}
}

func TestHotelCRUD(t *testing.T) {
	tr := &trip.Trip{}

	h, err := AddHotel(tr, trip.HotelInfo{
		Name:     "Park Hotel",
		Address:  "Shiodome",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-03",
	})
	if err != nil {
		t.Fatalf("AddHotel failed: %v", err)
	}
	if h.ID == "" {
		t.Error("Expected a fresh id")
	}
	if got := Nights(h.CheckIn, h.CheckOut); got != 2 {
		t.Errorf("Nights = %d, want 2", got)
	}

	updated := *h
	updated.BookingRef = "ABC123"
	if err := UpdateHotel(tr, updated); err != nil {
		t.Fatalf("UpdateHotel failed: %v", err)
	}
	if tr.Hotels[0].BookingRef != "ABC123" {
		t.Errorf("BookingRef = %q after update", tr.Hotels[0].BookingRef)
	}

	if err := DeleteHotel(tr, h.ID); err != nil {
		t.Fatalf("DeleteHotel failed: %v", err)
	}
	if len(tr.Hotels) != 0 {
		t.Error("Expected no hotels after delete")
	}

	if _, err := AddHotel(tr, trip.HotelInfo{}); err == nil {
		t.Error("Expected error for missing hotel name")
	}
}

func TestContactCRUD(t *testing.T) {
	tr := &trip.Trip{}

	c, err := AddContact(tr, "Hotel Front Desk", "+81 3 1234 5678", "24h")
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	if c.ID == "" {
		t.Error("Expected a fresh id")
	}

	// Manual contacts coexist with seeded ones.
	tr.Contacts = SeedEmergencyContacts(tr.Contacts, "Japan")
	if len(tr.Contacts) != 3 {
		t.Fatalf("Expected manual contact plus 2 seeded, got %d", len(tr.Contacts))
	}

	if err := DeleteContact(tr, c.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if len(tr.Contacts) != 2 {
		t.Errorf("Expected 2 contacts after delete, got %d", len(tr.Contacts))
	}

	if _, err := AddContact(tr, "", "110", ""); err == nil {
		t.Error("Expected error for missing name")
	}
	if _, err := AddContact(tr, "Police", " ", ""); err == nil {
		t.Error("Expected error for missing number")
	}
}

func TestChecklistCRUD(t *testing.T) {
	tr := &trip.Trip{}

	item, err := AddChecklistItem(tr, "Passport")
	if err != nil {
		t.Fatalf("AddChecklistItem failed: %v", err)
	}
	if item.Checked {
		t.Error("New checklist items start unchecked")
	}

	toggled, err := ToggleChecklistItem(tr, item.ID)
	if err != nil {
		t.Fatalf("ToggleChecklistItem failed: %v", err)
	}
	if !toggled.Checked {
		t.Error("Expected item checked after toggle")
	}
	toggled, err = ToggleChecklistItem(tr, item.ID)
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if toggled.Checked {
		t.Error("Expected item unchecked after second toggle")
	}

	// Manual items participate in the AI-merge dedupe.
	tr.Checklist = MergeChecklist(tr.Checklist, []string{"passport", "Sunscreen"})
	if len(tr.Checklist) != 2 {
		t.Fatalf("Expected dedupe against manual item, got %d entries", len(tr.Checklist))
	}

	if err := DeleteChecklistItem(tr, item.ID); err != nil {
		t.Fatalf("DeleteChecklistItem failed: %v", err)
	}
	if len(tr.Checklist) != 1 {
		t.Errorf("Expected 1 entry after delete, got %d", len(tr.Checklist))
	}

	if _, err := AddChecklistItem(tr, "  "); err == nil {
		t.Error("Expected error for empty text")
	}
	if _, err := ToggleChecklistItem(tr, "missing"); err == nil {
		t.Error("Expected error for unknown id")
	}
}
