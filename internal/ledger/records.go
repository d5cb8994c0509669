package ledger

import (
	"fmt"
	"strings"

	"ai-trip-planner/internal/trip"
)

// AddBudgetLine appends an expense record with a fresh id and returns a
// pointer into the trip's budget slice.
func AddBudgetLine(t *trip.Trip, item string, cost float64, currency, category string) (*trip.BudgetLine, error) {
	if strings.TrimSpace(item) == "" {
		return nil, &trip.ValidationError{Reason: "expense item must not be empty"}
	}
	if cost < 0 {
		return nil, &trip.ValidationError{Reason: "expense cost must not be negative"}
	}
	if currency == "" {
		currency = "HKD"
	}
	t.Budget = append(t.Budget, trip.BudgetLine{
		ID:       trip.NewID(),
		Item:     strings.TrimSpace(item),
		Cost:     cost,
		Currency: strings.ToUpper(currency),
		Category: category,
	})
	return &t.Budget[len(t.Budget)-1], nil
}

// UpdateBudgetLine replaces the line matching its id.
func UpdateBudgetLine(t *trip.Trip, line trip.BudgetLine) error {
	for i := range t.Budget {
		if t.Budget[i].ID == line.ID {
			t.Budget[i] = line
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no expense %s in trip", line.ID)}
}

// DeleteBudgetLine removes the line matching the id.
func DeleteBudgetLine(t *trip.Trip, id string) error {
	for i := range t.Budget {
		if t.Budget[i].ID == id {
			t.Budget = append(t.Budget[:i], t.Budget[i+1:]...)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no expense %s in trip", id)}
}

// AddFlight appends a flight record, assigning a fresh id.
func AddFlight(t *trip.Trip, f trip.FlightInfo) (*trip.FlightInfo, error) {
	if strings.TrimSpace(f.FlightNumber) == "" {
		return nil, &trip.ValidationError{Reason: "flight number must not be empty"}
	}
	f.ID = trip.NewID()
	t.Flights = append(t.Flights, f)
	return &t.Flights[len(t.Flights)-1], nil
}

// UpdateFlight replaces the flight matching its id.
func UpdateFlight(t *trip.Trip, f trip.FlightInfo) error {
	for i := range t.Flights {
		if t.Flights[i].ID == f.ID {
			t.Flights[i] = f
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no flight %s in trip", f.ID)}
}

// DeleteFlight removes the flight matching the id.
func DeleteFlight(t *trip.Trip, id string) error {
	for i := range t.Flights {
		if t.Flights[i].ID == id {
			t.Flights = append(t.Flights[:i], t.Flights[i+1:]...)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no flight %s in trip", id)}
}

// AddHotel appends an accommodation record, assigning a fresh id.
func AddHotel(t *trip.Trip, h trip.HotelInfo) (*trip.HotelInfo, error) {
	if strings.TrimSpace(h.Name) == "" {
		return nil, &trip.ValidationError{Reason: "hotel name must not be empty"}
	}
	h.ID = trip.NewID()
	t.Hotels = append(t.Hotels, h)
	return &t.Hotels[len(t.Hotels)-1], nil
}

// UpdateHotel replaces the hotel matching its id.
func UpdateHotel(t *trip.Trip, h trip.HotelInfo) error {
	for i := range t.Hotels {
		if t.Hotels[i].ID == h.ID {
			t.Hotels[i] = h
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no hotel %s in trip", h.ID)}
}

// DeleteHotel removes the hotel matching the id.
func DeleteHotel(t *trip.Trip, id string) error {
	for i := range t.Hotels {
		if t.Hotels[i].ID == id {
			t.Hotels = append(t.Hotels[:i], t.Hotels[i+1:]...)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no hotel %s in trip", id)}
}

// AddContact appends an emergency contact, assigning a fresh id.
func AddContact(t *trip.Trip, name, number, note string) (*trip.EmergencyContact, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(number) == "" {
		return nil, &trip.ValidationError{Reason: "contact needs a name and a number"}
	}
	t.Contacts = append(t.Contacts, trip.EmergencyContact{
		ID:     trip.NewID(),
		Name:   strings.TrimSpace(name),
		Number: strings.TrimSpace(number),
		Note:   note,
	})
	return &t.Contacts[len(t.Contacts)-1], nil
}

// DeleteContact removes the contact matching the id.
func DeleteContact(t *trip.Trip, id string) error {
	for i := range t.Contacts {
		if t.Contacts[i].ID == id {
			t.Contacts = append(t.Contacts[:i], t.Contacts[i+1:]...)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no contact %s in trip", id)}
}

// AddChecklistItem appends an unchecked checklist entry.
func AddChecklistItem(t *trip.Trip, text string) (*trip.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &trip.ValidationError{Reason: "checklist text must not be empty"}
	}
	t.Checklist = append(t.Checklist, trip.ChecklistItem{
		ID:   trip.NewID(),
		Text: strings.TrimSpace(text),
	})
	return &t.Checklist[len(t.Checklist)-1], nil
}

// ToggleChecklistItem flips the checked state of the entry matching the id
// and returns it.
func ToggleChecklistItem(t *trip.Trip, id string) (*trip.ChecklistItem, error) {
	for i := range t.Checklist {
		if t.Checklist[i].ID == id {
			t.Checklist[i].Checked = !t.Checklist[i].Checked
			return &t.Checklist[i], nil
		}
	}
	return nil, &trip.ValidationError{Reason: fmt.Sprintf("no checklist item %s in trip", id)}
}

// DeleteChecklistItem removes the entry matching the id.
func DeleteChecklistItem(t *trip.Trip, id string) error {
	for i := range t.Checklist {
		if t.Checklist[i].ID == id {
			t.Checklist = append(t.Checklist[:i], t.Checklist[i+1:]...)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no checklist item %s in trip", id)}
}
