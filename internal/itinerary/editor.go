// Package itinerary implements structural edits to a trip's day list and each
// day's activity list. Every mutation re-establishes the two invariants: items
// within a day stay sorted ascending by time string, and day ids stay
// contiguous 1..N.
package itinerary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-trip-planner/internal/trip"
)

const (
	defaultItemTime     = "12:00"
	defaultItemTitle    = "New Activity"
	defaultItemLocation = "Location TBD"
)

// Editor mutates a single trip aggregate in place. Persistence stays with the
// repository; callers save after a successful edit.
type Editor struct {
	Trip *trip.Trip
}

// NewEditor returns an editor over the given trip.
func NewEditor(t *trip.Trip) *Editor {
	return &Editor{Trip: t}
}

// AddItem inserts a templated activity into the given day and re-sorts.
func (e *Editor) AddItem(dayID int) (*trip.ItineraryItem, error) {
	day := e.Trip.Day(dayID)
	if day == nil {
		return nil, &trip.ValidationError{Reason: fmt.Sprintf("no day %d in trip", dayID)}
	}

	item := trip.ItineraryItem{
		ID:       fmt.Sprintf("%d-%s", dayID, trip.NewID()),
		Time:     defaultItemTime,
		Title:    defaultItemTitle,
		Location: defaultItemLocation,
		Type:     trip.TypeSightseeing,
		NavQuery: e.Trip.Destination,
		Tags:     []trip.Tag{},
	}
	day.Items = append(day.Items, item)
	sortItems(day.Items)

	for i := range day.Items {
		if day.Items[i].ID == item.ID {
			return &day.Items[i], nil
		}
	}
	return nil, fmt.Errorf("inserted item vanished from day %d", dayID)
}

// UpdateItem replaces the item matching its id and re-sorts the day.
func (e *Editor) UpdateItem(dayID int, updated trip.ItineraryItem) error {
	day := e.Trip.Day(dayID)
	if day == nil {
		return &trip.ValidationError{Reason: fmt.Sprintf("no day %d in trip", dayID)}
	}
	for i := range day.Items {
		if day.Items[i].ID == updated.ID {
			day.Items[i] = updated
			sortItems(day.Items)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no item %s on day %d", updated.ID, dayID)}
}

// DeleteItem removes an item by id. Order is preserved, so no re-sort.
func (e *Editor) DeleteItem(dayID int, itemID string) error {
	day := e.Trip.Day(dayID)
	if day == nil {
		return &trip.ValidationError{Reason: fmt.Sprintf("no day %d in trip", dayID)}
	}
	for i := range day.Items {
		if day.Items[i].ID == itemID {
			day.Items = append(day.Items[:i], day.Items[i+1:]...)
			return nil
		}
	}
	return &trip.ValidationError{Reason: fmt.Sprintf("no item %s on day %d", itemID, dayID)}
}

// AddDay appends a new day dated one calendar day after the last day. When
// the last date fails to parse, today's date is used instead. The new day is
// returned so callers can select it.
func (e *Editor) AddDay() *trip.DayPlan {
	nextDate := time.Now()
	if n := len(e.Trip.Itinerary); n > 0 {
		if parsed, err := parseDayDate(e.Trip.Itinerary[n-1].Date); err == nil {
			nextDate = parsed.AddDate(0, 0, 1)
		}
	}

	day := trip.DayPlan{
		DayID: len(e.Trip.Itinerary) + 1,
		Date:  nextDate.Format("2006-01-02"),
		Items: []trip.ItineraryItem{},
	}
	e.Trip.Itinerary = append(e.Trip.Itinerary, day)
	return &e.Trip.Itinerary[len(e.Trip.Itinerary)-1]
}

// DeleteDay removes a day and renumbers the remaining days 1..N in their
// existing order. Removing the last remaining day is rejected.
func (e *Editor) DeleteDay(dayID int) error {
	if len(e.Trip.Itinerary) <= 1 {
		return &trip.PreconditionError{Reason: "must keep at least one day"}
	}
	idx := -1
	for i := range e.Trip.Itinerary {
		if e.Trip.Itinerary[i].DayID == dayID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &trip.ValidationError{Reason: fmt.Sprintf("no day %d in trip", dayID)}
	}

	e.Trip.Itinerary = append(e.Trip.Itinerary[:idx], e.Trip.Itinerary[idx+1:]...)
	for i := range e.Trip.Itinerary {
		e.Trip.Itinerary[i].DayID = i + 1
	}
	return nil
}

// UpdateDayDate sets a day's date string. Only non-empty is enforced.
func (e *Editor) UpdateDayDate(dayID int, newDate string) error {
	if strings.TrimSpace(newDate) == "" {
		return &trip.ValidationError{Reason: "date must not be empty"}
	}
	day := e.Trip.Day(dayID)
	if day == nil {
		return &trip.ValidationError{Reason: fmt.Sprintf("no day %d in trip", dayID)}
	}
	day.Date = newDate
	return nil
}

// sortItems orders a day's items ascending by time string. The format is
// fixed-width HH:MM, so lexicographic comparison is time order. The sort is
// stable: items sharing a time keep their insertion order.
func sortItems(items []trip.ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})
}

// parseDayDate accepts the stored date form, tolerating a trailing weekday
// annotation such as "2023-11-15 (Wed)".
func parseDayDate(date string) (time.Time, error) {
	datePart := strings.SplitN(strings.TrimSpace(date), " ", 2)[0]
	return time.Parse("2006-01-02", datePart)
}
