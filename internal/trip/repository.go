package trip

import (
	"encoding/json"
	"fmt"
	"time"

	"ai-trip-planner/internal/store"
)

// DefaultBudgetTarget is the budget target assigned to newly created and
// migrated trips, in the home currency.
const DefaultBudgetTarget = 10000

const defaultDestination = "TOKYO"

// Repository owns the authoritative list of trips and the active-trip
// pointer. All persisted trip state is read through it at startup and
// written through it on every mutation.
type Repository struct {
	store *store.Store

	Trips       []*Trip
	ActiveID    string
	SelectedDay int
}

// NewRepository creates a Repository on the given store. Call
// LoadInitialState before using it.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s, SelectedDay: 1}
}

// Store exposes the underlying key-value store for adjacent state such as
// language settings.
func (r *Repository) Store() *store.Store {
	return r.store
}

// LoadInitialState populates the repository from the store. Resolution order:
// multi-trip collection, then one-time legacy single-trip migration, then a
// synthesized starter trip. The returned collection is never empty.
func (r *Repository) LoadInitialState() error {
	raw, ok, err := r.store.Get(store.KeyTrips)
	if err != nil {
		return err
	}
	if ok {
		var trips []*Trip
		if err := json.Unmarshal([]byte(raw), &trips); err != nil {
			return &CorruptStorageError{Key: store.KeyTrips, Err: err}
		}
		if len(trips) > 0 {
			r.Trips = trips
			r.restoreActivePointer()
			return nil
		}
	}

	migrated, err := r.migrateLegacyState()
	if err != nil {
		return err
	}
	if migrated != nil {
		r.Trips = []*Trip{migrated}
		r.ActiveID = migrated.ID
		r.SelectedDay = 1
		return r.Save()
	}

	starter := newStarterTrip()
	r.Trips = []*Trip{starter}
	r.ActiveID = starter.ID
	r.SelectedDay = 1
	return r.Save()
}

func (r *Repository) restoreActivePointer() {
	id, ok, err := r.store.Get(store.KeyActiveTrip)
	if err == nil && ok {
		if r.findTrip(id) != nil {
			r.ActiveID = id
			return
		}
	}
	r.ActiveID = r.Trips[0].ID
}

// migrateLegacyState upgrades the old single-trip key layout into one Trip.
// It is idempotent: the legacy keys are removed once the new layout has been
// written, so a second startup never re-runs it.
func (r *Repository) migrateLegacyState() (*Trip, error) {
	rawItinerary, ok, err := r.store.Get(store.KeyLegacyItinerary)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var itinerary []DayPlan
	if err := json.Unmarshal([]byte(rawItinerary), &itinerary); err != nil {
		return nil, &CorruptStorageError{Key: store.KeyLegacyItinerary, Err: err}
	}
	if len(itinerary) == 0 {
		itinerary = []DayPlan{{DayID: 1, Date: todayDate(), Items: []ItineraryItem{}}}
	}

	t := &Trip{
		ID:          NewID(),
		Destination: defaultDestination,
		Itinerary:   itinerary,
		Flights:     []FlightInfo{},
		Hotels:      []HotelInfo{},
		Budget:      []BudgetLine{},
		Contacts:    []EmergencyContact{},
		Checklist:   []ChecklistItem{},
		TotalBudget: DefaultBudgetTarget,
	}
	t.StartDate = itinerary[0].Date

	if dest, ok, err := r.store.Get(store.KeyLegacyDestination); err == nil && ok && dest != "" {
		t.Destination = dest
	}
	if err := unmarshalLegacy(r.store, store.KeyLegacyFlights, &t.Flights); err != nil {
		return nil, err
	}
	if err := unmarshalLegacy(r.store, store.KeyLegacyHotels, &t.Hotels); err != nil {
		return nil, err
	}
	if err := unmarshalLegacy(r.store, store.KeyLegacyBudget, &t.Budget); err != nil {
		return nil, err
	}
	if err := unmarshalLegacy(r.store, store.KeyLegacyContacts, &t.Contacts); err != nil {
		return nil, err
	}

	legacyKeys := []string{
		store.KeyLegacyItinerary,
		store.KeyLegacyDestination,
		store.KeyLegacyFlights,
		store.KeyLegacyHotels,
		store.KeyLegacyBudget,
		store.KeyLegacyContacts,
	}
	for _, key := range legacyKeys {
		if err := r.store.Delete(key); err != nil {
			return nil, fmt.Errorf("failed to clear legacy key after migration: %w", err)
		}
	}

	return t, nil
}

func unmarshalLegacy[T any](s *store.Store, key string, dst *T) error {
	raw, ok, err := s.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &CorruptStorageError{Key: key, Err: err}
	}
	return nil
}

func newStarterTrip() *Trip {
	return &Trip{
		ID:          NewID(),
		Destination: defaultDestination,
		StartDate:   todayDate(),
		Itinerary: []DayPlan{
			{DayID: 1, Date: todayDate(), Items: []ItineraryItem{}},
		},
		Flights:     []FlightInfo{},
		Hotels:      []HotelInfo{},
		Budget:      []BudgetLine{},
		Contacts:    []EmergencyContact{},
		Checklist:   []ChecklistItem{},
		TotalBudget: DefaultBudgetTarget,
	}
}

func todayDate() string {
	return time.Now().Format("2006-01-02")
}

// Save persists the whole trip list and the active pointer.
func (r *Repository) Save() error {
	data, err := json.Marshal(r.Trips)
	if err != nil {
		return fmt.Errorf("failed to marshal trips: %w", err)
	}
	if err := r.store.Put(store.KeyTrips, string(data)); err != nil {
		return err
	}
	return r.store.Put(store.KeyActiveTrip, r.ActiveID)
}

// Active returns the currently active trip. It is never nil after a
// successful LoadInitialState.
func (r *Repository) Active() *Trip {
	if t := r.findTrip(r.ActiveID); t != nil {
		return t
	}
	if len(r.Trips) > 0 {
		return r.Trips[0]
	}
	return nil
}

func (r *Repository) findTrip(id string) *Trip {
	for _, t := range r.Trips {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// SetActiveTrip switches the working view to another trip. The selected day
// resets to 1 when it exceeds the new trip's day count.
func (r *Repository) SetActiveTrip(id string) error {
	t := r.findTrip(id)
	if t == nil {
		return &ValidationError{Reason: fmt.Sprintf("no trip with id %s", id)}
	}
	r.ActiveID = id
	if r.SelectedDay > len(t.Itinerary) {
		r.SelectedDay = 1
	}
	return r.Save()
}

// CreateTrip appends a new trip with a single templated day and makes it
// active.
func (r *Repository) CreateTrip(destination string) (*Trip, error) {
	if destination == "" {
		destination = defaultDestination
	}
	t := newStarterTrip()
	t.Destination = destination
	r.Trips = append(r.Trips, t)
	r.ActiveID = t.ID
	r.SelectedDay = 1
	if err := r.Save(); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTrip removes a trip. Deleting the last remaining trip is rejected so
// the collection is never empty.
func (r *Repository) DeleteTrip(id string) error {
	if len(r.Trips) <= 1 {
		return &PreconditionError{Reason: "cannot delete the last remaining trip"}
	}
	idx := -1
	for i, t := range r.Trips {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ValidationError{Reason: fmt.Sprintf("no trip with id %s", id)}
	}
	r.Trips = append(r.Trips[:idx], r.Trips[idx+1:]...)
	if r.ActiveID == id {
		r.ActiveID = r.Trips[0].ID
		r.SelectedDay = 1
	}
	return r.Save()
}

// ImportTrip appends an externally decoded trip under a fresh id and makes it
// active. See the share package for decoding and validation.
func (r *Repository) ImportTrip(t *Trip) error {
	t.ID = NewID()
	r.Trips = append(r.Trips, t)
	r.ActiveID = t.ID
	r.SelectedDay = 1
	return r.Save()
}
