package store

import (
	"database/sql"
	"fmt"
)

// Well-known keys. One key per logical collection; values are JSON blobs
// except the scalar keys (active trip, destination, language, flag).
const (
	KeyTrips      = "kuro_trips"
	KeyActiveTrip = "kuro_active_trip"
	KeyLanguage   = "kuro_lang"
	KeyFlag       = "kuro_flag"

	// Legacy single-trip layout, read once during migration and then removed.
	KeyLegacyItinerary   = "kuro_itinerary"
	KeyLegacyDestination = "kuro_destination"
	KeyLegacyFlights     = "kuro_flights"
	KeyLegacyHotels      = "kuro_hotels"
	KeyLegacyBudget      = "kuro_budget"
	KeyLegacyContacts    = "kuro_contacts"
)

// Store is a key/value adapter over the sqlite kv table. There is no
// atomicity across keys; each Put is its own statement.
type Store struct {
	db *sql.DB
}

// New creates a Store on an existing database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the value for key and whether the key exists.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Put writes or replaces the value for key.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
