// Package share serializes trips for cross-device transfer: portable text
// codes, calendar documents, plain-text listings, PDF and QR renditions.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"ai-trip-planner/internal/trip"
)

// EncodeTrip serializes a single trip to a portable text code. The encoding
// is reversible and byte-preserving, so non-ASCII destinations and notes
// survive a copy-paste round trip.
func EncodeTrip(t *trip.Trip) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal trip: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeTrip reverses EncodeTrip and validates that the code carries at
// minimum a destination and an itinerary. The caller assigns a fresh id
// before appending the trip (see Repository.ImportTrip).
func DecodeTrip(code string) (*trip.Trip, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return nil, &trip.ValidationError{Reason: "trip code is not valid base64"}
	}

	var t trip.Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &trip.ValidationError{Reason: "trip code does not contain valid trip JSON"}
	}

	if t.Destination == "" {
		return nil, &trip.ValidationError{Reason: "trip code is missing a destination"}
	}
	if len(t.Itinerary) == 0 {
		return nil, &trip.ValidationError{Reason: "trip code is missing an itinerary"}
	}

	return &t, nil
}
