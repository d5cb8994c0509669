package enrich

import (
	"sort"

	"ai-trip-planner/internal/trip"
)

// EnrichmentDelta is the typed shape of a successful day enrichment. It names
// exactly which fields the AI owns; everything else on an item belongs to the
// user and is force-restored from the pre-call snapshot during Apply.
type EnrichmentDelta struct {
	WeatherSummary string               `json:"weatherSummary"`
	Forecast       []trip.ForecastEntry `json:"forecast"`
	Pace           string               `json:"pace"`
	LogicWarning   string               `json:"logicWarning"`
	Items          []trip.ItineraryItem `json:"items"`
}

// Apply merges the delta onto the day. The AI response is not
// schema-constrained to preserve opaque fields, so every returned item has its
// id, time, map link, nav query and manual tags restored from the matching
// snapshot item (matched by id, positional fallback). The snapshot becomes the
// day's backup for the single-level undo.
func (d *EnrichmentDelta) Apply(day *trip.DayPlan, snapshot []trip.ItineraryItem) {
	merged := d.Items
	if len(merged) == 0 {
		merged = cloneItems(snapshot)
	}

	byID := make(map[string]*trip.ItineraryItem, len(snapshot))
	for i := range snapshot {
		byID[snapshot[i].ID] = &snapshot[i]
	}

	for i := range merged {
		original, ok := byID[merged[i].ID]
		if !ok && i < len(snapshot) {
			original = &snapshot[i]
		}
		if original == nil {
			continue
		}
		merged[i].ID = original.ID
		merged[i].Time = original.Time
		merged[i].MapsURL = original.MapsURL
		merged[i].NavQuery = original.NavQuery
		merged[i].Tags = original.Tags
	}

	// The restored times may disagree with the AI's ordering; keep the items
	// ascending by time.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time < merged[j].Time
	})

	day.Items = merged
	day.WeatherSummary = d.WeatherSummary
	day.Forecast = d.Forecast
	day.Pace = d.Pace
	day.LogicWarning = d.LogicWarning
	day.BackupItems = snapshot
}

func cloneItems(items []trip.ItineraryItem) []trip.ItineraryItem {
	if items == nil {
		return nil
	}
	out := make([]trip.ItineraryItem, len(items))
	copy(out, items)
	for i := range out {
		if items[i].Tips != nil {
			out[i].Tips = append([]string(nil), items[i].Tips...)
		}
		if items[i].Tags != nil {
			out[i].Tags = append([]trip.Tag(nil), items[i].Tags...)
		}
	}
	return out
}
