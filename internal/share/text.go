package share

import (
	"fmt"
	"strings"

	"ai-trip-planner/internal/trip"
)

// PlainText produces a human-readable day-by-day listing of the trip.
func PlainText(t *trip.Trip) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Trip to %s\n", t.Destination))

	for _, day := range t.Itinerary {
		sb.WriteString(fmt.Sprintf("\nDay %d (%s)\n", day.DayID, day.Date))
		if len(day.Items) == 0 {
			sb.WriteString("  (no activities)\n")
			continue
		}
		for _, item := range day.Items {
			sb.WriteString(fmt.Sprintf("  %s  %s", item.Time, item.Title))
			if item.Location != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", item.Location))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
