package share

import (
	"fmt"
	"strings"
	"time"

	"ai-trip-planner/internal/trip"
)

// Calendar produces an iCalendar document with one event per itinerary item.
// Events start at the day's date plus the item's time and run for one hour.
// Items on a day whose date does not parse are skipped.
func Calendar(t *trip.Trip) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//ai-trip-planner//EN\r\n")

	for _, day := range t.Itinerary {
		datePart := strings.SplitN(strings.TrimSpace(day.Date), " ", 2)[0]
		for _, item := range day.Items {
			start, err := time.Parse("2006-01-02 15:04", datePart+" "+item.Time)
			if err != nil {
				continue
			}
			end := start.Add(time.Hour)

			sb.WriteString("BEGIN:VEVENT\r\n")
			sb.WriteString(fmt.Sprintf("UID:%s@ai-trip-planner\r\n", item.ID))
			sb.WriteString(fmt.Sprintf("DTSTART:%s\r\n", start.Format("20060102T150405")))
			sb.WriteString(fmt.Sprintf("DTEND:%s\r\n", end.Format("20060102T150405")))
			sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeText(item.Title)))
			sb.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeText(item.Location)))
			sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeText(item.Description)))
			sb.WriteString("END:VEVENT\r\n")
		}
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

// escapeText escapes the characters iCalendar treats specially in text values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
