package share

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"ai-trip-planner/internal/trip"
)

// PDF renders the trip itinerary as an A4 PDF document.
func PDF(t *trip.Trip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Trip to %s", t.Destination))
	pdf.Ln(12)

	for _, day := range t.Itinerary {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d (%s)", day.DayID, day.Date))
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		if len(day.Items) == 0 {
			pdf.Cell(0, 8, "(no activities)")
			pdf.Ln(8)
			continue
		}
		for _, item := range day.Items {
			line := fmt.Sprintf("%s  %s", item.Time, item.Title)
			if item.Location != "" {
				line += fmt.Sprintf(" @ %s", item.Location)
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
