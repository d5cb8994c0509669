// Package ledger holds the light derived calculations over a trip's budget,
// checklist, contacts and hotel records.
package ledger

import (
	"strings"
	"time"

	"ai-trip-planner/internal/trip"
)

// DefaultRates maps a currency code to its multiplier into the home currency.
var DefaultRates = map[string]float64{
	"JPY": 0.053,
	"USD": 7.82,
	"TWD": 0.25,
	"KRW": 0.006,
	"EUR": 8.5,
	"HKD": 1,
}

// Total sums all budget lines converted into the home currency. An unknown
// currency falls back to a rate of 1.
func Total(lines []trip.BudgetLine, rates map[string]float64) float64 {
	var total float64
	for _, line := range lines {
		rate, ok := rates[line.Currency]
		if !ok {
			rate = 1
		}
		total += line.Cost * rate
	}
	return total
}

// Remaining is the budget target minus the converted total. A negative result
// means over budget and is deliberately representable.
func Remaining(target, total float64) float64 {
	return target - total
}

// Nights returns the whole days between check-in and check-out, floored at
// zero to tolerate malformed or reversed input.
func Nights(checkIn, checkOut string) int {
	in, errIn := time.Parse("2006-01-02", strings.TrimSpace(checkIn))
	out, errOut := time.Parse("2006-01-02", strings.TrimSpace(checkOut))
	if errIn != nil || errOut != nil {
		return 0
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// MergeChecklist appends suggestions to the checklist, dropping any whose
// text case-insensitively matches an existing entry. Repeated calls therefore
// never duplicate items.
func MergeChecklist(existing []trip.ChecklistItem, suggestions []string) []trip.ChecklistItem {
	seen := make(map[string]bool, len(existing))
	for _, item := range existing {
		seen[strings.ToLower(strings.TrimSpace(item.Text))] = true
	}

	merged := existing
	for _, text := range suggestions {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, trip.ChecklistItem{
			ID:   trip.NewID(),
			Text: text,
		})
	}
	return merged
}
