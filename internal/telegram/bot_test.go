package telegram

import (
	"strings"
	"testing"

	"ai-trip-planner/internal/ledger"
	"ai-trip-planner/internal/trip"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input   string
		wantCmd string
		wantArg string
	}{
		{"/trips", "/trips", ""},
		{"/new Tokyo", "/new", "Tokyo"},
		{"/new  Osaka, Japan ", "/new", "Osaka, Japan"},
		{"hello there", "", "hello there"},
	}

	for _, tt := range tests {
		cmd, arg := splitCommand(tt.input)
		if cmd != tt.wantCmd || arg != tt.wantArg {
			t.Errorf("splitCommand(%q) = (%q, %q), want (%q, %q)", tt.input, cmd, arg, tt.wantCmd, tt.wantArg)
		}
	}
}

func TestFormatTripsMarkdown(t *testing.T) {
	trips := []*trip.Trip{
		{ID: "a", Destination: "TOKYO", Itinerary: []trip.DayPlan{{DayID: 1}, {DayID: 2}}},
		{ID: "b", Destination: "SEOUL", Itinerary: []trip.DayPlan{{DayID: 1}}},
	}

	out := formatTripsMarkdown(trips, "b")

	if !strings.Contains(out, "1. *TOKYO* (2 days)") {
		t.Error("Missing first trip line")
	}
	if !strings.Contains(out, "▶ 2. *SEOUL* (1 days)") {
		t.Error("Active trip not marked")
	}
	if strings.Contains(out, "▶ 1.") {
		t.Error("Inactive trip should not be marked")
	}
}

func TestFormatDayMarkdown(t *testing.T) {
	day := &trip.DayPlan{
		DayID:          1,
		Date:           "2024-01-01",
		WeatherSummary: "Sunny, 18C",
		Pace:           "Relaxed",
		Items: []trip.ItineraryItem{
			{Time: "09:00", Title: "Senso-ji", Location: "Asakusa", Tips: []string{"Arrive early"}, MapsURL: "https://maps.example/sensoji"},
		},
	}

	out := formatDayMarkdown(day)

	for _, want := range []string{
		"*Day 1* (2024-01-01)",
		"Sunny, 18C",
		"Pace: Relaxed",
		"*09:00* Senso-ji @ Asakusa",
		"💡 Arrive early",
		"https://maps.example/sensoji",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatDayMarkdown_Empty(t *testing.T) {
	day := &trip.DayPlan{DayID: 3, Date: "2024-01-03"}
	out := formatDayMarkdown(day)
	if !strings.Contains(out, "_No activities yet._") {
		t.Error("Missing empty-day placeholder")
	}
}

func TestFormatBudgetMarkdown(t *testing.T) {
	tr := &trip.Trip{
		Destination: "TOKYO",
		TotalBudget: 1000,
		Budget: []trip.BudgetLine{
			{Item: "Lunch", Cost: 10000, Currency: "JPY", Category: "Food"},
			{Item: "Hotel", Cost: 800, Currency: "HKD", Category: "Stay"},
		},
	}

	out := formatBudgetMarkdown(tr, ledger.DefaultRates)

	if !strings.Contains(out, "• Lunch: 10000.00 JPY (Food)") {
		t.Error("Missing budget line")
	}
	// 10000 JPY at 0.053 plus 800 HKD = 1330 HKD, 330 over budget.
	if !strings.Contains(out, "*Spent:* 1330.00 HKD of 1000.00") {
		t.Errorf("Wrong total in:\n%s", out)
	}
	if !strings.Contains(out, "Over budget by 330.00 HKD") {
		t.Errorf("Missing over-budget warning in:\n%s", out)
	}
}

func TestFormatBudgetMarkdown_Remaining(t *testing.T) {
	tr := &trip.Trip{
		TotalBudget: 1000,
		Budget:      []trip.BudgetLine{{Item: "Snack", Cost: 100, Currency: "HKD", Category: "Food"}},
	}

	out := formatBudgetMarkdown(tr, ledger.DefaultRates)
	if !strings.Contains(out, "*Remaining:* 900.00 HKD") {
		t.Errorf("Missing remaining line in:\n%s", out)
	}
}
