// Package enrich bridges user-editable trip state to the AI collaborator. All
// three operations normalize failures at this boundary: a network or parse
// error never propagates as a fault that could corrupt trip state.
package enrich

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"text/template"
	"time"

	"ai-trip-planner/internal/ledger"
	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/trip"
)

//go:embed enrich_prompt.md
var enrichPrompt string

//go:embed packing_prompt.md
var packingPrompt string

//go:embed venues_prompt.md
var venuesPrompt string

// OfflineWeather is the sentinel written to a day's weather summary when an
// enrichment call fails.
const OfflineWeather = "Weather unavailable"

// Venue is one nearby-venue suggestion. Display only, never persisted.
type Venue struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Type   string `json:"type,omitempty"`
}

// Coordinator orchestrates AI calls and reconciles their output with
// user-owned data.
type Coordinator struct {
	textGen      llm.TextGenerator
	metricsStore *metrics.Store // optional
}

// NewCoordinator creates a Coordinator. metricsStore may be nil.
func NewCoordinator(textGen llm.TextGenerator, metricsStore *metrics.Store) *Coordinator {
	return &Coordinator{textGen: textGen, metricsStore: metricsStore}
}

type enrichPromptData struct {
	DayID       int
	Date        string
	Destination string
	Language    string
	ItemsJSON   string
}

// EnrichDay snapshots the day's items, asks the AI collaborator for an
// enriched version and merges the result back without clobbering user-owned
// fields. On any failure the items are left untouched, the weather summary is
// set to the offline sentinel and a wrapped ExternalServiceError is returned
// for the surface to display.
func (c *Coordinator) EnrichDay(ctx context.Context, day *trip.DayPlan, destination, lang string) error {
	snapshot := cloneItems(day.Items)

	itemsJSON, err := json.Marshal(day.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal day items: %w", err)
	}

	prompt, err := renderPrompt("enrich", enrichPrompt, enrichPromptData{
		DayID:       day.DayID,
		Date:        day.Date,
		Destination: destination,
		Language:    lang,
		ItemsJSON:   string(itemsJSON),
	})
	if err != nil {
		return err
	}

	resp, err := c.generate(ctx, "DayEnrichment", prompt)
	if err != nil {
		day.WeatherSummary = OfflineWeather
		return &trip.ExternalServiceError{Op: "enrich day", Err: err}
	}

	var delta EnrichmentDelta
	if err := json.Unmarshal([]byte(resp.Content), &delta); err != nil {
		day.WeatherSummary = OfflineWeather
		return &trip.ExternalServiceError{
			Op:  "enrich day",
			Err: fmt.Errorf("failed to parse enrichment response: %w. Response: %s", err, resp.Content),
		}
	}

	delta.Apply(day, snapshot)
	return nil
}

// ResetDay restores the items captured before the most recent enrichment and
// clears every AI-derived annotation. It is the system's only undo, and it is
// single-level.
func (c *Coordinator) ResetDay(day *trip.DayPlan) error {
	if day.BackupItems == nil {
		return &trip.PreconditionError{Reason: "no enrichment to undo for this day"}
	}
	day.Items = day.BackupItems
	day.BackupItems = nil
	day.WeatherSummary = ""
	day.Forecast = nil
	day.Pace = ""
	day.LogicWarning = ""
	return nil
}

type packingPromptData struct {
	Destination string
	Language    string
}

// SuggestPacking asks for a packing list for the destination and merges the
// suggestions into the existing checklist, dropping any suggestion whose text
// case-insensitively matches an existing entry. On failure the checklist is
// returned unchanged alongside a wrapped error.
func (c *Coordinator) SuggestPacking(ctx context.Context, destination, lang string, existing []trip.ChecklistItem) ([]trip.ChecklistItem, error) {
	prompt, err := renderPrompt("packing", packingPrompt, packingPromptData{
		Destination: destination,
		Language:    lang,
	})
	if err != nil {
		return existing, err
	}

	resp, err := c.generate(ctx, "PackingList", prompt)
	if err != nil {
		return existing, &trip.ExternalServiceError{Op: "suggest packing", Err: err}
	}

	var parsed struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return existing, &trip.ExternalServiceError{
			Op:  "suggest packing",
			Err: fmt.Errorf("failed to parse packing response: %w. Response: %s", err, resp.Content),
		}
	}

	return ledger.MergeChecklist(existing, parsed.Items), nil
}

type venuesPromptData struct {
	Location string
	Time     string
	Language string
}

// SuggestVenues asks for nearby venues around a location at a time of day.
// Results are display-only; on failure an empty list and a wrapped error are
// returned.
func (c *Coordinator) SuggestVenues(ctx context.Context, location, timeOfDay, lang string) ([]Venue, error) {
	prompt, err := renderPrompt("venues", venuesPrompt, venuesPromptData{
		Location: location,
		Time:     timeOfDay,
		Language: lang,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.generate(ctx, "VenueScout", prompt)
	if err != nil {
		return nil, &trip.ExternalServiceError{Op: "suggest venues", Err: err}
	}

	var parsed struct {
		Venues []Venue `json:"venues"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, &trip.ExternalServiceError{
			Op:  "suggest venues",
			Err: fmt.Errorf("failed to parse venues response: %w. Response: %s", err, resp.Content),
		}
	}

	return parsed.Venues, nil
}

func (c *Coordinator) generate(ctx context.Context, agentName, prompt string) (llm.ContentResponse, error) {
	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt)

	if c.metricsStore != nil {
		if recordErr := c.metricsStore.RecordUsage(agentName, resp.Usage, time.Since(start)); recordErr != nil {
			log.Printf("Warning: failed to record %s metrics: %v", agentName, recordErr)
		}
	}

	return resp, err
}

func renderPrompt(name, tmplText string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s prompt template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}
