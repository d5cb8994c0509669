package acceptance_tests

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai-trip-planner/internal/database"
	"ai-trip-planner/internal/enrich"
	"ai-trip-planner/internal/itinerary"
	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/share"
	"ai-trip-planner/internal/store"
	"ai-trip-planner/internal/trip"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++

	// Branch on prompt kind the same way the real collaborator would see it.
	if strings.Contains(prompt, "packing checklist") {
		return llm.ContentResponse{
			Content: `{"items": ["Passport", "Power bank"]}`,
			Usage:   llm.TokenUsage{PromptTokens: 50, CompletionTokens: 10, TotalTokens: 60, Model: "mock"},
		}, nil
	}

	return llm.ContentResponse{
		Content: `{
			"weatherSummary": "Sunny, 18C",
			"forecast": [{"date": "Jan 1", "icon": "☀️", "temp": "18C"}],
			"pace": "Relaxed",
			"items": [{"id": "REPLACED", "time": "23:59", "title": "Senso-ji Temple", "location": "Asakusa", "type": "SIGHTSEEING", "description": "Tokyo's oldest temple.", "tips": ["Arrive before 9am"], "weather": "sunny", "navQuery": "REPLACED"}]
		}`,
		Usage: llm.TokenUsage{PromptTokens: 200, CompletionTokens: 80, TotalTokens: 280, Model: "mock"},
	}, nil
}

func (m *mockLLMClient) Close() error {
	return nil
}

// --- Acceptance Test ---
func TestFullTripWorkflow(t *testing.T) {
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "acceptance_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "trips.db")
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	kv := store.New(db.SQL)
	repo := trip.NewRepository(kv)
	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("Failed to load initial state: %v", err)
	}

	// 1. First launch synthesizes a starter trip.
	active := repo.Active()
	if active == nil {
		t.Fatal("Expected a starter trip on first launch")
	}
	if len(repo.Trips) != 1 {
		t.Fatalf("Expected exactly one trip, got %d", len(repo.Trips))
	}

	// 2. Edit the itinerary: add a day, add an item on it.
	editor := itinerary.NewEditor(active)
	day2 := editor.AddDay()
	item, err := editor.AddItem(day2.DayID)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	updated := *item
	updated.Time = "09:00"
	updated.Title = "Senso-ji"
	updated.Location = "Asakusa"
	if err := editor.UpdateItem(day2.DayID, updated); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if err := repo.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 3. Enrich the day with the mock AI and verify user fields survive.
	llmClient := &mockLLMClient{}
	metricsStore := metrics.NewStore(db.SQL)
	coordinator := enrich.NewCoordinator(llmClient, metricsStore)

	day := active.Day(day2.DayID)
	if err := coordinator.EnrichDay(ctx, day, active.Destination, "EN"); err != nil {
		t.Fatalf("EnrichDay failed: %v", err)
	}
	if day.WeatherSummary != "Sunny, 18C" {
		t.Errorf("WeatherSummary = %q, want enriched value", day.WeatherSummary)
	}
	if len(day.Items) != 1 {
		t.Fatalf("Expected 1 item after enrichment, got %d", len(day.Items))
	}
	got := day.Items[0]
	if got.ID != item.ID {
		t.Errorf("Item id was clobbered by the AI: %q", got.ID)
	}
	if got.Time != "09:00" {
		t.Errorf("Item time was clobbered by the AI: %q", got.Time)
	}
	if got.Description != "Tokyo's oldest temple." {
		t.Errorf("Item description was not enriched: %q", got.Description)
	}
	if err := repo.Save(); err != nil {
		t.Fatalf("Save after enrichment failed: %v", err)
	}

	// 4. Undo the enrichment.
	if err := coordinator.ResetDay(day); err != nil {
		t.Fatalf("ResetDay failed: %v", err)
	}
	if day.Items[0].Description != "" {
		t.Errorf("Expected pre-enrichment item after reset, got %q", day.Items[0].Description)
	}
	if day.WeatherSummary != "" {
		t.Errorf("Expected weather summary cleared after reset, got %q", day.WeatherSummary)
	}

	// 5. Packing suggestions merge into the checklist.
	merged, err := coordinator.SuggestPacking(ctx, active.Destination, "EN", active.Checklist)
	if err != nil {
		t.Fatalf("SuggestPacking failed: %v", err)
	}
	active.Checklist = merged
	if len(merged) != 2 {
		t.Errorf("Expected 2 checklist items, got %d", len(merged))
	}
	if err := repo.Save(); err != nil {
		t.Fatalf("Save after packing failed: %v", err)
	}

	// 6. Export, then import as a second trip.
	code, err := share.EncodeTrip(active)
	if err != nil {
		t.Fatalf("EncodeTrip failed: %v", err)
	}
	imported, err := share.DecodeTrip(code)
	if err != nil {
		t.Fatalf("DecodeTrip failed: %v", err)
	}
	if err := repo.ImportTrip(imported); err != nil {
		t.Fatalf("ImportTrip failed: %v", err)
	}
	if len(repo.Trips) != 2 {
		t.Fatalf("Expected 2 trips after import, got %d", len(repo.Trips))
	}
	if repo.Active().ID == active.ID {
		t.Error("Expected the imported trip to become active")
	}
	if repo.Active().Destination != active.Destination {
		t.Errorf("Imported destination = %q, want %q", repo.Active().Destination, active.Destination)
	}

	// 7. A fresh repository over the same database sees everything.
	repo2 := trip.NewRepository(kv)
	if err := repo2.LoadInitialState(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if len(repo2.Trips) != 2 {
		t.Fatalf("Expected 2 trips after reload, got %d", len(repo2.Trips))
	}
	if repo2.ActiveID != repo.ActiveID {
		t.Errorf("Active pointer not persisted: %q vs %q", repo2.ActiveID, repo.ActiveID)
	}

	// 8. AI usage was recorded.
	usage, err := metricsStore.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) == 0 {
		t.Fatal("Expected recorded AI usage")
	}
	wantCalls := 2
	if llmClient.generateContentCalls != wantCalls {
		t.Errorf("LLM calls = %d, want %d", llmClient.generateContentCalls, wantCalls)
	}
	total := 0
	for _, d := range usage {
		total += d.TotalPrompt + d.TotalCompletion
	}
	if want := 280 + 60; total != want {
		t.Errorf("Recorded tokens = %d, want %d", total, want)
	}
}
