package trip

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ai-trip-planner/internal/database"
	"ai-trip-planner/internal/store"
)

func newTestRepo(t *testing.T) (*Repository, *store.Store) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "repo_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	db, err := database.NewDB(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.New(db.SQL)
	return NewRepository(s), s
}

func TestLoadInitialState_Starter(t *testing.T) {
	repo, _ := newTestRepo(t)

	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("LoadInitialState failed: %v", err)
	}

	if len(repo.Trips) != 1 {
		t.Fatalf("Expected 1 starter trip, got %d", len(repo.Trips))
	}
	active := repo.Active()
	if active == nil {
		t.Fatal("Expected an active trip")
	}
	if active.Destination != "TOKYO" {
		t.Errorf("Expected starter destination TOKYO, got '%s'", active.Destination)
	}
	if len(active.Itinerary) != 1 || active.Itinerary[0].DayID != 1 {
		t.Errorf("Expected one templated day with dayId 1, got %+v", active.Itinerary)
	}
	if active.TotalBudget != DefaultBudgetTarget {
		t.Errorf("Expected default budget target %d, got %v", DefaultBudgetTarget, active.TotalBudget)
	}
}

func TestLoadInitialState_ExistingCollection(t *testing.T) {
	repo, s := newTestRepo(t)

	s.Put(store.KeyTrips, `[{"id":"t1","destination":"OSAKA","itinerary":[{"dayId":1,"date":"2024-01-01","items":[]}]},{"id":"t2","destination":"SEOUL","itinerary":[{"dayId":1,"date":"2024-02-01","items":[]}]}]`)
	s.Put(store.KeyActiveTrip, "t2")

	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("LoadInitialState failed: %v", err)
	}
	if len(repo.Trips) != 2 {
		t.Fatalf("Expected 2 trips, got %d", len(repo.Trips))
	}
	if repo.Active().Destination != "SEOUL" {
		t.Errorf("Expected active trip SEOUL, got '%s'", repo.Active().Destination)
	}
}

func TestLoadInitialState_DanglingActivePointer(t *testing.T) {
	repo, s := newTestRepo(t)

	s.Put(store.KeyTrips, `[{"id":"t1","destination":"OSAKA","itinerary":[{"dayId":1,"date":"2024-01-01","items":[]}]}]`)
	s.Put(store.KeyActiveTrip, "gone")

	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("LoadInitialState failed: %v", err)
	}
	if repo.ActiveID != "t1" {
		t.Errorf("Expected active pointer to fall back to t1, got '%s'", repo.ActiveID)
	}
}

func TestLoadInitialState_CorruptJSON(t *testing.T) {
	repo, s := newTestRepo(t)

	s.Put(store.KeyTrips, `{not json`)

	err := repo.LoadInitialState()
	if err == nil {
		t.Fatal("Expected a corrupt storage error, got nil")
	}
	var corrupt *CorruptStorageError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Expected CorruptStorageError, got %T: %v", err, err)
	}
	if corrupt.Key != store.KeyTrips {
		t.Errorf("Expected corrupt key '%s', got '%s'", store.KeyTrips, corrupt.Key)
	}
}

func TestLoadInitialState_LegacyMigration(t *testing.T) {
	repo, s := newTestRepo(t)

	s.Put(store.KeyLegacyItinerary, `[{"dayId":1,"date":"2024-01-01","items":[{"id":"1-1","time":"09:00","title":"Senso-ji","location":"Asakusa","type":"SIGHTSEEING","navQuery":"Senso-ji"}]}]`)
	s.Put(store.KeyLegacyDestination, "TOKYO")
	s.Put(store.KeyLegacyBudget, `[{"id":"b-1","item":"Ramen","cost":1200,"currency":"JPY","category":"Food"}]`)

	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("LoadInitialState failed: %v", err)
	}

	if len(repo.Trips) != 1 {
		t.Fatalf("Expected 1 migrated trip, got %d", len(repo.Trips))
	}
	migrated := repo.Trips[0]
	if migrated.ID == "" {
		t.Error("Expected migrated trip to get a fresh id")
	}
	if len(migrated.Itinerary) != 1 || len(migrated.Itinerary[0].Items) != 1 {
		t.Fatalf("Expected migrated itinerary to carry over, got %+v", migrated.Itinerary)
	}
	if migrated.Budget[0].Cost != 1200 {
		t.Errorf("Expected migrated budget line, got %+v", migrated.Budget)
	}
	if migrated.TotalBudget != DefaultBudgetTarget {
		t.Errorf("Expected default budget target on migrated trip, got %v", migrated.TotalBudget)
	}

	// Legacy keys are cleared so the upgrade never re-runs.
	if _, ok, _ := s.Get(store.KeyLegacyItinerary); ok {
		t.Error("Expected legacy itinerary key to be removed after migration")
	}

	// A second load must read the multi-trip layout, not migrate again.
	repo2 := NewRepository(s)
	if err := repo2.LoadInitialState(); err != nil {
		t.Fatalf("Second LoadInitialState failed: %v", err)
	}
	if len(repo2.Trips) != 1 || repo2.Trips[0].ID != migrated.ID {
		t.Errorf("Expected second load to return the migrated trip unchanged")
	}
}

func TestCreateAndSwitchTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("LoadInitialState failed: %v", err)
	}
	first := repo.Active()

	second, err := repo.CreateTrip("KYOTO")
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	if repo.ActiveID != second.ID {
		t.Error("Expected new trip to become active")
	}
	if len(second.Itinerary) != 1 {
		t.Errorf("Expected one templated day, got %d", len(second.Itinerary))
	}

	repo.SelectedDay = 5
	if err := repo.SetActiveTrip(first.ID); err != nil {
		t.Fatalf("SetActiveTrip failed: %v", err)
	}
	if repo.SelectedDay != 1 {
		t.Errorf("Expected selected day to reset to 1, got %d", repo.SelectedDay)
	}

	if err := repo.SetActiveTrip("missing"); err == nil {
		t.Fatal("Expected error switching to unknown trip, got nil")
	}
}

func TestDeleteTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.LoadInitialState(); err != nil {
		t.Fatalf("LoadInitialState failed: %v", err)
	}

	t.Run("LastTripRejected", func(t *testing.T) {
		err := repo.DeleteTrip(repo.ActiveID)
		var precondition *PreconditionError
		if !errors.As(err, &precondition) {
			t.Fatalf("Expected PreconditionError, got %T: %v", err, err)
		}
		if len(repo.Trips) != 1 {
			t.Error("Expected repository unchanged after rejected delete")
		}
	})

	t.Run("DeleteActiveRepoints", func(t *testing.T) {
		first := repo.Trips[0]
		second, _ := repo.CreateTrip("KYOTO")

		if err := repo.DeleteTrip(second.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if repo.ActiveID != first.ID {
			t.Errorf("Expected active pointer re-pointed to %s, got %s", first.ID, repo.ActiveID)
		}
	})
}

func TestLastLocation(t *testing.T) {
	tr := &Trip{
		Destination: "TOKYO",
		Itinerary: []DayPlan{
			{DayID: 1, Items: []ItineraryItem{
				{Time: "09:00", Title: "Temple", Location: "Asakusa"},
				{Time: "12:00", Title: "Walk", Location: ""},
				{Time: "15:00", Title: "Lunch", Location: "Shinjuku"},
			}},
			{DayID: 2, Items: []ItineraryItem{}},
		},
	}

	if got := tr.LastLocation(1); got != "Shinjuku" {
		t.Errorf("LastLocation(1) = %q, want latest located item", got)
	}
	if got := tr.LastLocation(2); got != "TOKYO" {
		t.Errorf("LastLocation(2) = %q, want destination fallback", got)
	}
	if got := tr.LastLocation(9); got != "TOKYO" {
		t.Errorf("LastLocation(missing day) = %q, want destination fallback", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	_, s := newTestRepo(t)

	settings, err := LoadSettings(s)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.Language != "EN" {
		t.Errorf("Expected default language EN, got '%s'", settings.Language)
	}

	if err := SaveSettings(s, Settings{Language: "TC", Flag: "🇯🇵"}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	loaded, err := LoadSettings(s)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.Language != "TC" || loaded.Flag != "🇯🇵" {
		t.Errorf("Expected saved settings back, got %+v", loaded)
	}
}
