package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []EpisodeRun{
		{Seed: 1, Ticks: 3600, Duration: 60, Kills: 12, ShotsFired: 40, ShotsHit: 25, Outcome: "died", Model: "ppo_v1.zip"},
		{Seed: 2, Ticks: 10800, Duration: 180, Kills: 48, ShotsFired: 200, ShotsHit: 130, Outcome: "timeout", Model: "ppo_v1.zip"},
		{Seed: 3, Ticks: 900, Duration: 15, Kills: 2, ShotsFired: 10, ShotsHit: 3, Outcome: "died"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentRuns() returned %d runs, want 3", len(recent))
	}
	// Newest first
	if recent[0].Seed != 3 {
		t.Errorf("most recent run seed = %d, want 3", recent[0].Seed)
	}
}

func TestBestRunsOrderedByKills(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []EpisodeRun{
		{Seed: 1, Kills: 5, Duration: 30, Outcome: "died"},
		{Seed: 2, Kills: 50, Duration: 170, Outcome: "died"},
		{Seed: 3, Kills: 20, Duration: 90, Outcome: "timeout"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns(2)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("BestRuns(2) returned %d runs", len(best))
	}
	if best[0].Kills != 50 || best[1].Kills != 20 {
		t.Errorf("BestRuns order = %d, %d kills, want 50, 20", best[0].Kills, best[1].Kills)
	}
}

func TestRunsByModel(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []EpisodeRun{
		{Seed: 1, Kills: 5, Outcome: "died", Model: "a.zip"},
		{Seed: 2, Kills: 7, Outcome: "died", Model: "b.zip"},
		{Seed: 3, Kills: 9, Outcome: "died", Model: "a.zip"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RunsByModel("a.zip", 10)
	if err != nil {
		t.Fatalf("RunsByModel() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RunsByModel returned %d runs, want 2", len(got))
	}
	for _, r := range got {
		if r.Model != "a.zip" {
			t.Errorf("run model = %q, want a.zip", r.Model)
		}
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if stats.RunsCount != 0 || stats.BestKills != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}

	for _, r := range []EpisodeRun{
		{Seed: 1, Kills: 10, Duration: 60, Outcome: "died"},
		{Seed: 2, Kills: 30, Duration: 120, Outcome: "timeout"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("RunsCount = %d, want 2", stats.RunsCount)
	}
	if stats.BestKills != 30 {
		t.Errorf("BestKills = %d, want 30", stats.BestKills)
	}
	if stats.AvgKills != 20 {
		t.Errorf("AvgKills = %v, want 20", stats.AvgKills)
	}
	if stats.TotalKills != 40 {
		t.Errorf("TotalKills = %d, want 40", stats.TotalKills)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(EpisodeRun{Seed: 1, Outcome: "died"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("runs remaining after clear = %d, want 0", len(recent))
	}
}

func TestAccuracy(t *testing.T) {
	r := EpisodeRun{ShotsFired: 40, ShotsHit: 10}
	if got := r.Accuracy(); got != 0.25 {
		t.Errorf("Accuracy() = %v, want 0.25", got)
	}
	if got := (EpisodeRun{}).Accuracy(); got != 0 {
		t.Errorf("Accuracy() with no shots = %v, want 0", got)
	}
}
