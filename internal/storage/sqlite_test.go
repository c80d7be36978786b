package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/fallingsky/internal/core"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []ScoreRecord{
		{GameID: "arcade", Player: "ann", Score: 1000, Lines: 1},
		{GameID: "arcade", Player: "ann", Score: 500},
		{GameID: "arcade", Player: "bob", Score: 8000, Lines: 4, Won: true},
		{GameID: "classic", Player: "ann", Score: 2500, Lines: 2},
	} {
		if _, err := store.SaveScore(rec); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("arcade", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 8000 || scores[1].Score != 1000 || scores[2].Score != 500 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "bob" || !scores[0].Won || scores[0].Lines != 4 {
		t.Errorf("Top entry fields wrong: %+v", scores[0])
	}

	classic, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreScoreUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreRecord{GameID: "arcade", Player: "ann", Score: 2500})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveScore() returned %q, not a UUID: %v", id, err)
	}

	other, _ := store.SaveScore(ScoreRecord{GameID: "arcade", Player: "ann", Score: 2500})
	if other == id {
		t.Error("Expected distinct game UUIDs")
	}

	entry, err := store.ScoreByUUID(id)
	if err != nil {
		t.Fatalf("ScoreByUUID() failed: %v", err)
	}
	if entry == nil || entry.GameUUID != id || entry.Score != 2500 {
		t.Errorf("ScoreByUUID() = %+v", entry)
	}

	missing, err := store.ScoreByUUID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("ScoreByUUID(unknown) = %+v, %v", missing, err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreRecord{GameID: "arcade", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("arcade", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.AllScores("arcade")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(all))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("arcade")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore(ScoreRecord{GameID: "arcade", Score: 100})
	store.SaveScore(ScoreRecord{GameID: "arcade", Score: 300})
	store.SaveScore(ScoreRecord{GameID: "classic", Score: 200})

	if high, _ = store.HighScore("arcade"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("arcade"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("arcade", 10); len(scores) != 0 {
		t.Errorf("Expected 0 arcade scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("classic", 10); len(scores) != 1 {
		t.Error("Classic scores should not be affected by clearing arcade")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreRecord{GameID: "arcade", Player: "ann", Score: 1000, Lines: 1})
	store.SaveScore(ScoreRecord{GameID: "arcade", Player: "ann", Score: 3000, Lines: 3, Won: true})
	store.SaveScore(ScoreRecord{GameID: "classic", Player: "ann", Score: 500})

	stats, err := store.GetGameStats("arcade")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 3000 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.TotalScore != 4000 || stats.TotalLines != 4 || stats.AvgScore != 2000 {
		t.Errorf("Unexpected totals: %+v", stats)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["classic"].GamesCount != 1 {
		t.Errorf("Unexpected per-mode stats: %v", all)
	}

	recent, err := store.PlayerScores("ann", 2)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].GameID != "classic" {
		t.Errorf("Expected newest first, got %+v", recent)
	}
}

func TestProfileDefaultsWhenMissing(t *testing.T) {
	store := openTestStore(t)

	p, err := store.LoadProfile("ann")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if p != core.DefaultProfile("ann") {
		t.Errorf("Expected defaults, got %+v", p)
	}

	p, _ = store.LoadProfile("")
	if p.Name != DefaultPlayer {
		t.Errorf("Expected default player name, got %q", p.Name)
	}
}

func TestProfileSaveLoad(t *testing.T) {
	store := openTestStore(t)

	p := core.DefaultProfile("ann")
	p.Wins = 3
	p.Losses = 2
	p.BonusBlockRate = 4
	p.TotalScore = 123500
	p.BestScore = 80000
	p.Width = 12
	p.ShowShapeSpawnRate = true

	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	got, err := store.LoadProfile("ann")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if got != p {
		t.Errorf("LoadProfile() = %+v, want %+v", got, p)
	}

	p.Wins = 4
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile() update failed: %v", err)
	}
	if got, _ = store.LoadProfile("ann"); got.Wins != 4 {
		t.Errorf("Expected updated wins 4, got %d", got.Wins)
	}

	bad := core.DefaultProfile("bob")
	bad.Width = 1
	if err := store.SaveProfile(bad); err == nil {
		t.Error("Expected error saving invalid profile")
	}
}

func TestProfileCorruptFallsBack(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.db.Exec("INSERT INTO profiles (name, data) VALUES (?, ?)", "ann", "width: [oops"); err != nil {
		t.Fatal(err)
	}
	p, err := store.LoadProfile("ann")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if p != core.DefaultProfile("ann") {
		t.Errorf("Expected defaults for corrupt row, got %+v", p)
	}

	if _, err := store.db.Exec("INSERT INTO profiles (name, data) VALUES (?, ?)", "bob", "width: 2\n"); err != nil {
		t.Fatal(err)
	}
	if p, _ = store.LoadProfile("bob"); p != core.DefaultProfile("bob") {
		t.Errorf("Expected defaults for invalid row, got %+v", p)
	}
}

func TestProfileListReset(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"cat", "ann", "bob"} {
		if err := store.SaveProfile(core.DefaultProfile(name)); err != nil {
			t.Fatalf("SaveProfile() failed: %v", err)
		}
	}

	names, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() failed: %v", err)
	}
	if len(names) != 3 || names[0] != "ann" || names[2] != "cat" {
		t.Errorf("ListProfiles() = %v", names)
	}

	if err := store.ResetProfile("bob"); err != nil {
		t.Fatalf("ResetProfile() failed: %v", err)
	}
	if names, _ = store.ListProfiles(); len(names) != 2 {
		t.Errorf("Expected 2 profiles after reset, got %v", names)
	}

	if err := store.ResetProfiles(); err != nil {
		t.Fatalf("ResetProfiles() failed: %v", err)
	}
	if names, _ = store.ListProfiles(); len(names) != 0 {
		t.Errorf("Expected no profiles, got %v", names)
	}
}
