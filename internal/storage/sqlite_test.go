package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/safe-or-dead/internal/config"
	"github.com/vovakirdan/safe-or-dead/internal/engine"
	"github.com/vovakirdan/safe-or-dead/internal/round"
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

// fixedClock makes the store stamp rounds one second apart.
func fixedClock(store *Store) {
	base := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	n := 0
	store.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func testResult(id string, outcome engine.Outcome, bet, cleared, payout int) engine.Result {
	layouts := round.NewGenerator(round.DefaultTable(), 7).Deal()
	salt := "salt-" + id
	return engine.Result{
		RoundID:       id,
		Outcome:       outcome,
		Bet:           bet,
		LevelsCleared: cleared,
		Payout:        payout,
		BalanceAfter:  100 - bet + payout,
		Commitment:    round.Commit(salt, layouts),
		Salt:          salt,
		Layouts:       layouts,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveResult(testResult("r1", engine.OutcomeDead, 10, 0, 0)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	rec, err := store.RoundByID("r1")
	if err != nil || rec == nil {
		t.Fatalf("RoundByID() = %v, %v after reopen", rec, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	fixedClock(store)

	want := testResult("round-a", engine.OutcomeCashOut, 10, 3, 20)
	id, err := store.SaveRound(want)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRound() id = %d", id)
	}

	got, err := store.RoundByID("round-a")
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RoundByID() returned nil for a saved round")
	}

	if got.ID != id || got.Bet != 10 || got.Outcome != engine.OutcomeCashOut ||
		got.LevelsCleared != 3 || got.Payout != 20 || got.BalanceAfter != 110 {
		t.Errorf("record = %+v", got)
	}
	if got.Net() != 10 {
		t.Errorf("Net() = %d, want 10", got.Net())
	}
	if !got.CreatedAt.Equal(time.Date(2026, 1, 2, 15, 4, 6, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", got.CreatedAt)
	}

	layouts, ok := got.DecodedLayouts()
	if !ok {
		t.Fatalf("stored layouts %q do not decode", got.Layouts)
	}
	if layouts != want.Layouts {
		t.Error("layouts changed on the way through the database")
	}
	if !round.Verify(got.Commitment, got.Salt, layouts) {
		t.Error("stored round does not verify against its commitment")
	}
}

func TestStoreRoundByIDMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.RoundByID("nope")
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("RoundByID() = %+v, want nil", rec)
	}
}

func TestStoreDuplicateRoundID(t *testing.T) {
	store := openTestStore(t)

	r := testResult("dup", engine.OutcomeDead, 10, 0, 0)
	if err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if err := store.SaveResult(r); err == nil {
		t.Error("saving the same round twice should fail")
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)
	fixedClock(store)

	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		if err := store.SaveResult(testResult(id, engine.OutcomeDead, 10, 0, 0)); err != nil {
			t.Fatalf("SaveResult(%s) failed: %v", id, err)
		}
	}

	recent, err := store.RecentRounds(3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(recent))
	}
	if recent[0].RoundID != "r5" || recent[1].RoundID != "r4" || recent[2].RoundID != "r3" {
		t.Errorf("Rounds not newest first: %s %s %s", recent[0].RoundID, recent[1].RoundID, recent[2].RoundID)
	}

	all, err := store.RecentRounds(0)
	if err != nil {
		t.Fatalf("RecentRounds(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("RecentRounds(0) returned %d rounds, want the default limit to cover all 5", len(all))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty != (Stats{}) {
		t.Errorf("Stats() on empty history = %+v", empty)
	}

	results := []engine.Result{
		testResult("a", engine.OutcomeDead, 10, 2, 0),
		testResult("b", engine.OutcomeCashOut, 10, 3, 27),
		testResult("c", engine.OutcomeJackpot, 11, 8, 986),
		testResult("d", engine.OutcomeDead, 5, 0, 0),
	}
	for _, r := range results {
		if err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := Stats{
		Rounds:     4,
		Wagered:    36,
		PaidOut:    1013,
		Deaths:     2,
		CashOuts:   1,
		Jackpots:   1,
		BestPayout: 986,
	}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
	if st.Net() != 977 {
		t.Errorf("Net() = %d, want 977", st.Net())
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(testResult("a", engine.OutcomeDead, 10, 0, 0))
	store.SaveResult(testResult("b", engine.OutcomeDead, 10, 0, 0))

	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	recent, _ := store.RecentRounds(10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(recent))
	}
}

func TestStoreRecordsEngineGames(t *testing.T) {
	store := openTestStore(t)

	cfg := config.Default()
	eng := engine.New(cfg, engine.WithSeed(3), engine.WithObserver(store))
	if err := eng.StartGame("10"); err != nil {
		t.Fatalf("StartGame() failed: %v", err)
	}
	roundID := eng.Snapshot().RoundID

	// The first deal of a seeded engine matches a generator with that seed.
	layouts := round.NewGenerator(cfg.Table(), 3).Deal()
	eng.SelectTile(0, layouts[0].Positions()[0])
	eng.Advance(5 * time.Second)

	rec, err := store.RoundByID(roundID)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("finished game was not recorded")
	}
	if rec.Outcome != engine.OutcomeDead || rec.Payout != 0 || rec.BalanceAfter != 90 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Commitment != eng.Snapshot().Commitment {
		t.Error("recorded commitment differs from the one published at start")
	}
}
