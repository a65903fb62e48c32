package database_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/edgard/streakwatch/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func appendOffense(t *testing.T, store database.Store, username, text string) *database.Offense {
	t.Helper()

	offense := &database.Offense{
		ChatID:      100,
		UserID:      int64(len(username)), // distinct per name is enough here
		MessageID:   1,
		Username:    username,
		MessageText: text,
	}
	if err := store.AppendOffense(context.Background(), offense); err != nil {
		t.Fatalf("AppendOffense(%q) error = %v", username, err)
	}
	return offense
}

func TestAppendOffenseAssignsTimestamp(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	first := appendOffense(t, store, "alice", "zf")
	if first.Timestamp.IsZero() {
		t.Fatal("store must assign the offense timestamp")
	}
	if first.ID == 0 {
		t.Error("store should backfill the generated ID")
	}

	second := appendOffense(t, store, "bob", "zf again")
	if second.Timestamp.Before(first.Timestamp) {
		t.Errorf("timestamps must be non-decreasing in insert order: %v then %v",
			first.Timestamp, second.Timestamp)
	}
}

func TestRecentOffensesNewestFirst(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	appendOffense(t, store, "alice", "first")
	appendOffense(t, store, "bob", "second")
	appendOffense(t, store, "carol", "third")

	recent, err := store.RecentOffenses(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentOffenses() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentOffenses(2) returned %d rows, want 2", len(recent))
	}
	if recent[0].Username != "carol" || recent[1].Username != "bob" {
		t.Errorf("expected newest first [carol bob], got [%s %s]",
			recent[0].Username, recent[1].Username)
	}
	if recent[0].ID <= recent[1].ID {
		t.Errorf("newest row should have the larger ID: %d then %d", recent[0].ID, recent[1].ID)
	}
}

func TestRecentOffensesFewerStoredThanLimit(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	appendOffense(t, store, "alice", "one")
	appendOffense(t, store, "bob", "two")
	appendOffense(t, store, "carol", "three")

	recent, err := store.RecentOffenses(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentOffenses() error = %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("RecentOffenses(5) with 3 stored rows returned %d, want 3", len(recent))
	}
}

func TestOffenseCountsOrdering(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	appendOffense(t, store, "alice", "zf")
	appendOffense(t, store, "alice", "zf")
	appendOffense(t, store, "alice", "zf")
	appendOffense(t, store, "carol", "zf")
	appendOffense(t, store, "bob", "zf")

	counts, err := store.OffenseCounts(context.Background())
	if err != nil {
		t.Fatalf("OffenseCounts() error = %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("OffenseCounts() returned %d rows, want 3", len(counts))
	}

	// Count descending, username ascending on ties.
	want := []database.OffenseCount{
		{Username: "alice", Count: 3},
		{Username: "bob", Count: 1},
		{Username: "carol", Count: 1},
	}
	for i, w := range want {
		if counts[i] != w {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], w)
		}
	}
}

func TestOffenseCountsEmpty(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	counts, err := store.OffenseCounts(context.Background())
	if err != nil {
		t.Fatalf("OffenseCounts() error = %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("OffenseCounts() on empty store returned %d rows, want 0", len(counts))
	}
}
