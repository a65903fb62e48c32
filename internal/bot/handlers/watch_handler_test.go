package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/streakwatch/internal/bot/handlers"
	"github.com/edgard/streakwatch/internal/config"
	"github.com/edgard/streakwatch/internal/database"
	"github.com/edgard/streakwatch/internal/streak"
)

// fakeStore implements database.Store for handler tests.
type fakeStore struct {
	appendErr error
	recentErr error
	recent    []database.Offense
	appended  []*database.Offense
}

func (f *fakeStore) Ping(_ context.Context) error { return nil }

func (f *fakeStore) AppendOffense(_ context.Context, offense *database.Offense) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	offense.Timestamp = time.Now().UTC()
	f.appended = append(f.appended, offense)
	return nil
}

func (f *fakeStore) RecentOffenses(_ context.Context, _ int) ([]database.Offense, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return f.recent, nil
}

func (f *fakeStore) OffenseCounts(_ context.Context) ([]database.OffenseCount, error) {
	return nil, nil
}

func (f *fakeStore) RunSQLMaintenance(_ context.Context) error { return nil }

func testDeps(store database.Store) handlers.HandlerDeps {
	return handlers.HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{
			Watch: config.WatchConfig{
				Words:        []string{"zf"},
				FallbackName: "someone",
				RecentLimit:  5,
				StoreTimeout: 5 * time.Second,
			},
		},
		Store:    store,
		Detector: streak.NewDetector([]string{"zf"}),
	}
}

func newOffense() *database.Offense {
	return &database.Offense{
		ChatID:      100,
		UserID:      7,
		MessageID:   42,
		Username:    "bob",
		MessageText: "zf",
	}
}

func TestBuildStreakReplyStoreWriteFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{appendErr: database.ErrStoreUnavailable}
	reply, err := handlers.BuildStreakReply(context.Background(), testDeps(store), newOffense())

	if !errors.Is(err, database.ErrStoreUnavailable) {
		t.Fatalf("BuildStreakReply() error = %v, want ErrStoreUnavailable", err)
	}
	if reply != "" {
		t.Errorf("no reply text should be produced on a failed write, got %q", reply)
	}
}

func TestBuildStreakReplyStoreReadFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{recentErr: database.ErrStoreUnavailable}
	reply, err := handlers.BuildStreakReply(context.Background(), testDeps(store), newOffense())

	if !errors.Is(err, database.ErrStoreUnavailable) {
		t.Fatalf("BuildStreakReply() error = %v, want ErrStoreUnavailable", err)
	}
	if reply != "" {
		t.Errorf("no reply text should be produced on a failed read, got %q", reply)
	}
}

func TestBuildStreakReplyFirstEver(t *testing.T) {
	t.Parallel()

	offense := newOffense()
	store := &fakeStore{
		recent: []database.Offense{{Username: "bob", MessageText: "zf", Timestamp: time.Now().UTC()}},
	}

	reply, err := handlers.BuildStreakReply(context.Background(), testDeps(store), offense)
	if err != nil {
		t.Fatalf("BuildStreakReply() error = %v", err)
	}
	if !strings.Contains(reply, "just started us off") {
		t.Errorf("expected first-offense phrasing, got %q", reply)
	}
	if len(store.appended) != 1 {
		t.Fatalf("expected exactly one recorded offense, got %d", len(store.appended))
	}
}

func TestBuildStreakReplyStreakBroken(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	store := &fakeStore{
		recent: []database.Offense{
			{Username: "bob", MessageText: "zf", Timestamp: now},
			{Username: "alice", MessageText: "old zf", Timestamp: now.Add(-25 * time.Hour)},
		},
	}

	reply, err := handlers.BuildStreakReply(context.Background(), testDeps(store), newOffense())
	if err != nil {
		t.Fatalf("BuildStreakReply() error = %v", err)
	}
	if !strings.Contains(reply, "We made it 1 day since the last slip-up.") {
		t.Errorf("expected singular day-count phrasing, got %q", reply)
	}
	if !strings.Contains(reply, "alice") {
		t.Errorf("expected previous offender in reply, got %q", reply)
	}
}

func TestBuildStreakReplyNegativeElapsedFallsBack(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	// Store returns events in a broken order: previous newer than newest.
	store := &fakeStore{
		recent: []database.Offense{
			{Username: "bob", MessageText: "zf", Timestamp: now.Add(-time.Hour)},
			{Username: "alice", MessageText: "old zf", Timestamp: now},
		},
	}

	reply, err := handlers.BuildStreakReply(context.Background(), testDeps(store), newOffense())
	if err != nil {
		t.Fatalf("BuildStreakReply() should absorb the integrity fault, got error %v", err)
	}
	if !strings.Contains(reply, "just started us off") {
		t.Errorf("expected first-offense fallback phrasing, got %q", reply)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		from *models.User
		want string
	}{
		{
			name: "username preferred",
			from: &models.User{Username: "alice", FirstName: "Alice"},
			want: "alice",
		},
		{
			name: "first name when no username",
			from: &models.User{FirstName: "Alice"},
			want: "Alice",
		},
		{
			name: "placeholder when nothing set",
			from: &models.User{},
			want: "someone",
		},
		{
			name: "placeholder when sender missing",
			from: nil,
			want: "someone",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := handlers.DisplayName(tc.from, "someone"); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}
