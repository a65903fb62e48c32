package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrStoreUnavailable indicates that the backing store could not serve a
// read or write. Handlers must not send a reply when they see this error.
var ErrStoreUnavailable = errors.New("event store unavailable")

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 25
)

// Store defines the interface for offense event persistence and queries.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// AppendOffense inserts a new offense record. The store assigns the
	// Timestamp field; any caller-supplied value is overwritten.
	AppendOffense(ctx context.Context, offense *Offense) error

	// RecentOffenses retrieves the most recent 'limit' offenses across all
	// chats, newest first.
	RecentOffenses(ctx context.Context, limit int) ([]Offense, error)

	// OffenseCounts retrieves per-username offense counts, descending by
	// count with username ascending as tie-break.
	OffenseCounts(ctx context.Context) ([]OffenseCount, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping failed: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// AppendOffense inserts a new offense record with a server-assigned timestamp.
func (s *sqlxStore) AppendOffense(ctx context.Context, offense *Offense) error {
	if offense == nil {
		return fmt.Errorf("cannot append nil offense")
	}
	if offense.ChatID == 0 {
		return fmt.Errorf("offense must have a non-zero chat_id")
	}
	if offense.UserID == 0 {
		return fmt.Errorf("offense must have a non-zero user_id")
	}
	if offense.MessageText == "" {
		return fmt.Errorf("offense must have non-empty message_text")
	}

	// The store, not the caller, decides when the offense happened.
	now := time.Now().UTC()
	offense.Timestamp = now
	offense.CreatedAt = now

	query := `
        INSERT INTO offenses (chat_id, user_id, message_id, username, message_text, timestamp, created_at)
        VALUES (:chat_id, :user_id, :message_id, :username, :message_text, :timestamp, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, offense)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error appending offense",
			"chat_id", offense.ChatID, "user_id", offense.UserID, "error", err)
		return fmt.Errorf("%w: failed to append offense (chat %d, user %d): %v",
			ErrStoreUnavailable, offense.ChatID, offense.UserID, err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		//nolint:gosec // integer overflow conversion is acceptable here
		offense.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after appending offense",
			"chat_id", offense.ChatID, "user_id", offense.UserID, "error", err)
	}

	s.logger.DebugContext(ctx, "Offense appended successfully",
		"chat_id", offense.ChatID, "user_id", offense.UserID, "offense_id", offense.ID)
	return nil
}

// RecentOffenses retrieves the most recent 'limit' offenses, newest first.
func (s *sqlxStore) RecentOffenses(ctx context.Context, limit int) ([]Offense, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
		s.logger.DebugContext(ctx, "Invalid limit provided, using default", "default_limit", limit)
	} else if limit > maxRecentLimit {
		limit = maxRecentLimit
		s.logger.DebugContext(ctx, "Limit exceeded maximum value, capping", "capped_limit", limit)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var offenses []Offense
	query := `
        SELECT id, chat_id, user_id, message_id, username, message_text, timestamp, created_at
        FROM offenses
        ORDER BY timestamp DESC, id DESC
        LIMIT ?;
    `

	s.logger.DebugContext(ctx, "Fetching recent offenses", "limit", limit)
	err := s.db.SelectContext(ctx, &offenses, query, limit)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching offenses", "error", err)
		return nil, err
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting recent offenses", "limit", limit, "error", err)
		return nil, fmt.Errorf("%w: failed to get recent offenses: %v", ErrStoreUnavailable, err)
	}

	s.logger.DebugContext(ctx, "Fetched recent offenses successfully", "count", len(offenses))
	return offenses, nil
}

// OffenseCounts retrieves per-username offense counts for the leaderboard.
func (s *sqlxStore) OffenseCounts(ctx context.Context) ([]OffenseCount, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var counts []OffenseCount
	query := `
        SELECT username, COUNT(*) AS count
        FROM offenses
        GROUP BY username
        ORDER BY count DESC, username ASC;
    `

	s.logger.DebugContext(ctx, "Fetching offense counts")
	err := s.db.SelectContext(ctx, &counts, query)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching offense counts", "error", err)
		return nil, err
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting offense counts", "error", err)
		return nil, fmt.Errorf("%w: failed to get offense counts: %v", ErrStoreUnavailable, err)
	}

	s.logger.DebugContext(ctx, "Fetched offense counts successfully", "count", len(counts))
	return counts, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
