package database

import (
	"time"
)

// Offense represents one forbidden-word utterance recorded from a chat.
// Rows are append-only: the bot never updates or deletes them.
type Offense struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID      int64  `db:"chat_id"`
	UserID      int64  `db:"user_id"`
	MessageID   int64  `db:"message_id"`
	Username    string `db:"username"`
	MessageText string `db:"message_text"`

	// Timestamp is assigned by the store at insert time, never by callers.
	Timestamp time.Time `db:"timestamp"`
}

// OffenseCount is a leaderboard projection: offenses per display name.
type OffenseCount struct {
	Username string `db:"username"`
	Count    int64  `db:"count"`
}
