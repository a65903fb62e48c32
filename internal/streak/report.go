package streak

import (
	"errors"
	"time"

	"github.com/edgard/streakwatch/internal/database"
)

// ErrNegativeElapsed indicates the two most recent offenses came back in an
// order that yields a negative elapsed duration. That is a data-integrity
// fault in the store, not a valid report state: callers should log it and
// render the first-ever phrasing instead of crashing.
var ErrNegativeElapsed = errors.New("negative elapsed duration between offenses")

const day = 24 * time.Hour

// Report is the derived value a reply is rendered from. It is computed from
// the two most recently stored offenses (the one just inserted and the one
// immediately before it) and is never persisted.
type Report struct {
	// FirstEver is true when fewer than two offenses exist in storage.
	FirstEver bool

	// Elapsed is the duration between the previous offense and the new one.
	// Zero when FirstEver.
	Elapsed time.Duration

	// Days is Elapsed truncated to whole days: a 23-hour gap is 0 days,
	// a 25-hour gap is 1 day.
	Days int

	// Attributes of the previous offense. Undefined when FirstEver.
	PreviousOffender  string
	PreviousText      string
	PreviousTimestamp time.Time
}

// Compute derives a Report from the most recent offenses, newest first.
// recent[0] is expected to be the offense just recorded and recent[1], if
// present, the one immediately prior in storage order.
//
// On a negative elapsed duration Compute returns a first-ever Report along
// with ErrNegativeElapsed so the caller can log the fault and still reply.
func Compute(recent []database.Offense) (Report, error) {
	if len(recent) < 2 {
		return Report{FirstEver: true}, nil
	}

	newest, previous := recent[0], recent[1]
	elapsed := newest.Timestamp.Sub(previous.Timestamp)
	if elapsed < 0 {
		return Report{FirstEver: true}, ErrNegativeElapsed
	}

	return Report{
		Elapsed:           elapsed,
		Days:              int(elapsed / day),
		PreviousOffender:  previous.Username,
		PreviousText:      previous.MessageText,
		PreviousTimestamp: previous.Timestamp,
	}, nil
}
