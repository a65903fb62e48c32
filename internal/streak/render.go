package streak

import (
	"fmt"
	"strings"
	"time"

	"github.com/edgard/streakwatch/internal/database"
)

// The fixed phrasing set. Each template is parameterized only by computed
// report fields, which keeps rendering pure and snapshot-testable.
const (
	firstEverTemplate = "Alrighttt! %s just started us off with the first instance of his name! " +
		"Let's see how long we can go without saying his name again!"

	sameDayTemplate = "Jialat! %s just ruined the streak. We couldn’t even go 24 hours without saying his name??\n" +
		"Previously, %s messed up on %s with:\n\"%s\""

	multiDayTemplate = "Jialat! %s just ruined the streak. We made it %d %s since the last slip-up.\n" +
		"Previously, %s messed up on %s with:\n\"%s\""

	leaderboardEmpty  = "No one has slipped up yet. The streak lives on!"
	leaderboardHeader = "Hall of shame:"
	leaderboardFooter = "Stay vigilant."

	recentEmpty  = "No recent slip-ups. Keep it going!"
	recentHeader = "Latest slip-ups:"
)

// FormatTimestamp renders an instant as e.g. "07 Mar 2024 09:41 a.m.":
// two-digit day, abbreviated month, four-digit year, 12-hour time with
// lower-case dotted meridiem.
func FormatTimestamp(t time.Time) string {
	s := t.Format("02 Jan 2006 03:04 PM")
	s = strings.ReplaceAll(s, "AM", "a.m.")
	s = strings.ReplaceAll(s, "PM", "p.m.")
	return s
}

// RenderReport renders the streak-broken reply for a report. username is the
// display name of the user who just triggered the offense.
//
// Selection is a single rule on whole days: 0 days means the same-day
// phrasing, anything else the day-count phrasing with correct pluralization.
func RenderReport(r Report, username string) string {
	if r.FirstEver {
		return fmt.Sprintf(firstEverTemplate, username)
	}

	prevTime := FormatTimestamp(r.PreviousTimestamp)
	if r.Days == 0 {
		return fmt.Sprintf(sameDayTemplate, username, r.PreviousOffender, prevTime, r.PreviousText)
	}

	dayLabel := "days"
	if r.Days == 1 {
		dayLabel = "day"
	}
	return fmt.Sprintf(multiDayTemplate, username, r.Days, dayLabel, r.PreviousOffender, prevTime, r.PreviousText)
}

// RenderLeaderboard renders offender counts as a numbered list with a fixed
// closing remark, or the empty-state message when no offenses exist.
func RenderLeaderboard(counts []database.OffenseCount) string {
	if len(counts) == 0 {
		return leaderboardEmpty
	}

	var b strings.Builder
	b.WriteString(leaderboardHeader)
	b.WriteString("\n")
	for i, c := range counts {
		fmt.Fprintf(&b, "%d. %s: %d\n", i+1, c.Username, c.Count)
	}
	b.WriteString(leaderboardFooter)
	return b.String()
}

// RenderRecent renders the latest offenses, newest first, one line per
// offense, or the empty-state message when none exist.
func RenderRecent(offenses []database.Offense) string {
	if len(offenses) == 0 {
		return recentEmpty
	}

	var b strings.Builder
	b.WriteString(recentHeader)
	for _, o := range offenses {
		fmt.Fprintf(&b, "\n%s %s: \"%s\"", FormatTimestamp(o.Timestamp), o.Username, o.MessageText)
	}
	return b.String()
}
