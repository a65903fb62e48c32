package streak_test

import (
	"testing"

	"github.com/edgard/streakwatch/internal/streak"
)

func TestDetectorMatch(t *testing.T) {
	t.Parallel()

	d := streak.NewDetector([]string{"zf", "Jialat"})

	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "empty text never matches",
			input: "",
			want:  false,
		},
		{
			name:  "exact lowercase word",
			input: "zf",
			want:  true,
		},
		{
			name:  "uppercase input matches",
			input: "ZF",
			want:  true,
		},
		{
			name:  "mixed case input matches",
			input: "Zf again",
			want:  true,
		},
		{
			name:  "substring inside a longer word matches",
			input: "abzfcd",
			want:  true,
		},
		{
			name:  "word configured with uppercase matches lowercase text",
			input: "jialat lah",
			want:  true,
		},
		{
			name:  "split letters do not match",
			input: "z f",
			want:  false,
		},
		{
			name:  "unrelated text does not match",
			input: "good morning everyone",
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := d.Match(tc.input); got != tc.want {
				t.Errorf("Match(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDetectorNormalizesWords(t *testing.T) {
	t.Parallel()

	// Blank and whitespace-only entries are dropped so they can't match
	// every message.
	d := streak.NewDetector([]string{"", "   ", " zf "})

	if d.Match("completely clean message") {
		t.Error("blank configured words must not match arbitrary text")
	}
	if !d.Match("has zf inside") {
		t.Error("trimmed word should still match")
	}
}
