package utils

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestFormatQueueToken(t *testing.T) {
    tests := []struct {
        name string
        day  time.Time
        seq  int
        want string
    }{
        {"november fifth", time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC), 7, "0511-007"},
        {"first of the day", time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC), 1, "0511-001"},
        {"single digit day and month", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), 42, "0203-042"},
        {"sequence past padding", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), 1234, "3112-1234"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, FormatQueueToken(tt.day, tt.seq))
        })
    }
}

func TestTokenSequence(t *testing.T) {
    tests := []struct {
        name  string
        token string
        want  int
    }{
        {"normal token", "0511-007", 7},
        {"unpadded sequence", "0511-1234", 1234},
        {"no hyphen", "0511007", 0},
        {"garbage suffix", "0511-abc", 0},
        {"empty string", "", 0},
        {"trailing hyphen", "0511-", 0},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, TokenSequence(tt.token))
        })
    }
}

func TestFormatQueueTokenRoundTrip(t *testing.T) {
    day := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
    for _, seq := range []int{1, 9, 10, 99, 100, 999} {
        assert.Equal(t, seq, TokenSequence(FormatQueueToken(day, seq)))
    }
}

func TestParseQueueDate(t *testing.T) {
    loc := time.UTC

    got := ParseQueueDate("2026-11-05", loc)
    assert.Equal(t, time.Date(2026, time.November, 5, 0, 0, 0, 0, loc), got)

    // Malformed and empty values fall back to today's date rather than
    // failing the check-in.
    today := DayStart(time.Now().In(loc))
    assert.Equal(t, today, ParseQueueDate("", loc))
    assert.Equal(t, today, ParseQueueDate("not-a-date", loc))
    assert.Equal(t, today, ParseQueueDate("05/11/2026", loc))
}

func TestDayBounds(t *testing.T) {
    at := time.Date(2026, time.November, 5, 14, 30, 12, 0, time.UTC)
    start, end := DayBounds(at)
    assert.Equal(t, time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC), start)
    assert.True(t, end.After(at))
    assert.Equal(t, 5, end.Day())
    assert.Equal(t, 23, end.Hour())
}
