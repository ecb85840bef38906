package utils // queue token and calendar-day helpers

import (
    "fmt"
    "strconv"
    "strings"
    "time"
)

// Queue tokens are the short identifiers handed to patients at check-in,
// formatted as two-digit day, two-digit month, hyphen, zero-padded
// three-digit sequence: the 7th token of November 5th is "0511-007".
// The sequence is clinic-wide per calendar day, not per doctor.

// FormatQueueToken renders the token for a given day and sequence.  The
// day/month come from the queue date, not from "today".
func FormatQueueToken(day time.Time, seq int) string {
    return fmt.Sprintf("%02d%02d-%03d", day.Day(), int(day.Month()), seq)
}

// TokenSequence extracts the numeric sequence from a token string.  A
// token without a hyphen or with a non-numeric suffix yields 0, so
// malformed rows never block allocation of the next sequence.
func TokenSequence(token string) int {
    i := strings.LastIndexByte(token, '-')
    if i < 0 {
        return 0
    }
    n, err := strconv.Atoi(token[i+1:])
    if err != nil || n < 0 {
        return 0
    }
    return n
}

// ParseQueueDate parses a YYYY-MM-DD day in the clinic's timezone.  An
// empty or malformed value falls back to the current date instead of
// failing the check-in.
func ParseQueueDate(s string, loc *time.Location) time.Time {
    if loc == nil {
        loc = time.Local
    }
    if s != "" {
        if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
            return t
        }
    }
    return DayStart(time.Now().In(loc))
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds returns the inclusive bounds of t's calendar day, from
// midnight to 23:59:59.999.
func DayBounds(t time.Time) (time.Time, time.Time) {
    start := DayStart(t)
    return start, start.Add(24*time.Hour - time.Millisecond)
}

// DateString renders t as the YYYY-MM-DD form used for DATE columns.
func DateString(t time.Time) string {
    return t.Format("2006-01-02")
}
