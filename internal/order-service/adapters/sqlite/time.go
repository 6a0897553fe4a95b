package sqlite

import (
	"fmt"
	"time"
)

// SQLite has no native datetime type; timestamps are stored as RFC3339 TEXT.
// The stored layout keeps a fixed-width fractional part (unlike RFC3339Nano,
// which strips trailing zeros) so ORDER BY on the column stays chronological.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatRFC3339(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
