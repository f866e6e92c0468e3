package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// OISST time axes count whole days from this epoch.
var epoch = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)

// OffsetDate converts a day offset from the 1800-01-01 epoch into a calendar
// date at UTC midnight.
func OffsetDate(offset int) time.Time {
	return epoch.AddDate(0, 0, offset)
}

// Day strips any time-of-day component, leaving UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// TimeIndex resolves each requested date to its index position in a grid
// file's time axis. The axis holds day offsets from the 1800-01-01 epoch,
// one per calendar day in the file. A date with no exact match yields a
// DateNotFoundError: a miss means the grid file does not cover the year the
// partitioner assigned it, which must abort the run rather than skip rows.
func TimeIndex(axis []int, dates []time.Time) ([]int, error) {
	byDate := make(map[string]int, len(axis))
	for i, offset := range axis {
		byDate[OffsetDate(offset).Format(dateLayout)] = i
	}

	indices := make([]int, len(dates))
	for i, d := range dates {
		idx, ok := byDate[Day(d).Format(dateLayout)]
		if !ok {
			return nil, &DateNotFoundError{Date: Day(d)}
		}
		indices[i] = idx
	}
	return indices, nil
}
