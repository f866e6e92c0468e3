package domain

import (
	"fmt"
	"time"
)

// ColumnError reports that a supplied location table is missing one or both
// of the coordinate columns the caller named.
type ColumnError struct {
	LatCol string
	LonCol string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("location table must contain columns %q and %q", e.LatCol, e.LonCol)
}

// UnsupportedInputError reports a location input whose type or shape the
// toolkit does not accept. It is raised before any network or file access.
type UnsupportedInputError struct {
	Reason string
}

func (e *UnsupportedInputError) Error() string {
	return e.Reason
}

// DateNotFoundError reports a requested date with no exact match in a grid
// file's time axis. This signals a mismatch between the requested range and
// the available grid data and always aborts the run.
type DateNotFoundError struct {
	Date time.Time
}

func (e *DateNotFoundError) Error() string {
	return fmt.Sprintf("date %s not present in the grid file's time axis", e.Date.Format(dateLayout))
}
