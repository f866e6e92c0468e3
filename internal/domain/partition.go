package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// WorkUnit binds one calendar year's worth of requested dates to the single
// remote grid resource that covers them.
type WorkUnit struct {
	Year      int
	Remote    string      // full URL of the year's grid file
	LocalPath string      // cache path the file is fetched to
	Dates     []time.Time // requested dates falling in Year, ascending
}

// ResourceName is the deterministic per-year grid file name.
func ResourceName(year int) string {
	return fmt.Sprintf("sst.day.mean.%d.nc", year)
}

// PlanYears enumerates every calendar date in [start, end] inclusive and
// groups them by year into work units bound to baseURL and cacheDir. This is
// pure planning: no network or file access happens here. Work units are
// returned in chronological year order.
func PlanYears(start, end time.Time, baseURL, cacheDir string) ([]WorkUnit, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}

	byYear := make(map[int][]time.Time)
	var years []int
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		y := d.Year()
		if _, ok := byYear[y]; !ok {
			byYear[y] = []time.Time{}
			years = append(years, y)
		}
		byYear[y] = append(byYear[y], d)
	}

	base := strings.TrimRight(baseURL, "/")
	units := make([]WorkUnit, 0, len(years))
	for _, y := range years {
		name := ResourceName(y)
		units = append(units, WorkUnit{
			Year:      y,
			Remote:    base + "/" + name,
			LocalPath: filepath.Join(cacheDir, name),
			Dates:     byYear[y],
		})
	}
	return units, nil
}
