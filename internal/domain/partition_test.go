package domain

import (
	"path/filepath"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanYears_SpansYearBoundary(t *testing.T) {
	units, err := PlanYears(date(2010, 12, 30), date(2011, 1, 2), "https://example.org/data/", "/tmp/cache")
	if err != nil {
		t.Fatalf("PlanYears() error: %v", err)
	}

	if len(units) != 2 {
		t.Fatalf("got %d work units, want 2", len(units))
	}

	u2010, u2011 := units[0], units[1]
	if u2010.Year != 2010 || u2011.Year != 2011 {
		t.Fatalf("years = %d, %d; want 2010, 2011", u2010.Year, u2011.Year)
	}

	wantDates2010 := []time.Time{date(2010, 12, 30), date(2010, 12, 31)}
	wantDates2011 := []time.Time{date(2011, 1, 1), date(2011, 1, 2)}
	assertDates(t, u2010.Dates, wantDates2010)
	assertDates(t, u2011.Dates, wantDates2011)

	if u2010.Remote != "https://example.org/data/sst.day.mean.2010.nc" {
		t.Errorf("2010 remote = %s", u2010.Remote)
	}
	if u2011.LocalPath != filepath.Join("/tmp/cache", "sst.day.mean.2011.nc") {
		t.Errorf("2011 local path = %s", u2011.LocalPath)
	}
}

func assertDates(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlanYears_SingleDay(t *testing.T) {
	units, err := PlanYears(date(2015, 7, 4), date(2015, 7, 4), "https://example.org", "/cache")
	if err != nil {
		t.Fatalf("PlanYears() error: %v", err)
	}
	if len(units) != 1 || len(units[0].Dates) != 1 {
		t.Fatalf("got %+v, want one unit with one date", units)
	}
}

func TestPlanYears_LeapYearEnumeration(t *testing.T) {
	units, err := PlanYears(date(2012, 1, 1), date(2012, 12, 31), "https://example.org", "/cache")
	if err != nil {
		t.Fatalf("PlanYears() error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if len(units[0].Dates) != 366 {
		t.Errorf("2012 has %d dates, want 366", len(units[0].Dates))
	}
}

func TestPlanYears_EndBeforeStart(t *testing.T) {
	if _, err := PlanYears(date(2011, 1, 2), date(2010, 12, 30), "https://example.org", "/cache"); err == nil {
		t.Fatal("expected error when end precedes start")
	}
}

func TestPlanYears_StripsTimeOfDay(t *testing.T) {
	start := time.Date(2010, 3, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2010, 3, 2, 0, 1, 0, 0, time.UTC)
	units, err := PlanYears(start, end, "https://example.org", "/cache")
	if err != nil {
		t.Fatalf("PlanYears() error: %v", err)
	}
	assertDates(t, units[0].Dates, []time.Time{date(2010, 3, 1), date(2010, 3, 2)})
}
