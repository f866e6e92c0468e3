package domain

import "time"

// ProgressFunc receives download progress: bytes transferred so far, the
// size of the block just written, and the total size (-1 when unknown).
type ProgressFunc func(bytesSoFar, blockSize, totalSize int64)

// Measurement is one raw extracted value before sentinel translation.
type Measurement struct {
	Date  time.Time
	Lat   float64 // grid cell's actual latitude, not the query's
	Lon   float64 // grid cell's actual longitude, normalized to [-180, 180]
	Value float64
}

// Record is one row of the output table. A nil SST means the grid holds no
// measurement for that cell and date (land or missing data).
type Record struct {
	Date time.Time
	Lat  float64
	Lon  float64
	SST  *float64
}

// Warning codes carried on a Result.
const WarnAllMissing = "all_missing"

// Warning is a non-fatal diagnostic attached to an otherwise complete
// result. The caller decides how to surface it.
type Warning struct {
	Code    string
	Message string
}

// Result is the assembled output table plus an optional diagnostic.
type Result struct {
	Records []Record
	Warning *Warning
}

// Assemble concatenates per-year row sets in the order given (chronological,
// since years are processed in ascending date order) and translates sentinel
// values into the missing marker. When every value is missing the result
// carries the all-missing warning: the usual cause is query locations on
// land, since the dataset has sea-only coverage.
func Assemble(years [][]Measurement) *Result {
	total := 0
	for _, rows := range years {
		total += len(rows)
	}

	records := make([]Record, 0, total)
	missing := 0
	for _, rows := range years {
		for _, m := range rows {
			rec := Record{Date: m.Date, Lat: m.Lat, Lon: m.Lon}
			if m.Value > MissingThreshold {
				v := m.Value
				rec.SST = &v
			} else {
				missing++
			}
			records = append(records, rec)
		}
	}

	result := &Result{Records: records}
	if total > 0 && missing == total {
		result.Warning = &Warning{
			Code:    WarnAllMissing,
			Message: "all sst measurements are missing; this usually means the locations provided are on land",
		}
	}
	return result
}
