// Command sstextract runs one extraction and writes the result table as CSV.
//
// Locations come either from repeated -lat/-lon values or from a CSV file
// with caller-named coordinate columns.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/csvtable"
	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/fetch"
	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/netcdf"
	"github.com/HHRClemson/hydrological-toolkit/internal/config"
	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
	"github.com/HHRClemson/hydrological-toolkit/internal/usecase"
)

func main() {
	latList := flag.String("lat", "", "Comma-separated latitudes, paired with -lon by position")
	lonList := flag.String("lon", "", "Comma-separated longitudes, paired with -lat by position")
	locFile := flag.String("locations", "", "CSV file of locations (alternative to -lat/-lon)")
	latCol := flag.String("lat-col", "LAT", "Latitude column name in the locations file")
	lonCol := flag.String("lon-col", "LON", "Longitude column name in the locations file")
	start := flag.String("start", "", "Start date, YYYY-MM-DD (inclusive)")
	end := flag.String("end", "", "End date, YYYY-MM-DD (inclusive)")
	out := flag.String("out", "", "Output CSV path (default: stdout)")
	flag.Parse()

	if *start == "" || *end == "" {
		log.Fatal("-start and -end are required")
	}

	locs, err := parseLocationFlags(*latList, *lonList, *locFile, *latCol, *lonCol)
	if err != nil {
		log.Fatalf("Failed to read locations: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	req, err := usecase.NewRequest(locs, *start, *end)
	if err != nil {
		log.Fatalf("Invalid request: %v", err)
	}

	svc := usecase.NewService(fetch.NewHTTPFetcher(), netcdf.Reader{}, cfg.BaseURL, cfg.CacheDir)
	svc.Progress = logProgress()

	result, err := svc.Execute(context.Background(), req)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	if result.Warning != nil {
		log.Printf("WARNING: %s", result.Warning.Message)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := writeCSV(w, result.Records); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Wrote %d rows", len(result.Records))
}

// parseLocationFlags builds the query locations from either flag form.
func parseLocationFlags(latList, lonList, locFile, latCol, lonCol string) ([]domain.Location, error) {
	if locFile != "" {
		table, err := csvtable.LoadTable(locFile)
		if err != nil {
			return nil, err
		}
		return domain.LocationsFromTable(table, latCol, lonCol)
	}

	lats, err := parseFloats(latList)
	if err != nil {
		return nil, fmt.Errorf("-lat: %w", err)
	}
	lons, err := parseFloats(lonList)
	if err != nil {
		return nil, fmt.Errorf("-lon: %w", err)
	}
	if len(lats) == 0 || len(lats) != len(lons) {
		return nil, fmt.Errorf("-lat and -lon need the same non-zero number of values (got %d and %d)",
			len(lats), len(lons))
	}

	locs := make([]domain.Location, len(lats))
	for i := range lats {
		locs[i] = domain.Location{Lat: lats[i], Lon: lons[i]}
	}
	return locs, nil
}

func parseFloats(list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// writeCSV emits the result table with the DATE, LAT, LON, SST columns.
// Missing measurements become empty cells.
func writeCSV(w io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"DATE", "LAT", "LON", "SST"}); err != nil {
		return err
	}
	for _, rec := range records {
		sst := ""
		if rec.SST != nil {
			sst = strconv.FormatFloat(*rec.SST, 'f', -1, 64)
		}
		row := []string{
			rec.Date.Format("2006-01-02"),
			strconv.FormatFloat(rec.Lat, 'f', -1, 64),
			strconv.FormatFloat(rec.Lon, 'f', -1, 64),
			sst,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// logProgress reports download progress at most once per ~16 MB of data so
// big yearly files do not flood the log.
func logProgress() domain.ProgressFunc {
	const step = int64(16 << 20)
	var next int64 = step
	return func(bytesSoFar, _, totalSize int64) {
		if bytesSoFar < next && bytesSoFar != totalSize {
			return
		}
		next = bytesSoFar + step
		if totalSize > 0 {
			log.Printf("downloaded %.1f MB of %.1f MB", mb(bytesSoFar), mb(totalSize))
		} else {
			log.Printf("downloaded %.1f MB", mb(bytesSoFar))
		}
	}
}

func mb(n int64) float64 {
	return float64(n) / (1 << 20)
}
