// Package usecase orchestrates SST extraction runs: year planning, grid
// retrieval and decoding, index resolution, and result assembly.
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/spatial"
	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
	"github.com/HHRClemson/hydrological-toolkit/internal/observability"
)

// Fetcher retrieves a remote grid resource to a local path. Implementations
// must be idempotent: a no-op when localPath already exists.
type Fetcher interface {
	Fetch(ctx context.Context, remoteURL, localPath string, progress domain.ProgressFunc) error
}

// Decoder parses a local grid file into decoded arrays. Longitudes are
// expected raw in [0, 360); normalization is the engine's responsibility.
type Decoder interface {
	Decode(path string) (*domain.Grid, error)
}

// Request is one extraction run: a fixed set of query locations and an
// inclusive date range.
type Request struct {
	Locations []domain.Location
	Start     time.Time
	End       time.Time
}

// NewRequest builds a request from any accepted location input shape and
// ISO date strings. Input validation happens here, before any network or
// file access.
func NewRequest(locations interface{}, startDate, endDate string) (Request, error) {
	locs, err := domain.ParseLocations(locations)
	if err != nil {
		return Request{}, err
	}

	start, err := domain.ParseDate(startDate)
	if err != nil {
		return Request{}, fmt.Errorf("start date: %w", err)
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return Request{}, fmt.Errorf("end date: %w", err)
	}

	req := Request{Locations: locs, Start: start, End: end}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks the request is non-degenerate.
func (r Request) Validate() error {
	if len(r.Locations) == 0 {
		return fmt.Errorf("at least one query location is required")
	}
	if domain.Day(r.End).Before(domain.Day(r.Start)) {
		return fmt.Errorf("end date %s is before start date %s",
			r.End.Format("2006-01-02"), r.Start.Format("2006-01-02"))
	}
	return nil
}

// Service runs extractions against one dataset location and cache.
type Service struct {
	fetcher  Fetcher
	decoder  Decoder
	baseURL  string
	cacheDir string

	// Metrics is optional; nil disables instrumentation.
	Metrics *observability.Metrics
	// Progress is forwarded to the fetcher for download reporting.
	Progress domain.ProgressFunc
}

// NewService creates an extraction service.
func NewService(fetcher Fetcher, decoder Decoder, baseURL, cacheDir string) *Service {
	return &Service{
		fetcher:  fetcher,
		decoder:  decoder,
		baseURL:  baseURL,
		cacheDir: cacheDir,
	}
}

// Execute runs one extraction: years are processed strictly sequentially,
// each fully fetched, decoded, and extracted before the next begins. The
// returned result holds one row per (date, location) pair, date-major, with
// grid-actual coordinates and sentinel values translated to missing. Fatal
// errors abort the run with no partial result.
func (s *Service) Execute(ctx context.Context, req Request) (*domain.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if s.Metrics != nil {
		s.Metrics.ExtractionRuns.Inc()
		start := time.Now()
		defer func() { s.Metrics.ExtractionDuration.Observe(time.Since(start).Seconds()) }()
	}

	result, err := s.run(ctx, req)
	if err != nil && s.Metrics != nil {
		s.Metrics.ExtractionErrors.Inc()
	}
	return result, err
}

func (s *Service) run(ctx context.Context, req Request) (*domain.Result, error) {
	units, err := domain.PlanYears(req.Start, req.End, s.baseURL, s.cacheDir)
	if err != nil {
		return nil, err
	}

	perYear := make([][]domain.Measurement, 0, len(units))
	for i, wu := range units {
		log.Printf("---------- start downloading year #%d (%d) ----------", i+1, wu.Year)
		if err := s.fetcher.Fetch(ctx, wu.Remote, wu.LocalPath, s.Progress); err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", wu.Remote, err)
		}
		log.Printf("---------- finished downloading year #%d (%d) ----------", i+1, wu.Year)

		grid, err := s.decoder.Decode(wu.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", wu.LocalPath, err)
		}

		rows, err := extractYear(grid, wu.Dates, req.Locations)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", wu.Year, err)
		}
		perYear = append(perYear, rows)

		if s.Metrics != nil {
			s.Metrics.YearsProcessed.Inc()
			s.Metrics.RowsExtracted.Add(float64(len(rows)))
		}
	}

	result := domain.Assemble(perYear)
	if result.Warning != nil {
		log.Printf("warning: %s", result.Warning.Message)
		if s.Metrics != nil {
			s.Metrics.AllMissingResults.Inc()
		}
	}
	return result, nil
}

// extractYear resolves spatial and temporal indices for one year's grid and
// emits the (date x location) cross product, date varying slower than
// location so output rows group by date in input location order.
func extractYear(grid *domain.Grid, dates []time.Time, locs []domain.Location) ([]domain.Measurement, error) {
	lons := spatial.NormalizeLons(grid.Lon)

	index := spatial.NewIndex(grid.Lat, lons)
	cells := index.Nearest(locs)

	timeIdx, err := domain.TimeIndex(grid.Time, dates)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Measurement, 0, len(dates)*len(locs))
	for di, ti := range timeIdx {
		for _, c := range cells {
			rows = append(rows, domain.Measurement{
				Date:  dates[di],
				Lat:   grid.Lat[c.LatIdx],
				Lon:   lons[c.LonIdx],
				Value: grid.SST.At(ti, c.LatIdx, c.LonIdx),
			})
		}
	}
	return rows, nil
}
