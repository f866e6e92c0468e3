package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/fetch"
	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/netcdf"
	"github.com/HHRClemson/hydrological-toolkit/internal/config"
	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
)

// DownloadSST is the one-call entry point: it accepts any supported location
// input shape plus an inclusive ISO date range, fetches the covering yearly
// grid files from the default dataset location into a fresh temporary cache,
// and returns the assembled table.
func DownloadSST(ctx context.Context, locations interface{}, startDate, endDate string) (*domain.Result, error) {
	req, err := NewRequest(locations, startDate, endDate)
	if err != nil {
		return nil, err
	}

	cacheDir, err := os.MkdirTemp("", "sst-")
	if err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	svc := NewService(fetch.NewHTTPFetcher(), netcdf.Reader{}, config.DefaultBaseURL, cacheDir)
	return svc.Execute(ctx, req)
}
