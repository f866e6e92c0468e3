// Package main provides the SST extraction HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/fetch"
	"github.com/HHRClemson/hydrological-toolkit/internal/adapter/netcdf"
	"github.com/HHRClemson/hydrological-toolkit/internal/config"
	httpHandler "github.com/HHRClemson/hydrological-toolkit/internal/http"
	"github.com/HHRClemson/hydrological-toolkit/internal/observability"
	"github.com/HHRClemson/hydrological-toolkit/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("sst-server version %s\n", version)
		return
	}

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SST extraction server...")
	log.Printf("Port: %s", cfg.Port)
	log.Printf("Dataset base URL: %s", cfg.BaseURL)
	log.Printf("Cache directory: %s", cfg.CacheDir)

	// Initialize the extraction service.
	extractionSvc := usecase.NewService(fetch.NewHTTPFetcher(), netcdf.Reader{}, cfg.BaseURL, cfg.CacheDir)
	extractionSvc.Metrics = observability.NewMetrics()

	// Setup router.
	router := httpHandler.SetupRouter(extractionSvc)

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/healthz", cfg.Port)
	log.Printf("API endpoints:")
	log.Printf("  - GET /v1/sst/extract")
	log.Printf("  - GET /metrics")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("SST Extraction Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  sst-server [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  SST_BASE_URL            Remote dataset base URL (default: NOAA OISST v2 highres mirror)")
	fmt.Println("  SST_CACHE_DIR           Local cache for yearly grid files (default: <tmp>/sst-cache)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /healthz                   Health check")
	fmt.Println("  GET /metrics                   Prometheus metrics")
	fmt.Println("  GET /v1/sst/extract            Extract SST values for lat/lon pairs over a date range")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  sst-server")
	fmt.Println()
	fmt.Println("  # One cell off the Louisiana coast for three days")
	fmt.Println("  curl 'localhost:8080/v1/sst/extract?lat=28.5&lon=-90.25&start=2010-01-01&end=2010-01-03'")
	fmt.Println()
}
