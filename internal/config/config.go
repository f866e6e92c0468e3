// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the HTTPS mirror of the NOAA OISST v2 high-resolution
// daily dataset (1/4 degree global grid, one file per year).
const DefaultBaseURL = "https://downloads.psl.noaa.gov/Datasets/noaa.oisst.v2.highres/"

// Config holds all service settings, populated from environment variables.
type Config struct {
	BaseURL  string // remote dataset base location
	CacheDir string // where yearly grid files are cached for one run
	Port     string // HTTP server port
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: no .env file found or error loading it: %v", err)
	}

	cfg := &Config{
		BaseURL:  getenvDefault("SST_BASE_URL", DefaultBaseURL),
		CacheDir: getenvDefault("SST_CACHE_DIR", filepath.Join(os.TempDir(), "sst-cache")),
		Port:     getenvDefault("PORT", "8080"),
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
