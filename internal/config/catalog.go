package config

import (
	"os"
	"sync"
	"time"
)

// CatalogConfig configures where the seed tool fetches catalog documents from.
type CatalogConfig struct {
	SourceURL      string
	APIToken       string
	RequestTimeout time.Duration
}

var (
	catalogConfig *CatalogConfig
	catalogOnce   sync.Once
)

func LoadCatalogConfig() *CatalogConfig {
	catalogOnce.Do(func() {
		timeout := 30 * time.Second
		if raw := os.Getenv("CATALOG_REQUEST_TIMEOUT"); raw != "" {
			if d, err := time.ParseDuration(raw); err == nil && d > 0 {
				timeout = d
			}
		}
		catalogConfig = &CatalogConfig{
			SourceURL:      os.Getenv("CATALOG_SOURCE_URL"),
			APIToken:       os.Getenv("CATALOG_API_TOKEN"),
			RequestTimeout: timeout,
		}
	})
	return catalogConfig
}
