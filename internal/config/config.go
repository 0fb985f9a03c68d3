package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default download locations. {VERSION} and {LIBRARY} are substituted per
// request.
const (
	DefaultIndexURL = "https://openui5.hana.ondemand.com/{VERSION}/docs/api/api-index.json"
	DefaultAPIURL   = "https://openui5.hana.ondemand.com/{VERSION}/test-resources/{LIBRARY}/designtime/apiref/api.json"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port         int
	Env          string
	MaxBodyBytes int64

	// UI5 downloads
	UI5 UI5Config
}

// UI5Config holds the library download settings
type UI5Config struct {
	IndexURL string
	APIURL   string

	// CacheDir receives downloaded documents, one sub folder per version
	CacheDir string

	// Workers bounds parallel library downloads
	Workers int
}

// Load loads configuration from DTSGEN_* environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DTSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("env", "development")
	v.SetDefault("max_body_bytes", 32<<20)
	v.SetDefault("ui5_index_url", DefaultIndexURL)
	v.SetDefault("ui5_api_url", DefaultAPIURL)
	v.SetDefault("cache_dir", filepath.Join(os.TempDir(), "dtsgen", "sap-ui5"))
	v.SetDefault("download_workers", 4)

	cfg := &Config{
		Port:         v.GetInt("port"),
		Env:          v.GetString("env"),
		MaxBodyBytes: v.GetInt64("max_body_bytes"),
		UI5: UI5Config{
			IndexURL: v.GetString("ui5_index_url"),
			APIURL:   v.GetString("ui5_api_url"),
			CacheDir: v.GetString("cache_dir"),
			Workers:  v.GetInt("download_workers"),
		},
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("DTSGEN_PORT must be positive, got %d", c.Port)
	}
	if !strings.Contains(c.UI5.IndexURL, "{VERSION}") {
		return fmt.Errorf("DTSGEN_UI5_INDEX_URL must contain {VERSION}")
	}
	if !strings.Contains(c.UI5.APIURL, "{LIBRARY}") {
		return fmt.Errorf("DTSGEN_UI5_API_URL must contain {LIBRARY}")
	}
	if c.UI5.Workers < 1 {
		return fmt.Errorf("DTSGEN_DOWNLOAD_WORKERS must be at least 1")
	}
	return nil
}
