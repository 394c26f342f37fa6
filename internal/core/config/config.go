// Package config loads application configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Server holds configuration for the API server.
type Server struct {
	// Addr is the listen address.
	Addr string `envconfig:"ADDR" default:":5000"`

	// DBPath is the SQLite database file path.
	DBPath string `envconfig:"DB_PATH" default:"inventory.db"`

	// UploadsDir is where stored product images are written.
	UploadsDir string `envconfig:"UPLOADS_DIR" default:"static/uploads"`

	// ScanAPIURL is the base URL of the product facts API used by the
	// barcode scan proxy.
	ScanAPIURL string `envconfig:"SCAN_API_URL" default:"https://world.openfoodfacts.org"`

	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Env selects development or production behavior.
	Env string `envconfig:"APP_ENV" default:"development"`
}

// LoadServer reads server configuration from HEIMINVENTAR_* env vars.
func LoadServer() (Server, error) {
	var cfg Server
	err := envconfig.Process("heiminventar", &cfg)
	return cfg, err
}

// IsDevelopment reports whether the server runs in development mode.
func (s Server) IsDevelopment() bool {
	return s.Env == "development"
}
