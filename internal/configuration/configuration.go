package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kaiwenlu/llamadeck/internal/file"
)

var defaultConfig = Config{
	BackendURL:     "http://127.0.0.1:8000",
	RequestTimeout: 120,
	DebugLogPath:   "/tmp/llamadeck-debug.log",
}

// Config holds configuration for the llamadeck client.
type Config struct {
	// BackendURL is the base URL of the local inference backend.
	BackendURL string `json:"backend_url"`
	// RequestTimeout is the HTTP timeout in seconds for gateway calls.
	// Chat turns can run long on CPU-only machines; keep this generous.
	RequestTimeout int `json:"request_timeout"`
	// DebugLogPath is where the debug logger writes.
	DebugLogPath string `json:"debug_log_path"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	if config.BackendURL == "" {
		config.BackendURL = defaultConfig.BackendURL
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultConfig.RequestTimeout
	}
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
