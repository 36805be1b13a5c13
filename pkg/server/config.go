package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loadable from a YAML file. Zero
// values fall back to the defaults below; command-line flags override the
// file.
type Config struct {
	Listen string `yaml:"listen"`

	Database struct {
		// Type is sqlite, postgres, or mysql.
		Type string `yaml:"type"`
		DSN  string `yaml:"dsn"`
	} `yaml:"database"`

	Scoring struct {
		// RemoteURL is the base URL of the scoring collaborator. Empty
		// means the server's own local heuristic endpoint.
		RemoteURL string `yaml:"remoteUrl"`
		// QuietPeriod is the auto-scoring debounce interval, in Go
		// duration syntax ("800ms", "1s").
		QuietPeriod Duration `yaml:"quietPeriod"`
	} `yaml:"scoring"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// Duration wraps time.Duration so YAML configs can use "800ms"/"1s" syntax.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{Listen: ":8080"}
	cfg.Database.Type = "sqlite"
	cfg.Database.DSN = "file:asset-library.db"
	cfg.Scoring.QuietPeriod = Duration(800 * time.Millisecond)
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.Scoring.QuietPeriod <= 0 {
		cfg.Scoring.QuietPeriod = Duration(800 * time.Millisecond)
	}
	return cfg, nil
}
