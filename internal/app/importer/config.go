package importer

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds import run settings.
type Config struct {
	SourcePath      string `yaml:"source_path"      env:"SEEDER_SOURCE_PATH"`
	DryRun          bool   `yaml:"dry_run"          env:"SEEDER_DRY_RUN"`
	DefaultCurrency string `yaml:"default_currency" env:"SEEDER_DEFAULT_CURRENCY" env-default:"USD"`
}

// LoadConfig reads importer configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("importer config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("importer config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("importer config: read env: %w", err)
	}

	return &cfg, nil
}
