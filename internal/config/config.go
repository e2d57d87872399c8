package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/garyjia/election-finance/internal/format"
)

// Config holds all application configuration
type Config struct {
	Batch   BatchConfig   `mapstructure:"batch"`
	Output  OutputConfig  `mapstructure:"output"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// BatchConfig describes the workbooks processed together
type BatchConfig struct {
	Format      string             `mapstructure:"format"`
	Name        string             `mapstructure:"name"` // overrides the derived folder name
	Submissions []SubmissionConfig `mapstructure:"submissions"`
}

// SubmissionConfig is one submitted workbook; Number orders the batch
type SubmissionConfig struct {
	Number int    `mapstructure:"number"`
	Path   string `mapstructure:"path"`
}

// OutputConfig holds JSON output configuration
type OutputConfig struct {
	Dir       string `mapstructure:"dir"`
	StableIDs bool   `mapstructure:"stable_ids"`
}

// ArchiveConfig holds SQLite archive configuration
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables.
// An empty configPath yields defaults plus environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("EF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("batch.format", "")
	v.SetDefault("batch.name", "")

	v.SetDefault("output.dir", "output_json")
	v.SetDefault("output.stable_ids", false)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.path", "data/election_finance.db")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("output.dir", "EF_OUTPUT_DIR")
	_ = v.BindEnv("archive.path", "EF_ARCHIVE_PATH")
	_ = v.BindEnv("logger.level", "EF_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Batch.Format != "" {
		if _, err := format.Lookup(c.Batch.Format); err != nil {
			return fmt.Errorf("batch.format: %w", err)
		}
	}

	seen := make(map[int]bool, len(c.Batch.Submissions))
	for i, s := range c.Batch.Submissions {
		if s.Path == "" {
			return fmt.Errorf("batch.submissions[%d].path is required", i)
		}
		if s.Number <= 0 {
			return fmt.Errorf("batch.submissions[%d].number must be positive", i)
		}
		if seen[s.Number] {
			return fmt.Errorf("batch.submissions: duplicate number %d", s.Number)
		}
		seen[s.Number] = true
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Archive.Enabled && c.Archive.Path == "" {
		return fmt.Errorf("archive.path is required when archive is enabled")
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	return nil
}
