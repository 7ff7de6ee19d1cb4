// Package config loads CLI configuration from a YAML file, a .env file and
// MINIGRAD_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "MINIGRAD"

// Common errors.
var (
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidGradCheck = errors.New("invalid gradient check settings")
)

// Config is the CLI configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	GradCheck GradCheckConfig `mapstructure:"gradcheck"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// GradCheckConfig controls finite-difference checking.
type GradCheckConfig struct {
	Step      float64 `mapstructure:"step"`
	Tolerance float64 `mapstructure:"tolerance"`
}

// Options selects explicit files. Empty paths fall back to the search locations.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load reads configuration. Missing files are not an error; malformed ones are.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = firstExisting("./config.yml", "./cmd/minigrad/config.yml")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = firstExisting(".env.minigrad", ".env")
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalidLogLevel)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidLogFormat)
	}
	if !(c.GradCheck.Step > 0) || !(c.GradCheck.Tolerance > 0) {
		return fmt.Errorf("gradcheck step %g, tolerance %g: %w",
			c.GradCheck.Step, c.GradCheck.Tolerance, ErrInvalidGradCheck)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("gradcheck.step", 1e-6)
	v.SetDefault("gradcheck.tolerance", 1e-4)
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
