// package config reads the settings of the kzgsrs tools from the environment
// and an optional yaml file.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// KZGSRS_WORKERS.
const EnvPrefix = "KZGSRS"

const (
	keyWorkers      = "workers"
	keyLogLevel     = "log_level"
	keyRaw          = "raw"
	keySkipUpToDate = "skip_up_to_date"
	keySourceK      = "source_k"
	keyConfigFile   = "config"
)

// Config holds the settings of the tools
type Config struct {
	// Workers is the number of goroutines used to decode points and compute,
	// 0 for one per CPU
	Workers int
	// LogLevel is a zerolog level name
	LogLevel string
	// Raw makes the tools write uncompressed points
	Raw bool
	// SkipUpToDate makes the tools keep output files newer than their source
	SkipUpToDate bool
	// SourceK is the degree of the perpetual powers-of-tau response file the
	// tools read, 28 for the published BN254 ceremony
	SourceK uint32
}

// Load reads the configuration from KZGSRS_* environment variables and, when
// KZGSRS_CONFIG names one, a yaml file. The environment wins over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyWorkers, 0)
	v.SetDefault(keyLogLevel, zerolog.LevelInfoValue)
	v.SetDefault(keyRaw, false)
	v.SetDefault(keySkipUpToDate, false)
	v.SetDefault(keySourceK, 28)

	if file := v.GetString(keyConfigFile); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %v", file, err)
		}
	}

	c := &Config{
		Workers:      v.GetInt(keyWorkers),
		LogLevel:     v.GetString(keyLogLevel),
		Raw:          v.GetBool(keyRaw),
		SkipUpToDate: v.GetBool(keySkipUpToDate),
		SourceK:      v.GetUint32(keySourceK),
	}
	if c.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return nil, err
	}
	return c, nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %v", c.LogLevel, err)
	}
	return lvl, nil
}

// ApplyLogLevel sets the global zerolog level, which gnark's logger and the
// kzgsrs loggers derive from.
func (c *Config) ApplyLogLevel() error {
	lvl, err := c.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
