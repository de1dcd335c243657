package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zoobzio/sqlkit"
)

// Config is the CLI configuration, read from sqlkit.yaml, SQLKIT_*
// environment variables and flags, in increasing priority.
type Config struct {
	Dialect      string    `mapstructure:"dialect"`
	Capabilities string    `mapstructure:"capabilities"`
	Log          LogConfig `mapstructure:"log"`
}

// LogConfig selects the level and encoding of diagnostic output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"dialect":      "dialect",
	"capabilities": "capabilities",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

func registerFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Configuration file (default: ./sqlkit.yaml if present)")
	fs.String("dialect", "postgres", "Target SQL dialect")
	fs.String("capabilities", "", "YAML file with dialect capability overrides")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	fs.String("log-format", "text", "Log format: text or json")
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("SQLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return v, nil
}

// loadConfig reads the configuration file, if any, and decodes the merged
// configuration.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sqlkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewLogger creates a logger writing to w.
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
}

// capabilities returns the configured capability table.
func (c Config) capabilities() (sqlkit.CapabilityTable, error) {
	if c.Capabilities == "" {
		return sqlkit.DefaultCapabilities(), nil
	}
	return sqlkit.LoadCapabilitiesFile(c.Capabilities)
}
