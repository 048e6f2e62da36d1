package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// UpstreamConfig contains the provider endpoints and request identity.
//
// LegacyURL is a template with {owner} and {kind} placeholders, ModernURL only needs {kind}.
type UpstreamConfig struct {
	LegacyURL       string `toml:"legacy_url"`
	ModernURL       string `toml:"modern_url"`
	UserAgent       string `toml:"user_agent"`
	AcceptLanguage  string `toml:"accept_language"`
	Timeout         string `toml:"timeout"`
	FollowRedirects bool   `toml:"follow_redirects"`
	MaxBodyBytes    int64  `toml:"max_body_bytes"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Addr returns the host:port pair the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TimeoutDuration parses the configured upstream timeout.
func (u UpstreamConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(u.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: upstream timeout %q: %v", ErrInvalidConfig, u.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: upstream timeout must be positive", ErrInvalidConfig)
	}
	return d, nil
}

// LogLevel parses the configured [log.Level], defaulting to info when unset.
func (l LogConfig) LogLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log level %q", ErrInvalidConfig, l.Level)
	}
	return lvl, nil
}

// LogFormatter maps the configured format (text, json or logfmt) onto a [log.Formatter].
func (l LogConfig) LogFormatter() (log.Formatter, error) {
	switch strings.ToLower(l.Format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("%w: log format %q", ErrInvalidConfig, l.Format)
}

// Validate checks the values that cannot be defaulted later.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d", ErrInvalidConfig, c.Server.Port)
	}
	if !strings.Contains(c.Upstream.LegacyURL, "{owner}") || !strings.Contains(c.Upstream.LegacyURL, "{kind}") {
		return fmt.Errorf("%w: upstream legacy_url needs {owner} and {kind}", ErrInvalidConfig)
	}
	if !strings.Contains(c.Upstream.ModernURL, "{kind}") {
		return fmt.Errorf("%w: upstream modern_url needs {kind}", ErrInvalidConfig)
	}
	if c.Upstream.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: upstream max_body_bytes must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Upstream.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Log.LogLevel(); err != nil {
		return err
	}
	if _, err := c.Log.LogFormatter(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
