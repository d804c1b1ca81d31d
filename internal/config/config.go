// Package config loads runtime configuration from defaults, an optional YAML
// file, and FORMPLAY_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: server.addr is read from
// FORMPLAY_SERVER_ADDR.
const EnvPrefix = "FORMPLAY"

// Config is the full runtime configuration.
type Config struct {
	Server Server `mapstructure:"server"`
	Log    Log    `mapstructure:"log"`
	Form   Form   `mapstructure:"form"`
	Theme  Theme  `mapstructure:"theme"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr        string        `mapstructure:"addr"`
	Mode        string        `mapstructure:"mode"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	MaxSessions int           `mapstructure:"max_sessions"`
}

// Log configures the zap logger and its optional rotated file sink.
type Log struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Form selects the form document and its mount behaviour. An empty Document
// uses the bundled profile schema.
type Form struct {
	Document      string            `mapstructure:"document"`
	Operation     string            `mapstructure:"operation"`
	Defaults      map[string]string `mapstructure:"defaults"`
	ResetOnSubmit bool              `mapstructure:"reset_on_submit"`
	Watch         bool              `mapstructure:"watch"`
}

// Theme picks the theme variant of the HTML renderer.
type Theme struct {
	Variant string `mapstructure:"variant"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			Mode:        "release",
			SessionTTL:  30 * time.Minute,
			MaxSessions: 10000,
		},
		Log: Log{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Form: Form{
			Operation: "submitProfile",
			Defaults: map[string]string{
				"name":  "Reem",
				"age":   "29",
				"color": "Blue",
			},
		},
	}
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)
	v.SetDefault("server.max_sessions", d.Server.MaxSessions)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("form.document", d.Form.Document)
	v.SetDefault("form.operation", d.Form.Operation)
	// one key per value so env vars and partial files override single fields
	for name, value := range d.Form.Defaults {
		v.SetDefault("form.defaults."+name, value)
	}
	v.SetDefault("form.reset_on_submit", d.Form.ResetOnSubmit)
	v.SetDefault("form.watch", d.Form.Watch)
	v.SetDefault("theme.variant", d.Theme.Variant)
}

// Validate rejects values the rest of the program cannot act on.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release, or test", c.Server.Mode))
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, errors.New("server.session_ttl must be positive"))
	}
	if c.Server.MaxSessions < 0 {
		errs = append(errs, errors.New("server.max_sessions must not be negative"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	if strings.TrimSpace(c.Form.Operation) == "" {
		errs = append(errs, errors.New("form.operation is required"))
	}
	if c.Form.Watch && strings.TrimSpace(c.Form.Document) == "" {
		errs = append(errs, errors.New("form.watch requires form.document"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
