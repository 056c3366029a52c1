// Package config loads livefolio settings from defaults, an optional YAML
// file and FOLIO_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gabrielmiguelok/livefolio/pkg/logging"
	"github.com/gabrielmiguelok/livefolio/pkg/state"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOLIO_"

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "folio.yml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// FOLIO_SERVER_ADDRESS -> server.address, FOLIO_SITE_DEFAULT_TAB -> site.default_tab.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable to a config key. Only the first
// underscore after the prefix separates section from field. List values
// are comma separated.
func envKey(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key = strings.Replace(key, "_", ".", 1)

	if key == "server.allowed_origins" {
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, value
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// YAML returns the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yamlv3.Marshal(c)
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("%w: server.address is required", ErrInvalid)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("%w: server.shutdown_timeout %q: %v", ErrInvalid, c.Server.ShutdownTimeout, err)
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("%w: server.max_sessions must be non-negative", ErrInvalid)
	}
	if c.Server.MaxConnectionsPerIP < 0 {
		return fmt.Errorf("%w: server.max_connections_per_ip must be non-negative", ErrInvalid)
	}
	if c.Server.EventsPerSecond < 0 || c.Server.EventBurst < 0 {
		return fmt.Errorf("%w: server.events_per_second and server.event_burst must be non-negative", ErrInvalid)
	}

	if c.Site.Recipient == "" || !strings.Contains(c.Site.Recipient, "@") {
		return fmt.Errorf("%w: site.recipient %q is not an email address", ErrInvalid, c.Site.Recipient)
	}
	if c.Site.LeadIn < 0 {
		return fmt.Errorf("%w: site.lead_in must be non-negative", ErrInvalid)
	}
	if c.Site.RevealThreshold <= 0 || c.Site.RevealThreshold > 1 {
		return fmt.Errorf("%w: site.reveal_threshold must be in (0, 1]", ErrInvalid)
	}

	switch c.Store.Driver {
	case state.DriverMemory:
	case state.DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for the sqlite driver", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: store.driver %q: must be one of memory, sqlite", ErrInvalid, c.Store.Driver)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("%w: log.format %q: must be text or json", ErrInvalid, c.Log.Format)
	}

	return nil
}

// ShutdownTimeout returns server.shutdown_timeout as a duration, falling
// back to the default when it does not parse.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultConfig().Server.ShutdownTimeout)
	}
	return d
}
