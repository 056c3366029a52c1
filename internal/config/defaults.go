package config

import "github.com/gabrielmiguelok/livefolio/pkg/state"

// DefaultRecipient receives contact form mail unless configured otherwise.
const DefaultRecipient = "ambatimokeshreddy@gmail.com"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:             ":8080",
			ShutdownTimeout:     "10s",
			MaxSessions:         1000,
			MaxConnectionsPerIP: 16,
			EventsPerSecond:     20,
			EventBurst:          40,
		},
		Site: SiteConfig{
			Title:           "Mokesh Reddy | Data & Development Portfolio",
			Owner:           "Mokesh Reddy",
			Description:     "Data analyst and developer. Dashboards, machine learning experiments and web apps.",
			Recipient:       DefaultRecipient,
			DefaultTab:      "data",
			LeadIn:          120,
			RevealThreshold: 0.15,
		},
		Store: StoreConfig{
			Driver: state.DriverMemory,
			Path:   "data/folio.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
