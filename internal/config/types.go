package config

// Config is the top-level livefolio configuration, corresponding to folio.yml.
type Config struct {
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	Store   StoreConfig   `yaml:"store" koanf:"store"`
	Content ContentConfig `yaml:"content" koanf:"content"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP settings. MaxConnectionsPerIP caps open live
// sockets per client address; EventsPerSecond and EventBurst limit client
// events per socket. Zero disables either limit.
type ServerConfig struct {
	Address             string   `yaml:"address" koanf:"address"`
	Debug               bool     `yaml:"debug" koanf:"debug"`
	AllowedOrigins      []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	ShutdownTimeout     string   `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
	MaxSessions         int      `yaml:"max_sessions" koanf:"max_sessions"`
	MaxConnectionsPerIP int      `yaml:"max_connections_per_ip" koanf:"max_connections_per_ip"`
	EventsPerSecond     float64  `yaml:"events_per_second" koanf:"events_per_second"`
	EventBurst          int      `yaml:"event_burst" koanf:"event_burst"`
}

// SiteConfig holds what the page shows and how it behaves.
type SiteConfig struct {
	Title           string  `yaml:"title" koanf:"title"`
	Owner           string  `yaml:"owner" koanf:"owner"`
	Description     string  `yaml:"description" koanf:"description"`
	Recipient       string  `yaml:"recipient" koanf:"recipient"`
	DefaultTab      string  `yaml:"default_tab" koanf:"default_tab"`
	LeadIn          float64 `yaml:"lead_in" koanf:"lead_in"`
	RevealThreshold float64 `yaml:"reveal_threshold" koanf:"reveal_threshold"`
}

// StoreConfig selects where the theme flag is persisted.
type StoreConfig struct {
	Driver string `yaml:"driver" koanf:"driver"`
	Path   string `yaml:"path" koanf:"path"`
}

// ContentConfig points at optional on-disk content.
type ContentConfig struct {
	// ProjectsDir replaces the embedded project files when set.
	ProjectsDir string `yaml:"projects_dir" koanf:"projects_dir"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
