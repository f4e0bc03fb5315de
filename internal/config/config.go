// Package config implements TOML configuration loading, validation, and
// environment overrides for o365panel. The override chain is
// defaults -> config file -> environment -> CLI flags, and the resolved
// value is immutable after load: it is read once at startup and injected
// into each client constructor.
package config

// Config is the top-level configuration structure parsed from a TOML file.
type Config struct {
	// Listen is the address the HTTP server binds, e.g. ":34343".
	Listen string `toml:"listen"`
	// StaticDir is the directory served for unmatched routes (the
	// front-end bundle). Empty disables static serving.
	StaticDir string `toml:"static_dir"`
	// AdminToken is the shared secret for admin-gated endpoints.
	AdminToken string `toml:"admin_token"`
	LogLevel   string `toml:"log_level"`

	Graph GraphConfig `toml:"graph"`
	Steam SteamConfig `toml:"steam"`
}

// GraphConfig holds the registered-application credentials for the
// Microsoft Graph client-credentials grant. BaseURL and TokenURL default
// to the public endpoints; tests point them at fakes.
type GraphConfig struct {
	TenantID     string `toml:"tenant_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	BaseURL      string `toml:"base_url"`
	TokenURL     string `toml:"token_url"`
}

// SteamConfig holds the Steam Web API key. BaseURL and CDNURL default to
// the public endpoints.
type SteamConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	CDNURL  string `toml:"cdn_url"`
}

// Default values applied before the config file is read.
const (
	DefaultListen   = ":34343"
	DefaultLogLevel = "info"
)

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Listen:   DefaultListen,
		LogLevel: DefaultLogLevel,
	}
}

// DefaultConfigPath is where Load looks when no --config flag or
// environment override is given.
const DefaultConfigPath = "o365panel.toml"
