package config

import "os"

// Environment variable names for overrides. Secrets are commonly supplied
// this way in container deployments instead of living in the config file.
const (
	EnvConfig       = "O365PANEL_CONFIG"
	EnvListen       = "O365PANEL_LISTEN"
	EnvAdminToken   = "O365PANEL_ADMIN_TOKEN"
	EnvTenantID     = "O365PANEL_TENANT_ID"
	EnvClientID     = "O365PANEL_CLIENT_ID"
	EnvClientSecret = "O365PANEL_CLIENT_SECRET"
	EnvSteamAPIKey  = "O365PANEL_STEAM_API_KEY"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath   string
	Listen       string
	AdminToken   string
	TenantID     string
	ClientID     string
	ClientSecret string
	SteamAPIKey  string
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify the Config; Resolve applies the fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath:   os.Getenv(EnvConfig),
		Listen:       os.Getenv(EnvListen),
		AdminToken:   os.Getenv(EnvAdminToken),
		TenantID:     os.Getenv(EnvTenantID),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		SteamAPIKey:  os.Getenv(EnvSteamAPIKey),
	}
}

// apply overlays non-empty override values onto cfg.
func (e EnvOverrides) apply(cfg *Config) {
	if e.Listen != "" {
		cfg.Listen = e.Listen
	}

	if e.AdminToken != "" {
		cfg.AdminToken = e.AdminToken
	}

	if e.TenantID != "" {
		cfg.Graph.TenantID = e.TenantID
	}

	if e.ClientID != "" {
		cfg.Graph.ClientID = e.ClientID
	}

	if e.ClientSecret != "" {
		cfg.Graph.ClientSecret = e.ClientSecret
	}

	if e.SteamAPIKey != "" {
		cfg.Steam.APIKey = e.SteamAPIKey
	}
}
