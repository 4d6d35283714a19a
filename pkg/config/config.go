package config

import (
	"time"

	"github.com/gdlinux/geode-installer/pkg/winereg"
)

// Config is the fully resolved configuration.
type Config struct {
	Game    GameConfig    `koanf:"game"`
	Steam   SteamConfig   `koanf:"steam"`
	Geode   GeodeConfig   `koanf:"geode"`
	HTTP    HTTPConfig    `koanf:"http"`
	Archive ArchiveConfig `koanf:"archive"`
	Wine    WineConfig    `koanf:"wine"`
}

// GameConfig identifies the Steam application to install into.
type GameConfig struct {
	AppID string `koanf:"app_id"`
}

// SteamConfig tunes Steam discovery.
type SteamConfig struct {
	ExtraRoots []string `koanf:"extra_roots"`
}

// GeodeConfig holds the release endpoints.
type GeodeConfig struct {
	APIURL     string `koanf:"api_url"`
	ReleaseURL string `koanf:"release_url"`
}

// HTTPConfig configures the HTTP client used for API calls and downloads.
type HTTPConfig struct {
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`
}

// ArchiveConfig bounds release extraction.
type ArchiveConfig struct {
	MaxEntryBytes int64 `koanf:"max_entry_bytes"`
}

// WineConfig configures the registry patch.
type WineConfig struct {
	RegistryFile string         `koanf:"registry_file"`
	Override     OverrideConfig `koanf:"override"`
}

// OverrideConfig is the registry entry written into the prefix.
type OverrideConfig struct {
	Section string `koanf:"section"`
	Key     string `koanf:"key"`
	Value   string `koanf:"value"`
}

// RegistryOverride converts the configured entry for the patcher.
func (w WineConfig) RegistryOverride() winereg.Override {
	return winereg.Override{
		Section: w.Override.Section,
		Key:     w.Override.Key,
		Value:   w.Override.Value,
	}
}
