// Package config handles configuration management for geode-installer.
// It layers the embedded defaults, an optional TOML or YAML user file,
// GEODE_INSTALLER_* environment variables and command-line overrides.
package config
