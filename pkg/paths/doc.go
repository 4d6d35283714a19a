// Package paths provides centralized path handling for geode-installer.
//
// It resolves the installer's own XDG locations (configuration and state)
// and expands user-supplied paths such as "~/Games/gd". Steam and Wine
// locations are discovered by pkg/steam, not here.
//
// # Environment Variables
//
//   - GEODE_INSTALLER_CONFIG_DIR: Override the config directory
//     (default: $XDG_CONFIG_HOME/geode-installer)
//   - GEODE_INSTALLER_STATE_DIR: Override the state directory holding the
//     log file (default: $XDG_STATE_HOME/geode-installer)
//
// # Usage
//
//	p := paths.New()
//	cfgFile := p.ConfigFile()   // ~/.config/geode-installer/config.toml
//	logFile := p.LogFilePath()  // ~/.local/state/geode-installer/geode-installer.log
package paths
