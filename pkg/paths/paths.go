package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/mitchellh/go-homedir"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for geode-installer
	EnvConfigDir = "GEODE_INSTALLER_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for geode-installer
	EnvStateDir = "GEODE_INSTALLER_STATE_DIR"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "geode-installer"

	// LogFileName is the name of the log file
	LogFileName = "geode-installer.log"
)

// ConfigFileNames lists the user config file names probed, in order.
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Paths provides the installer's own directory layout
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFile() string
	LogFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New creates a Paths instance honouring the environment overrides.
func New() Paths {
	p := &paths{
		configDir: filepath.Join(xdg.ConfigHome, AppDirName),
		stateDir:  filepath.Join(xdg.StateHome, AppDirName),
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandOrKeep(dir)
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = expandOrKeep(dir)
	}
	return p
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) StateDir() string {
	return p.stateDir
}

// ConfigFile returns the first existing config file in ConfigDir, or the
// default TOML location when none exists yet.
func (p *paths) ConfigFile() string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(p.configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(p.configDir, ConfigFileNames[0])
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "unable to determine home directory")
	}
	return home, nil
}

// ExpandHome expands a leading ~ to the user's home directory and cleans
// the result. Paths without ~ are only cleaned.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "cannot expand %s", path).
			WithDetail("path", path)
	}
	return filepath.Clean(expanded), nil
}

func expandOrKeep(path string) string {
	if expanded, err := ExpandHome(path); err == nil {
		return expanded
	}
	return path
}
