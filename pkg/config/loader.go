package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys are separated
// by a double underscore: GEODE_INSTALLER_HTTP__USER_AGENT sets
// http.user_agent.
const EnvPrefix = "GEODE_INSTALLER_"

// Options selects the layers applied on top of the embedded defaults.
type Options struct {
	// File is an explicit config file. It must exist. When empty the
	// default location under the XDG config directory is used if present.
	File string

	// Overrides are dotted keys applied last, typically from flags.
	Overrides map[string]interface{}

	// SkipUserFile disables the default-location lookup.
	SkipUserFile bool
}

// Load builds the configuration from all layers.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	userFile, err := resolveUserFile(opts)
	if err != nil {
		return nil, err
	}
	if userFile != "" {
		parser, err := parserFor(userFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(userFile), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile).
				WithDetail("path", userFile)
		}
		logger.Debug().Str("path", userFile).Msg("Loaded user config")
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Post-process
	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps GEODE_INSTALLER_WINE__OVERRIDE__KEY to wine.override.key.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func resolveUserFile(opts Options) (string, error) {
	if opts.File != "" {
		path, err := paths.ExpandHome(opts.File)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", path).
				WithDetail("path", path)
		}
		return path, nil
	}
	if opts.SkipUserFile {
		return "", nil
	}

	path := paths.New().ConfigFile()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q, use .toml or .yaml", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func postProcessConfig(cfg *Config) error {
	cfg.Game.AppID = strings.TrimSpace(cfg.Game.AppID)
	if cfg.Game.AppID == "" {
		return errors.New(errors.ErrValidation, "game.app_id must not be empty")
	}
	for _, r := range cfg.Game.AppID {
		if r < '0' || r > '9' {
			return errors.Newf(errors.ErrValidation, "game.app_id must be numeric, got %q", cfg.Game.AppID)
		}
	}

	roots := make([]string, 0, len(cfg.Steam.ExtraRoots))
	for _, root := range cfg.Steam.ExtraRoots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		expanded, err := paths.ExpandHome(root)
		if err != nil {
			return err
		}
		roots = append(roots, expanded)
	}
	cfg.Steam.ExtraRoots = roots

	if cfg.HTTP.Timeout < 0 {
		return errors.Newf(errors.ErrValidation, "http.timeout must not be negative, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Archive.MaxEntryBytes <= 0 {
		return errors.Newf(errors.ErrValidation, "archive.max_entry_bytes must be positive, got %d", cfg.Archive.MaxEntryBytes)
	}
	if err := cfg.Wine.RegistryOverride().Validate(); err != nil {
		return err
	}
	return nil
}
