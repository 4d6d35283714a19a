package steam

import (
	"path/filepath"

	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/paths"
	"github.com/gdlinux/geode-installer/pkg/types"
	"github.com/rs/zerolog"
)

// Steam filesystem layout
const (
	SteamAppsDir       = "steamapps"
	LibraryFoldersFile = "libraryfolders.vdf"
	CommonDir          = "common"
	CompatDataDir      = "compatdata"
	PrefixDir          = "pfx"

	// InstallDirKey is the dotted key holding the install folder name in an
	// app manifest.
	InstallDirKey = "AppState.installdir"

	// PathSegment marks library root entries in libraryfolders.vdf.
	PathSegment = "path"

	manifestPrefix = "appmanifest_"
	manifestExt    = ".acf"
)

// SystemRoot is the system-wide Steam location probed last.
const SystemRoot = "/usr/share/steam"

// homeRoots are probed in order, relative to the user's home directory.
var homeRoots = [][]string{
	{".steam", "steam"},
	{".steam", "root"},
	{".local", "share", "Steam"},
	{".var", "app", "com.valvesoftware.Steam"},
	{".var", "app", "com.valvesoftware.Steam", "data", "Steam"},
}

// Finder performs Steam discovery against a filesystem.
type Finder struct {
	fs         types.FS
	home       string
	extraRoots []string
	logger     zerolog.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithFS sets the filesystem discovery runs against.
func WithFS(fsys types.FS) Option {
	return func(f *Finder) { f.fs = fsys }
}

// WithHome sets the home directory the well-known roots are relative to.
func WithHome(home string) Option {
	return func(f *Finder) { f.home = home }
}

// WithExtraRoots appends roots probed after the built-in candidates.
func WithExtraRoots(roots ...string) Option {
	return func(f *Finder) { f.extraRoots = append(f.extraRoots, roots...) }
}

// NewFinder creates a Finder on the OS filesystem and the current user's
// home directory unless overridden by options.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		fs:     filesystem.NewOS(),
		logger: logging.GetLogger("steam.finder"),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.home == "" {
		if home, err := paths.HomeDir(); err == nil {
			f.home = home
		} else {
			f.logger.Warn().Err(err).Msg("No home directory, only system-wide Steam roots will be probed")
		}
	}
	return f
}

// ManifestFileName returns the app manifest file name for appID.
func ManifestFileName(appID string) string {
	return manifestPrefix + appID + manifestExt
}

// CompatPrefixPath returns library/compatdata/<appID>/pfx.
func CompatPrefixPath(library, appID string) string {
	return filepath.Join(library, CompatDataDir, appID, PrefixDir)
}
