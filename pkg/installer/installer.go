package installer

import (
	"context"
	"path/filepath"

	"github.com/gdlinux/geode-installer/pkg/archive"
	"github.com/gdlinux/geode-installer/pkg/config"
	"github.com/gdlinux/geode-installer/pkg/download"
	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/geode"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/steam"
	"github.com/gdlinux/geode-installer/pkg/types"
	"github.com/gdlinux/geode-installer/pkg/winereg"
	"github.com/rs/zerolog"
)

// GeometryDashAppID is the Steam App ID of Geometry Dash.
const GeometryDashAppID = "322170"

// TempArchiveName is the download file created inside the game directory.
const TempArchiveName = "geode_temp.zip"

// SteamFinder is the part of steam.Finder the installer needs.
type SteamFinder interface {
	LocateRoot() (string, bool)
	EnumerateLibraries(root string) []string
	ResolveIn(libraries []string, appID string) steam.App
}

// ReleaseSource resolves the release to install.
type ReleaseSource interface {
	Latest(ctx context.Context) (geode.Release, error)
}

// Step identifies a milestone reported to the Notifier.
type Step string

const (
	StepSteamRoot Step = "steam_root"
	StepGame      Step = "game"
	StepPrefix    Step = "prefix"
	StepRelease   Step = "release"
	StepDownload  Step = "download"
	StepExtract   Step = "extract"
	StepPatch     Step = "patch"
	StepDone      Step = "done"
)

// Notifier receives user-facing progress; detail is usually a path or tag.
type Notifier func(step Step, detail string)

// Result describes a finished (or planned, in dry-run mode) installation.
// In dry-run mode RegistryChanged reports whether the override would be
// added.
type Result struct {
	GameDir         string
	Prefix          string
	Release         geode.Release
	RegistryFile    string
	RegistryChanged bool
	DryRun          bool
}

// PatchResult describes a registry-only run. In dry-run mode Changed
// reports whether the override would be added.
type PatchResult struct {
	RegistryFile string
	Entry        string
	Changed      bool
	DryRun       bool
}

// Installer orchestrates discovery, download, extraction and patching.
type Installer struct {
	fs         types.FS
	finder     SteamFinder
	releases   ReleaseSource
	downloader download.Downloader
	extractor  archive.Extractor
	patcher    *winereg.Patcher
	appID      string
	progress   func() download.Progress
	notify     Notifier
	dryRun     bool
	logger     zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithFS sets the filesystem used for validation, download and cleanup.
func WithFS(fsys types.FS) Option {
	return func(i *Installer) { i.fs = fsys }
}

// WithFinder sets the Steam discovery used by InstallToSteam.
func WithFinder(f SteamFinder) Option {
	return func(i *Installer) { i.finder = f }
}

// WithReleases sets where the release to install comes from.
func WithReleases(r ReleaseSource) Option {
	return func(i *Installer) { i.releases = r }
}

// WithDownloader sets the archive downloader.
func WithDownloader(d download.Downloader) Option {
	return func(i *Installer) { i.downloader = d }
}

// WithExtractor sets the archive extractor.
func WithExtractor(e archive.Extractor) Option {
	return func(i *Installer) { i.extractor = e }
}

// WithPatcher sets the registry patcher.
func WithPatcher(p *winereg.Patcher) Option {
	return func(i *Installer) { i.patcher = p }
}

// WithAppID sets the Steam application to install into.
func WithAppID(id string) Option {
	return func(i *Installer) { i.appID = id }
}

// WithProgress sets the factory for per-download progress reporters.
func WithProgress(f func() download.Progress) Option {
	return func(i *Installer) { i.progress = f }
}

// WithNotifier sets the milestone callback.
func WithNotifier(n Notifier) Option {
	return func(i *Installer) { i.notify = n }
}

// WithDryRun stops InstallToWine after validation and release lookup.
func WithDryRun(dryRun bool) Option {
	return func(i *Installer) { i.dryRun = dryRun }
}

// New creates an Installer with production collaborators, then applies
// opts.
func New(opts ...Option) *Installer {
	i := &Installer{
		fs:         filesystem.NewOS(),
		finder:     steam.NewFinder(),
		releases:   geode.NewClient(),
		downloader: download.NewHTTPDownloader(0, "geode-installer"),
		extractor:  archive.NewZipExtractor(archive.DefaultMaxEntryBytes),
		patcher:    winereg.NewPatcher(),
		appID:      GeometryDashAppID,
		progress:   func() download.Progress { return download.NopProgress{} },
		notify:     func(Step, string) {},
		logger:     logging.GetLogger("installer"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// FromConfig wires the collaborators from cfg. opts are applied last.
func FromConfig(cfg *config.Config, opts ...Option) *Installer {
	fsys := filesystem.NewOS()
	patcher := &winereg.Patcher{
		FS:           fsys,
		Override:     cfg.Wine.RegistryOverride(),
		RegistryFile: cfg.Wine.RegistryFile,
	}
	base := []Option{
		WithFS(fsys),
		WithFinder(steam.NewFinder(steam.WithFS(fsys), steam.WithExtraRoots(cfg.Steam.ExtraRoots...))),
		WithReleases(geode.NewClient(
			geode.WithAPIURL(cfg.Geode.APIURL),
			geode.WithReleaseURL(cfg.Geode.ReleaseURL),
			geode.WithUserAgent(cfg.HTTP.UserAgent),
		)),
		WithDownloader(download.NewHTTPDownloader(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)),
		WithExtractor(archive.NewZipExtractor(cfg.Archive.MaxEntryBytes)),
		WithPatcher(patcher),
		WithAppID(cfg.Game.AppID),
	}
	return New(append(base, opts...)...)
}

// ValidatePaths checks that both the prefix and the game directory exist.
func (i *Installer) ValidatePaths(prefix, gameDir string) error {
	if !filesystem.Exists(i.fs, prefix) {
		return errors.Newf(errors.ErrValidation, "Prefix directory doesn't exist: %s", prefix).
			WithDetail("path", prefix)
	}
	if !filesystem.Exists(i.fs, gameDir) {
		return errors.Newf(errors.ErrValidation, "Game directory doesn't exist: %s", gameDir).
			WithDetail("path", gameDir)
	}
	return nil
}

// Locate resolves the Steam copy of the configured app without changing
// anything.
func (i *Installer) Locate() (steam.App, error) {
	root, ok := i.finder.LocateRoot()
	if !ok {
		return steam.App{AppID: i.appID}, errors.New(errors.ErrNotFound, "Can't find Steam installation")
	}
	i.notify(StepSteamRoot, root)

	app := i.finder.ResolveIn(i.finder.EnumerateLibraries(root), i.appID)
	if !app.Found {
		return app, errors.Newf(errors.ErrNotFound, "Can't find Geometry Dash installation (app %s)", i.appID).
			WithDetail("app_id", i.appID).
			WithDetail("steam_root", root)
	}
	i.notify(StepGame, app.InstallDir)

	if app.CompatPrefix == "" {
		return app, errors.Newf(errors.ErrNotFound, "Can't find Proton prefix for app %s; launch the game once through Steam", i.appID).
			WithDetail("app_id", i.appID).
			WithDetail("install_dir", app.InstallDir)
	}
	i.notify(StepPrefix, app.CompatPrefix)
	return app, nil
}

// Inspect runs discovery without treating anything missing as an error.
// root is empty when no Steam installation exists.
func (i *Installer) Inspect() (string, []string, steam.App) {
	root, ok := i.finder.LocateRoot()
	if !ok {
		return "", nil, steam.App{AppID: i.appID}
	}
	libraries := i.finder.EnumerateLibraries(root)
	return root, libraries, i.finder.ResolveIn(libraries, i.appID)
}

// InstallToSteam installs into the Steam copy of the configured app and its
// Proton prefix.
func (i *Installer) InstallToSteam(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(i.logger, "install_to_steam")
	defer done()

	app, err := i.Locate()
	if err != nil {
		return nil, err
	}
	return i.InstallToWine(ctx, app.CompatPrefix, app.InstallDir)
}

// InstallToWine installs into gameDir and patches the registry of prefix.
func (i *Installer) InstallToWine(ctx context.Context, prefix, gameDir string) (*Result, error) {
	done := logging.LogOperationStart(i.logger, "install_to_wine")
	defer done()

	if err := i.ValidatePaths(prefix, gameDir); err != nil {
		return nil, err
	}

	release, err := i.releases.Latest(ctx)
	if err != nil {
		return nil, err
	}
	i.notify(StepRelease, release.Tag)

	result := &Result{
		GameDir:      gameDir,
		Prefix:       prefix,
		Release:      release,
		RegistryFile: i.patcher.RegistryPath(prefix),
		DryRun:       i.dryRun,
	}

	if i.dryRun {
		needed, err := i.patcher.Check(prefix)
		if err != nil {
			return nil, err
		}
		result.RegistryChanged = needed
		i.logger.Info().
			Str("url", release.URL).
			Str("game_dir", gameDir).
			Str("registry", result.RegistryFile).
			Msg("Dry run, nothing downloaded or written")
		return result, nil
	}

	if err := i.installRelease(ctx, release, gameDir); err != nil {
		return nil, err
	}

	i.notify(StepPatch, result.RegistryFile)
	changed, err := i.patcher.Patch(prefix)
	if err != nil {
		return nil, err
	}
	result.RegistryChanged = changed

	i.notify(StepDone, gameDir)
	return result, nil
}

// installRelease downloads the release archive into gameDir, unpacks it
// there and removes the archive.
func (i *Installer) installRelease(ctx context.Context, release geode.Release, gameDir string) error {
	archivePath := filepath.Join(gameDir, TempArchiveName)

	i.notify(StepDownload, release.URL)
	if _, err := download.ToFile(ctx, i.downloader, i.fs, release.URL, archivePath, i.progress()); err != nil {
		return err
	}

	i.notify(StepExtract, gameDir)
	if err := i.extractor.Extract(archivePath, gameDir); err != nil {
		// Best-effort removal of the archive.
		_ = i.fs.Remove(archivePath)
		return err
	}

	if err := i.fs.Remove(archivePath); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot remove %s", archivePath).
			WithDetail("path", archivePath)
	}
	return nil
}

// PatchPrefix applies only the registry override to prefix.
func (i *Installer) PatchPrefix(prefix string) (*PatchResult, error) {
	if !filesystem.Exists(i.fs, prefix) {
		return nil, errors.Newf(errors.ErrValidation, "Prefix directory doesn't exist: %s", prefix).
			WithDetail("path", prefix)
	}

	result := &PatchResult{
		RegistryFile: i.patcher.RegistryPath(prefix),
		Entry:        i.patcher.Override.Entry(),
		DryRun:       i.dryRun,
	}

	var err error
	if i.dryRun {
		result.Changed, err = i.patcher.Check(prefix)
	} else {
		i.notify(StepPatch, result.RegistryFile)
		result.Changed, err = i.patcher.Patch(prefix)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
