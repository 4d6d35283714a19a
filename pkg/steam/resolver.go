package steam

import (
	"path/filepath"

	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/vdf"
)

// App is the result of resolving one application. Empty strings mean the
// location was not found. Found is true iff InstallDir is set.
type App struct {
	AppID        string `json:"app_id" yaml:"app_id" toml:"app_id"`
	InstallDir   string `json:"install_dir,omitempty" yaml:"install_dir,omitempty" toml:"install_dir,omitempty"`
	CompatPrefix string `json:"compat_prefix,omitempty" yaml:"compat_prefix,omitempty" toml:"compat_prefix,omitempty"`
	Library      string `json:"library,omitempty" yaml:"library,omitempty" toml:"library,omitempty"`
	Found        bool   `json:"found" yaml:"found" toml:"found"`
}

// ResolveInstall scans libraries in order for appID's manifest and returns
// the first library/common/<installdir> that exists, together with the
// library that owns it.
func (f *Finder) ResolveInstall(libraries []string, appID string) (string, string, bool) {
	if appID == "" {
		return "", "", false
	}

	for _, library := range libraries {
		manifest := filepath.Join(library, ManifestFileName(appID))
		if !filesystem.Exists(f.fs, manifest) {
			continue
		}

		installDir, ok := vdf.ParseFile(f.fs, manifest).Get(InstallDirKey)
		if !ok || installDir == "" {
			f.logger.Debug().Str("manifest", manifest).Msg("Manifest has no install directory")
			continue
		}

		gamePath := filepath.Join(library, CommonDir, installDir)
		if filesystem.Exists(f.fs, gamePath) {
			f.logger.Debug().
				Str("app_id", appID).
				Str("path", gamePath).
				Str("library", library).
				Msg("Resolved install directory")
			return gamePath, library, true
		}
		f.logger.Debug().Str("path", gamePath).Msg("Manifest points at a missing directory, continuing")
	}

	return "", "", false
}

// ResolveCompatPrefix returns the Proton prefix for appID. The preferred
// library, normally the one owning the install, is checked before the
// in-order scan so a stale prefix in another library is not picked first.
func (f *Finder) ResolveCompatPrefix(libraries []string, appID, preferred string) (string, bool) {
	if appID == "" {
		return "", false
	}

	if preferred != "" {
		prefix := CompatPrefixPath(preferred, appID)
		if filesystem.Exists(f.fs, prefix) {
			return prefix, true
		}
	}

	for _, library := range libraries {
		prefix := CompatPrefixPath(library, appID)
		if filesystem.Exists(f.fs, prefix) {
			return prefix, true
		}
	}

	return "", false
}

// ResolveIn resolves appID against an already enumerated library list.
func (f *Finder) ResolveIn(libraries []string, appID string) App {
	app := App{AppID: appID}

	installDir, library, ok := f.ResolveInstall(libraries, appID)
	if !ok {
		return app
	}
	app.InstallDir = installDir
	app.Library = library
	app.Found = true

	if prefix, ok := f.ResolveCompatPrefix(libraries, appID, library); ok {
		app.CompatPrefix = prefix
	}
	return app
}

// Resolve locates Steam, enumerates its libraries and resolves appID.
func (f *Finder) Resolve(appID string) App {
	_, libraries := f.Libraries()
	return f.ResolveIn(libraries, appID)
}
