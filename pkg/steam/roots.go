package steam

import (
	"path/filepath"

	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/vdf"
)

// CandidateRoots returns the Steam roots probed by LocateRoot, in order.
func (f *Finder) CandidateRoots() []string {
	candidates := make([]string, 0, len(homeRoots)+1+len(f.extraRoots))
	if f.home != "" {
		for _, rel := range homeRoots {
			candidates = append(candidates, filepath.Join(append([]string{f.home}, rel...)...))
		}
	}
	candidates = append(candidates, SystemRoot)
	return append(candidates, f.extraRoots...)
}

// LocateRoot returns the first candidate root that exists and contains a
// steamapps directory.
func (f *Finder) LocateRoot() (string, bool) {
	for _, candidate := range f.CandidateRoots() {
		if filesystem.Exists(f.fs, candidate) && filesystem.Exists(f.fs, filepath.Join(candidate, SteamAppsDir)) {
			f.logger.Debug().Str("root", candidate).Msg("Found Steam root")
			return candidate, true
		}
		f.logger.Trace().Str("candidate", candidate).Msg("Not a Steam root")
	}
	f.logger.Info().Msg("No Steam root found")
	return "", false
}

// EnumerateLibraries lists every steamapps directory reachable from root:
// root/steamapps first, then the libraries named in libraryfolders.vdf in
// file order. Entries whose steamapps directory is missing are skipped and
// duplicates (by cleaned path) keep their first position. Symlinks are not
// resolved, so ~/.steam/steam and the ~/.local/share/Steam it points to are
// two entries; resolution only scans the second one again.
func (f *Finder) EnumerateLibraries(root string) []string {
	primary := filepath.Join(root, SteamAppsDir)
	folders := []string{primary}

	index := filepath.Join(primary, LibraryFoldersFile)
	if filesystem.Exists(f.fs, index) {
		doc := vdf.ParseFile(f.fs, index)
		for _, key := range doc.Keys() {
			if !vdf.HasSegment(key, PathSegment) {
				continue
			}
			value, _ := doc.Get(key)
			if value == "" {
				continue
			}
			library := filepath.Join(value, SteamAppsDir)
			if filesystem.Exists(f.fs, library) {
				folders = append(folders, library)
			} else {
				f.logger.Debug().Str("library", library).Msg("Listed library missing on disk")
			}
		}
	}

	return dedupe(folders)
}

func dedupe(folders []string) []string {
	seen := make(map[string]struct{}, len(folders))
	unique := make([]string, 0, len(folders))
	for _, folder := range folders {
		key := filepath.Clean(folder)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	return unique
}

// Libraries locates the Steam root and enumerates its libraries. It returns
// nil when no root is found.
func (f *Finder) Libraries() (string, []string) {
	root, ok := f.LocateRoot()
	if !ok {
		return "", nil
	}
	return root, f.EnumerateLibraries(root)
}
