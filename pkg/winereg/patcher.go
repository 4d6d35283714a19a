package winereg

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/types"
)

// UserRegistryFile is the per-user hive at the top of a Wine prefix.
const UserRegistryFile = "user.reg"

// EnsureOverride applies o to the registry file at path. It reports whether
// the file was rewritten. The file is only written when its content
// changes, and keeps its permission bits.
func EnsureOverride(fsys types.FS, path string, o Override, now time.Time) (bool, error) {
	logger := logging.GetLogger("winereg")

	info, content, err := readRegistry(fsys, path)
	if err != nil {
		return false, err
	}

	patched := EnsureEntry(content, o, now)
	if patched == content {
		logger.Info().Str("path", path).Str("key", o.Key).Msg("Override already present")
		return false, nil
	}

	if err := fsys.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}

	logger.Info().
		Str("path", path).
		Str("section", o.Section).
		Str("entry", o.Entry()).
		Msg("Added DLL override")
	return true, nil
}

// NeedsOverride reports whether EnsureOverride would rewrite path. It
// fails the same way EnsureOverride does for missing or unreadable files.
func NeedsOverride(fsys types.FS, path string, o Override) (bool, error) {
	_, content, err := readRegistry(fsys, path)
	if err != nil {
		return false, err
	}
	return !strings.Contains(content, o.marker()), nil
}

func readRegistry(fsys types.FS, path string) (fs.FileInfo, string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return nil, "", errors.Newf(errors.ErrNotFound, "Wine registry file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}
	return info, string(data), nil
}

// Patcher applies an override to the registry file of Wine prefixes.
type Patcher struct {
	FS           types.FS
	Override     Override
	RegistryFile string
	Clock        func() time.Time
}

// NewPatcher returns a Patcher for the default override on the OS
// filesystem.
func NewPatcher() *Patcher {
	return &Patcher{
		FS:           filesystem.NewOS(),
		Override:     DefaultOverride(),
		RegistryFile: UserRegistryFile,
		Clock:        time.Now,
	}
}

// RegistryPath returns the hive Patch edits for prefixDir.
func (p *Patcher) RegistryPath(prefixDir string) string {
	name := p.RegistryFile
	if name == "" {
		name = UserRegistryFile
	}
	return filepath.Join(prefixDir, name)
}

// Patch ensures the override in prefixDir's registry file.
func (p *Patcher) Patch(prefixDir string) (bool, error) {
	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	return EnsureOverride(p.FS, p.RegistryPath(prefixDir), p.Override, clock())
}

// Check reports whether Patch would modify prefixDir's registry file.
func (p *Patcher) Check(prefixDir string) (bool, error) {
	return NeedsOverride(p.FS, p.RegistryPath(prefixDir), p.Override)
}
