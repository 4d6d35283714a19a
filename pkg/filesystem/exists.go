package filesystem

import (
	"errors"
	"io/fs"

	"github.com/gdlinux/geode-installer/pkg/types"
)

// Exists reports whether path can be stat'ed. Any stat error, including
// permission errors, counts as absent.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// IsNotExist reports whether err means the file does not exist. It works
// for both OS and afero errors.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
