package archive

import (
	"archive/zip"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultMaxEntryBytes bounds a single extracted file.
const DefaultMaxEntryBytes int64 = 512 << 20

// creatorUnix is the "version made by" host for archives that record Unix
// permission bits.
const creatorUnix = 3

// Extractor unpacks an archive into a directory.
type Extractor interface {
	Extract(archivePath, destDir string) error
}

// ZipExtractor extracts zip archives on the OS filesystem.
type ZipExtractor struct {
	// MaxEntryBytes bounds each entry; zero means DefaultMaxEntryBytes.
	MaxEntryBytes int64

	logger zerolog.Logger
}

// NewZipExtractor returns an extractor accepting entries up to maxEntryBytes.
func NewZipExtractor(maxEntryBytes int64) *ZipExtractor {
	return &ZipExtractor{
		MaxEntryBytes: maxEntryBytes,
		logger:        logging.GetLogger("archive"),
	}
}

// Extract writes every entry of archivePath below destDir. Entries whose
// path would land outside destDir are skipped. Files and directories take
// the permission bits recorded by Unix archivers when present.
func (z *ZipExtractor) Extract(archivePath, destDir string) (err error) {
	limit := z.MaxEntryBytes
	if limit <= 0 {
		limit = DefaultMaxEntryBytes
	}

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtract, "cannot resolve %s", destDir)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil && !stderrors.Is(err, zip.ErrInsecurePath) {
		return errors.Wrap(err, errors.ErrExtract, "failed to open zip").
			WithDetail("path", archivePath)
	}
	defer func() {
		// Read-only file handle; close errors are exotic.
		_ = reader.Close()
	}()

	extracted := 0
	for _, file := range reader.File {
		target, ok := entryPath(absDest, file.Name)
		if !ok {
			z.logger.Warn().Str("entry", file.Name).Msg("Skipping entry outside the destination")
			continue
		}
		if file.Mode()&fs.ModeSymlink != 0 {
			z.logger.Warn().Str("entry", file.Name).Msg("Skipping symlink entry")
			continue
		}

		if strings.HasSuffix(file.Name, "/") {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExtract, "failed to create directory %s", target).
					WithDetail("entry", file.Name)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExtract, "failed to create directory %s", filepath.Dir(target)).
					WithDetail("entry", file.Name)
			}
			if err := extractFile(file, target, limit); err != nil {
				return errors.Wrapf(err, errors.ErrExtract, "failed to extract %s", file.Name).
					WithDetail("entry", file.Name).
					WithDetail("path", target)
			}
		}

		if file.CreatorVersion>>8 == creatorUnix {
			if chmodErr := os.Chmod(target, file.Mode().Perm()); chmodErr != nil {
				z.logger.Warn().Err(chmodErr).Str("path", target).Msg("Could not apply archived permissions")
			}
		}
		extracted++
	}

	z.logger.Debug().Str("archive", archivePath).Int("entries", extracted).Msg("Archive extracted")
	return nil
}

// entryPath joins name below dest and rejects absolute names and names that
// climb out of dest.
func entryPath(dest, name string) (string, bool) {
	if name == "" || filepath.IsAbs(name) {
		return "", false
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

func extractFile(file *zip.File, target string, limit int64) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	n, err := io.Copy(out, io.LimitReader(rc, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return errors.Newf(errors.ErrExtract, "entry exceeds %d bytes", limit)
	}
	return nil
}
