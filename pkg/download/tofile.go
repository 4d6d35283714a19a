package download

import (
	"context"
	"io"
	"path/filepath"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/types"
)

// Progress receives download progress. Start is called once with the total
// size (UnknownLength if not known), Add after every chunk written, and
// Finish exactly once with the outcome.
type Progress interface {
	Start(total int64)
	Add(n int64)
	Finish(err error)
}

// NopProgress discards progress updates.
type NopProgress struct{}

func (NopProgress) Start(int64)  {}
func (NopProgress) Add(int64)    {}
func (NopProgress) Finish(error) {}

type progressWriter struct {
	w        io.Writer
	progress Progress
	written  int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.written += int64(n)
		p.progress.Add(int64(n))
	}
	return n, err
}

// ToFile downloads url into dest on fsys and returns the number of bytes
// written. A partially written dest is removed on failure.
func ToFile(ctx context.Context, d Downloader, fsys types.FS, url, dest string, progress Progress) (written int64, err error) {
	if progress == nil {
		progress = NopProgress{}
	}
	logger := logging.GetLogger("download")

	body, length, err := d.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }() // read-only response body

	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dest)).
			WithDetail("path", dest)
	}

	out, err := fsys.Create(dest, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dest).
			WithDetail("path", dest)
	}

	progress.Start(length)
	defer func() { progress.Finish(err) }()

	pw := &progressWriter{w: out, progress: progress}
	copyErr := func() (copyErr error) {
		defer func() {
			if closeErr := out.Close(); closeErr != nil && copyErr == nil {
				copyErr = errors.Wrapf(closeErr, errors.ErrFileWrite, "closing %s", dest)
			}
		}()
		if _, copyErr = io.Copy(pw, &ctxReader{ctx: ctx, r: body}); copyErr != nil {
			return errors.Wrap(copyErr, errors.ErrDownload, "download interrupted").
				WithDetail("url", url).
				WithDetail("path", dest)
		}
		if length != UnknownLength && pw.written != length {
			return errors.Newf(errors.ErrDownload, "short download: got %d of %d bytes", pw.written, length).
				WithDetail("url", url)
		}
		return nil
	}()
	if copyErr != nil {
		// Best-effort removal of the partial file.
		_ = fsys.Remove(dest)
		return pw.written, copyErr
	}

	logger.Info().Str("path", dest).Int64("bytes", pw.written).Msg("Download complete")
	return pw.written, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
