package download

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/rs/zerolog"
)

// UnknownLength is reported when the server sends no Content-Length.
const UnknownLength int64 = -1

// Downloader opens a remote resource for reading. The caller closes the
// returned body. length is UnknownLength when the size is not known.
type Downloader interface {
	Fetch(ctx context.Context, url string) (body io.ReadCloser, length int64, err error)
}

// HTTPDownloader implements Downloader with net/http.
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	logger    zerolog.Logger
}

// NewHTTPDownloader creates a downloader whose requests time out after
// timeout. A zero timeout means no limit.
func NewHTTPDownloader(timeout time.Duration, userAgent string) *HTTPDownloader {
	return &HTTPDownloader{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logging.GetLogger("download"),
	}
}

// WithClient returns a copy using hc for requests.
func (d *HTTPDownloader) WithClient(hc *http.Client) *HTTPDownloader {
	c := *d
	c.client = hc
	return &c
}

// Fetch starts a GET request and returns the response body on a 2xx status.
func (d *HTTPDownloader) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrDownload, "creating request").WithDetail("url", url)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	d.logger.Debug().Str("url", url).Msg("Starting download")
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrDownload, "download failed").WithDetail("url", url)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, 0, errors.Newf(errors.ErrDownload, "download failed with status %s", resp.Status).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	length := resp.ContentLength
	if length < 0 {
		length = UnknownLength
	}
	return resp.Body, length, nil
}
