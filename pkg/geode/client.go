package geode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/rs/zerolog"
)

const (
	// DefaultAPIURL returns the latest loader version.
	DefaultAPIURL = "https://api.geode-sdk.org/v1/loader/versions/latest"

	// DefaultReleaseURL is the base of the GitHub release downloads.
	DefaultReleaseURL = "https://github.com/geode-sdk/geode/releases/download"

	// maxJSONResponseBytes bounds the index response; it is a few hundred
	// bytes in practice.
	maxJSONResponseBytes = 1 << 20
)

// Release is a loader release and its Windows archive.
type Release struct {
	Tag string
	URL string
}

// ReleaseURL returns <base>/<tag>/geode-<tag>-win.zip.
func ReleaseURL(base, tag string) string {
	return fmt.Sprintf("%s/%s/geode-%s-win.zip", strings.TrimRight(base, "/"), tag, tag)
}

type latestResponse struct {
	Payload struct {
		Tag string `json:"tag"`
	} `json:"payload"`
	Error string `json:"error"`
}

// Client queries the Geode index.
type Client struct {
	httpClient *http.Client
	apiURL     string
	releaseURL string
	userAgent  string
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIURL sets the latest-version endpoint.
func WithAPIURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.apiURL = url
		}
	}
}

// WithReleaseURL sets the release download base.
func WithReleaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.releaseURL = url
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Client for the public Geode index.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     DefaultAPIURL,
		releaseURL: DefaultReleaseURL,
		logger:     logging.GetLogger("geode"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestTag returns the tag of the newest loader release.
func (c *Client) LatestTag(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, http.NoBody)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrAPI, "creating request").WithDetail("url", c.apiURL)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("url", c.apiURL).Msg("Fetching latest loader version")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrAPI, "querying Geode index").WithDetail("url", c.apiURL)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Newf(errors.ErrAPI, "Geode index returned %s", resp.Status).
			WithDetail("url", c.apiURL).
			WithDetail("status", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&body); err != nil {
		return "", errors.Wrap(err, errors.ErrAPI, "decoding Geode index response").WithDetail("url", c.apiURL)
	}
	if body.Error != "" {
		return "", errors.Newf(errors.ErrAPI, "Geode API error: %s", body.Error).WithDetail("url", c.apiURL)
	}
	if body.Payload.Tag == "" {
		return "", errors.New(errors.ErrAPI, "Geode index response has no version tag").WithDetail("url", c.apiURL)
	}

	c.logger.Info().Str("tag", body.Payload.Tag).Msg("Latest Geode release")
	return body.Payload.Tag, nil
}

// Latest resolves the newest release and its download URL.
func (c *Client) Latest(ctx context.Context) (Release, error) {
	tag, err := c.LatestTag(ctx)
	if err != nil {
		return Release{}, err
	}
	return Release{Tag: tag, URL: ReleaseURL(c.releaseURL, tag)}, nil
}
