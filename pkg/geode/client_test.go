package geode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "geode-installer-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestReleaseURL(t *testing.T) {
	assert.Equal(t,
		"https://github.com/geode-sdk/geode/releases/download/v4.2.0/geode-v4.2.0-win.zip",
		ReleaseURL(DefaultReleaseURL, "v4.2.0"))
	assert.Equal(t, "http://mirror/v1/geode-v1-win.zip", ReleaseURL("http://mirror/", "v1"))
}

func TestLatestTag(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr string
	}{
		{
			name:   "tag in payload",
			status: http.StatusOK,
			body:   `{"payload":{"tag":"v4.2.0","version":"4.2.0"},"error":""}`,
			want:   "v4.2.0",
		},
		{
			name:   "null error field",
			status: http.StatusOK,
			body:   `{"payload":{"tag":"v4.2.0"},"error":null}`,
			want:   "v4.2.0",
		},
		{
			name:    "api error",
			status:  http.StatusOK,
			body:    `{"payload":null,"error":"rate limited"}`,
			wantErr: "rate limited",
		},
		{
			name:    "missing tag",
			status:  http.StatusOK,
			body:    `{"payload":{},"error":""}`,
			wantErr: "no version tag",
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: "decoding",
		},
		{
			name:    "http failure",
			status:  http.StatusBadGateway,
			body:    `{}`,
			wantErr: "502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			c := NewClient(WithAPIURL(srv.URL), WithUserAgent("geode-installer-test"), WithHTTPClient(srv.Client()))

			tag, err := c.LatestTag(context.Background())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrAPI))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tag)
		})
	}
}

func TestLatest(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"payload":{"tag":"v4.2.0"},"error":""}`)
	c := NewClient(
		WithAPIURL(srv.URL),
		WithReleaseURL("https://example.invalid/releases"),
		WithUserAgent("geode-installer-test"),
	)

	rel, err := c.Latest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Release{
		Tag: "v4.2.0",
		URL: "https://example.invalid/releases/v4.2.0/geode-v4.2.0-win.zip",
	}, rel)
}

func TestLatestTag_ContextCancelled(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"payload":{"tag":"v1"}}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(WithAPIURL(srv.URL)).LatestTag(ctx)

	assert.True(t, errors.IsErrorCode(err, errors.ErrAPI))
}
