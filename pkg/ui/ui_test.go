package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/steam"
	"github.com/gdlinux/geode-installer/pkg/ui"
	"github.com/gdlinux/geode-installer/pkg/ui/display"
)

func sampleLocate() *display.LocateReport {
	report := display.NewLocateReport("/home/gd/.steam/steam",
		[]string{"/home/gd/.steam/steam/steamapps", "/mnt/games/steamapps"},
		steam.App{
			AppID:        "322170",
			InstallDir:   "/mnt/games/steamapps/common/Geometry Dash",
			CompatPrefix: "/mnt/games/steamapps/compatdata/322170/pfx",
			Library:      "/mnt/games/steamapps",
			Found:        true,
		})
	report.Timestamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return report
}

func render(t *testing.T, format ui.Format, fn func(r ui.Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, fn(r))
	return buf.String()
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	out := render(t, ui.FormatAuto, func(r ui.Renderer) error {
		return r.RenderMessage("[success]done[/success]")
	})

	assert.Equal(t, "done\n", out)
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})

	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestTextRenderer_Locate(t *testing.T) {
	out := render(t, ui.FormatText, func(r ui.Renderer) error {
		return r.RenderResult(sampleLocate())
	})

	assert.Equal(t, `Steam installation
  Steam root:   /home/gd/.steam/steam
  Libraries:    /home/gd/.steam/steam/steamapps
                /mnt/games/steamapps
  App 322170:   /mnt/games/steamapps/common/Geometry Dash
  Library:      /mnt/games/steamapps
  Prefix:       /mnt/games/steamapps/compatdata/322170/pfx

Ready to install
`, out)
}

func TestTextRenderer_NoSteam(t *testing.T) {
	out := render(t, ui.FormatText, func(r ui.Renderer) error {
		return r.RenderResult(display.NewLocateReport("", nil, steam.App{AppID: "322170"}))
	})

	assert.Contains(t, out, "Steam root:   not found")
	assert.Contains(t, out, "No Steam installation found")
	assert.NotContains(t, out, "[error]")
}

func TestTextRenderer_Error(t *testing.T) {
	out := render(t, ui.FormatText, func(r ui.Renderer) error {
		return r.RenderError(errors.New(errors.ErrNotFound, "Can't find Steam installation"))
	})

	assert.Equal(t, "Error: [NOT_FOUND] Can't find Steam installation\n", out)
}

func TestTerminalRenderer_Locate(t *testing.T) {
	out := render(t, ui.FormatTerminal, func(r ui.Renderer) error {
		return r.RenderResult(sampleLocate())
	})

	assert.Contains(t, out, "Steam installation")
	assert.Contains(t, out, "/mnt/games/steamapps/compatdata/322170/pfx")
	assert.Contains(t, out, "Ready to install")
	assert.NotContains(t, out, "[success]")
}

func TestTerminalRenderer_ErrorDetails(t *testing.T) {
	err := errors.New(errors.ErrValidation, "Prefix directory doesn't exist").WithDetail("path", "/nope")

	out := render(t, ui.FormatTerminal, func(r ui.Renderer) error {
		return r.RenderError(err)
	})

	assert.Contains(t, out, "Prefix directory doesn't exist")
	assert.Contains(t, out, "path: /nope")
}

func TestJSONRenderer(t *testing.T) {
	out := render(t, ui.FormatJSON, func(r ui.Renderer) error {
		return r.RenderResult(sampleLocate())
	})

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/home/gd/.steam/steam", decoded["steam_root"])
	app := decoded["app"].(map[string]interface{})
	assert.Equal(t, "322170", app["app_id"])
	assert.Equal(t, true, app["found"])
}

func TestJSONRenderer_Error(t *testing.T) {
	err := errors.New(errors.ErrDownload, "Download failed").WithDetail("url", "https://example.test/geode.zip")

	out := render(t, ui.FormatJSON, func(r ui.Renderer) error {
		return r.RenderError(err)
	})

	var decoded display.ErrorReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "DOWNLOAD", decoded.Code)
	assert.Equal(t, "https://example.test/geode.zip", decoded.Details["url"])
}

func TestYAMLRenderer(t *testing.T) {
	out := render(t, ui.FormatYAML, func(r ui.Renderer) error {
		return r.RenderResult(sampleLocate())
	})

	var decoded display.LocateReport
	require.NoError(t, yamlv3.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleLocate().Libraries, decoded.Libraries)
	assert.Equal(t, "/mnt/games/steamapps", decoded.App.Library)
}

func TestTOMLRenderer(t *testing.T) {
	out := render(t, ui.FormatTOML, func(r ui.Renderer) error {
		return r.RenderResult(sampleLocate())
	})

	var decoded display.LocateReport
	require.NoError(t, gotoml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/home/gd/.steam/steam", decoded.SteamRoot)
	assert.Equal(t, "322170", decoded.App.AppID)
	assert.Contains(t, out, "[app]")
}

func TestStructuredMessage(t *testing.T) {
	out := render(t, ui.FormatYAML, func(r ui.Renderer) error {
		return r.RenderMessage("hello")
	})

	assert.Equal(t, "message: hello\n", out)
}
