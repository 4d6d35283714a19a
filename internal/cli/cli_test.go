package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdlinux/geode-installer/internal/cli"
	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/geode"
	"github.com/gdlinux/geode-installer/pkg/installer"
	"github.com/gdlinux/geode-installer/pkg/steam"
	"github.com/gdlinux/geode-installer/pkg/testutil"
	"github.com/gdlinux/geode-installer/pkg/types"
	"github.com/gdlinux/geode-installer/pkg/winereg"
)

const hive = "WINE REGISTRY Version 2\n\n[Software\\\\Wine] 1700000000\n"

var release = geode.Release{Tag: "v4.2.0", URL: "https://example.invalid/geode-v4.2.0-win.zip"}

type fakeReleases struct{ err error }

func (f fakeReleases) Latest(context.Context) (geode.Release, error) {
	if f.err != nil {
		return geode.Release{}, f.err
	}
	return release, nil
}

type fakeDownloader struct{}

func (fakeDownloader) Fetch(context.Context, string) (io.ReadCloser, int64, error) {
	return io.NopCloser(strings.NewReader("zip")), 3, nil
}

type fakeExtractor struct{ fs types.FS }

func (f fakeExtractor) Extract(_, destDir string) error {
	return f.fs.WriteFile(filepath.Join(destDir, "Geode.dll"), []byte("dll"), 0644)
}

// scriptedPrompter answers prompts from a fixed list.
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptedPrompter) next(title string) (string, error) {
	p.prompts = append(p.prompts, title)
	if len(p.answers) == 0 {
		return "", errors.New(errors.ErrInternal, "no more answers")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Select(title string, _ []string) (string, error) { return p.next(title) }

func (p *scriptedPrompter) Input(title, _ string) (string, error) { return p.next(title) }

type env struct {
	fx        *testutil.SteamFixture
	releases  fakeReleases
	configDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	configDir := t.TempDir()
	t.Setenv("GEODE_INSTALLER_CONFIG_DIR", configDir)
	t.Setenv("GEODE_INSTALLER_STATE_DIR", t.TempDir())
	return &env{fx: testutil.NewSteamFixture(t), configDir: configDir}
}

// steamInstall lays out Steam with Geometry Dash and its Proton prefix.
func (e *env) steamInstall() (string, string) {
	root := e.fx.Root(".steam/steam")
	lib := filepath.Join(root, "steamapps")
	game := e.fx.Manifest(lib, installer.GeometryDashAppID, "Geometry Dash", true)
	prefix := e.fx.Prefix(lib, installer.GeometryDashAppID)
	e.fx.UserReg(prefix, hive)
	return game, prefix
}

func (e *env) run(t *testing.T, extra []cli.Option, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts := []cli.Option{
		cli.WithOutput(&stdout, &stderr),
		cli.WithLogSetup(func(int) {}),
		cli.WithInteractive(false),
		cli.WithInstallerOptions(
			installer.WithFS(e.fx.FS),
			installer.WithFinder(steam.NewFinder(steam.WithFS(e.fx.FS), steam.WithHome(e.fx.Home))),
			installer.WithReleases(e.releases),
			installer.WithDownloader(fakeDownloader{}),
			installer.WithExtractor(fakeExtractor{fs: e.fx.FS}),
			installer.WithPatcher(&winereg.Patcher{
				FS:       e.fx.FS,
				Override: winereg.DefaultOverride(),
				Clock:    func() time.Time { return time.Unix(1718000000, 0) },
			}),
		),
	}
	code := cli.Execute(args, append(opts, extra...)...)
	return code, stdout.String(), stderr.String()
}

func TestLocate(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		e := newEnv(t)
		game, prefix := e.steamInstall()

		code, out, _ := e.run(t, nil, "locate", "-o", "json")
		require.Equal(t, 0, code)

		var report struct {
			SteamRoot string    `json:"steam_root"`
			App       steam.App `json:"app"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "/home/gd/.steam/steam", report.SteamRoot)
		assert.Equal(t, game, report.App.InstallDir)
		assert.Equal(t, prefix, report.App.CompatPrefix)
		assert.True(t, report.App.Found)
	})

	t.Run("missing steam still succeeds", func(t *testing.T) {
		e := newEnv(t)

		code, out, _ := e.run(t, nil, "locate", "-o", "text")

		assert.Equal(t, 0, code)
		assert.Contains(t, out, "No Steam installation found")
	})

	t.Run("app id flag overrides config", func(t *testing.T) {
		e := newEnv(t)
		e.steamInstall()

		code, out, _ := e.run(t, nil, "locate", "-o", "json", "--app-id", "105600")
		require.Equal(t, 0, code)

		assert.Contains(t, out, `"app_id": "105600"`)
		assert.Contains(t, out, `"found": false`)
	})
}

func TestSteam(t *testing.T) {
	t.Run("installs and patches", func(t *testing.T) {
		e := newEnv(t)
		game, prefix := e.steamInstall()

		code, out, errOut := e.run(t, nil, "steam", "-o", "text")
		require.Equal(t, 0, code, errOut)

		assert.Contains(t, out, "Found Geometry Dash in "+game)
		assert.Contains(t, out, "Latest Geode release is v4.2.0")
		assert.Equal(t, "dll", e.fx.Read(filepath.Join(game, "Geode.dll")))
		assert.Contains(t, e.fx.Read(filepath.Join(prefix, "user.reg")), `"xinput1_4"="native,builtin"`)
	})

	t.Run("no steam is an error on stderr", func(t *testing.T) {
		e := newEnv(t)

		code, out, errOut := e.run(t, nil, "steam", "-o", "text")

		assert.Equal(t, 1, code)
		assert.NotContains(t, out, "Error")
		assert.Contains(t, errOut, "Can't find Steam installation")
	})

	t.Run("structured errors stay on stdout", func(t *testing.T) {
		e := newEnv(t)

		code, out, _ := e.run(t, nil, "steam", "-o", "json")

		assert.Equal(t, 1, code)
		assert.Contains(t, out, `"code": "NOT_FOUND"`)
	})
}

func TestWine(t *testing.T) {
	t.Run("installs into the given directories", func(t *testing.T) {
		e := newEnv(t)
		prefix := e.fx.Dir("/wine/prefix")
		e.fx.UserReg(prefix, hive)
		game := e.fx.Dir("/games/gd")

		code, out, errOut := e.run(t, nil, "wine", "--prefix", prefix, "--game", game, "-o", "json")
		require.Equal(t, 0, code, errOut)

		assert.Contains(t, out, `"target": "wine"`)
		assert.Contains(t, out, `"registry_changed": true`)
		assert.Equal(t, "dll", e.fx.Read(filepath.Join(game, "Geode.dll")))
	})

	t.Run("missing prefix", func(t *testing.T) {
		e := newEnv(t)
		game := e.fx.Dir("/games/gd")

		code, _, errOut := e.run(t, nil, "wine", "--prefix", "/nope", "--game", game, "-o", "text")

		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "Prefix directory doesn't exist: /nope")
	})

	t.Run("flags are required", func(t *testing.T) {
		e := newEnv(t)

		code, _, errOut := e.run(t, nil, "wine", "-o", "text")

		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "required flag")
	})
}

func TestPatch_DryRun(t *testing.T) {
	e := newEnv(t)
	prefix := e.fx.Dir("/wine/prefix")
	e.fx.UserReg(prefix, hive)

	code, out, errOut := e.run(t, nil, "patch", "--prefix", prefix, "--dry-run", "-o", "json")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, `"changed": true`)
	assert.Contains(t, out, `"dry_run": true`)
	assert.Equal(t, hive, e.fx.Read(filepath.Join(prefix, "user.reg")))
}

func TestPatch_TrimsPrefix(t *testing.T) {
	e := newEnv(t)
	prefix := e.fx.Dir("/wine/prefix")
	e.fx.UserReg(prefix, hive)

	code, out, errOut := e.run(t, nil, "patch", "--prefix", "  "+prefix+"\n", "-o", "json")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, `"registry_file": "/wine/prefix/user.reg"`)
	assert.Contains(t, e.fx.Read(filepath.Join(prefix, "user.reg")), `"xinput1_4"="native,builtin"`)
}

func TestGuide(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, nil, "guide")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Geode on Linux")
	assert.Contains(t, out, "help topics")

	code, out, _ = e.run(t, nil, "help", "troubleshooting")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Troubleshooting")

	code, _, errOut := e.run(t, nil, "guide", "nonsense", "-o", "text")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown guide topic: nonsense")
}

func TestGenConfig(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, nil, "gen-config")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[game]")
	assert.Contains(t, out, "# app_id")

	code, _, errOut := e.run(t, nil, "gen-config", "-w", "-o", "text")
	require.Equal(t, 0, code, errOut)
	written, err := os.ReadFile(filepath.Join(e.configDir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, out, string(written))

	code, _, errOut = e.run(t, nil, "gen-config", "-w", "-o", "text")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "config file already exists")
}

func TestVersion(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, nil, "version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "geode-installer version dev")
}

func TestNoCommand(t *testing.T) {
	e := newEnv(t)

	code, out, errOut := e.run(t, nil, "-o", "text")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "USAGE:")
	assert.Contains(t, errOut, "no command specified")
}

func TestMenu(t *testing.T) {
	t.Run("steam then quit", func(t *testing.T) {
		e := newEnv(t)
		game, _ := e.steamInstall()
		prompter := &scriptedPrompter{answers: []string{cli.MsgMenuSteam, cli.MsgMenuQuit}}

		code, out, errOut := e.run(t, []cli.Option{cli.WithInteractive(true), cli.WithPrompter(prompter)}, "-o", "text")
		require.Equal(t, 0, code, errOut)

		assert.True(t, strings.HasPrefix(out, "Geode Installer for Linux\n"))
		assert.Contains(t, out, "Geode installation")
		assert.True(t, strings.HasSuffix(out, "Exiting...\n"))
		assert.Equal(t, "dll", e.fx.Read(filepath.Join(game, "Geode.dll")))
	})

	t.Run("failed install returns to the menu", func(t *testing.T) {
		e := newEnv(t)
		prompter := &scriptedPrompter{answers: []string{
			cli.MsgMenuWine, "/games/missing", "/wine/missing",
			cli.MsgMenuQuit,
		}}

		code, out, _ := e.run(t, []cli.Option{cli.WithInteractive(true), cli.WithPrompter(prompter)}, "-o", "text")

		assert.Equal(t, 0, code)
		assert.Contains(t, out, "Prefix directory doesn't exist: /wine/missing")
		assert.Equal(t, []string{
			cli.MsgMenuTitle, cli.MsgPromptGame, cli.MsgPromptPrefix, cli.MsgMenuTitle,
		}, prompter.prompts)
	})

	t.Run("prompt failure ends the loop", func(t *testing.T) {
		e := newEnv(t)
		prompter := &scriptedPrompter{}

		code, _, _ := e.run(t, []cli.Option{cli.WithInteractive(true), cli.WithPrompter(prompter)}, "-o", "text")

		assert.Equal(t, 1, code)
	})
}
