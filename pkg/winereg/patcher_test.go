package winereg

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHive = "WINE REGISTRY Version 2\n;; All keys relative to \\\\User\\\\S-1-5-21-0-0-0-1000\n\n#arch=win64\n"

func TestEnsureOverride(t *testing.T) {
	t.Run("writes once then reports unchanged", func(t *testing.T) {
		fx := testutil.NewSteamFixture(t)
		path := fx.UserReg("/prefix", sampleHive)

		changed, err := EnsureOverride(fx.FS, path, DefaultOverride(), fixedNow)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, EnsureEntry(sampleHive, DefaultOverride(), fixedNow), fx.Read(path))

		changed, err = EnsureOverride(fx.FS, path, DefaultOverride(), fixedNow.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("keeps file mode", func(t *testing.T) {
		fx := testutil.NewSteamFixture(t)
		path := filepath.Join("/prefix", UserRegistryFile)
		fx.Dir("/prefix")
		require.NoError(t, fx.FS.WriteFile(path, []byte(sampleHive), 0600))

		_, err := EnsureOverride(fx.FS, path, DefaultOverride(), fixedNow)
		require.NoError(t, err)

		info, err := fx.FS.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())
	})

	t.Run("missing file", func(t *testing.T) {
		fx := testutil.NewSteamFixture(t)

		_, err := EnsureOverride(fx.FS, "/prefix/user.reg", DefaultOverride(), fixedNow)

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
		assert.Equal(t, "/prefix/user.reg", errors.GetErrorDetails(err)["path"])
	})

	t.Run("unreadable file", func(t *testing.T) {
		fx := testutil.NewSteamFixture(t)
		path := fx.Dir("/prefix", UserRegistryFile)

		_, err := EnsureOverride(fx.FS, path, DefaultOverride(), fixedNow)

		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})

	t.Run("write failure", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, "/prefix/user.reg", []byte(sampleHive), 0644))
		readOnly := filesystem.NewAferoFS(afero.NewReadOnlyFs(base))

		_, err := EnsureOverride(readOnly, "/prefix/user.reg", DefaultOverride(), fixedNow)

		assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
		data, _ := afero.ReadFile(base, "/prefix/user.reg")
		assert.Equal(t, sampleHive, string(data))
	})
}

func TestPatcher_Patch(t *testing.T) {
	fx := testutil.NewSteamFixture(t)
	prefix := fx.Prefix(fx.Library("/lib"), "322170")
	path := fx.UserReg(prefix, sampleHive)

	p := &Patcher{
		FS:       fx.FS,
		Override: DefaultOverride(),
		Clock:    func() time.Time { return fixedNow },
	}

	assert.Equal(t, path, p.RegistryPath(prefix))

	changed, err := p.Patch(prefix)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, fx.Read(path), "#time=66669980\n"+entry+"\n")
}

func TestPatcher_CustomRegistryFile(t *testing.T) {
	fx := testutil.NewSteamFixture(t)
	fx.File("/prefix/system.reg", sampleHive)

	p := &Patcher{FS: fx.FS, Override: DefaultOverride(), RegistryFile: "system.reg"}

	changed, err := p.Patch("/prefix")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, fx.Read("/prefix/system.reg"), entry)
}

func TestPatcher_Check(t *testing.T) {
	fx := testutil.NewSteamFixture(t)
	path := fx.UserReg("/prefix", sampleHive)
	p := &Patcher{FS: fx.FS, Override: DefaultOverride(), Clock: func() time.Time { return fixedNow }}

	needed, err := p.Check("/prefix")
	require.NoError(t, err)
	assert.True(t, needed)
	assert.Equal(t, sampleHive, fx.Read(path), "check must not write")

	_, err = p.Patch("/prefix")
	require.NoError(t, err)

	needed, err = p.Check("/prefix")
	require.NoError(t, err)
	assert.False(t, needed)

	_, err = p.Check("/elsewhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
