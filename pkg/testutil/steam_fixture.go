package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdlinux/geode-installer/pkg/filesystem"
	"github.com/gdlinux/geode-installer/pkg/types"
	"github.com/spf13/afero"
)

// FixtureHome is the home directory used by SteamFixture.
const FixtureHome = "/home/gd"

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// SteamFixture builds Steam and Wine layouts on an in-memory filesystem.
type SteamFixture struct {
	FS   types.FS
	Home string
	t    *testing.T
}

// NewSteamFixture returns an empty fixture rooted at FixtureHome.
func NewSteamFixture(t *testing.T) *SteamFixture {
	t.Helper()
	f := &SteamFixture{FS: NewTestFS(), Home: FixtureHome, t: t}
	f.Dir(f.Home)
	return f
}

// Dir creates a directory (and parents) and returns its path.
func (f *SteamFixture) Dir(elem ...string) string {
	f.t.Helper()
	path := filepath.Join(elem...)
	if err := f.FS.MkdirAll(path, 0755); err != nil {
		f.t.Fatalf("mkdir %s: %v", path, err)
	}
	return path
}

// File writes content to path, creating parent directories.
func (f *SteamFixture) File(path, content string) string {
	f.t.Helper()
	f.Dir(filepath.Dir(path))
	if err := f.FS.WriteFile(path, []byte(content), 0644); err != nil {
		f.t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Root creates a Steam root under the home directory (for example
// ".steam/steam") including its steamapps directory, and returns the root.
func (f *SteamFixture) Root(rel string) string {
	f.t.Helper()
	root := filepath.Join(f.Home, rel)
	f.Dir(root, "steamapps")
	return root
}

// Library creates path/steamapps and returns the steamapps directory.
func (f *SteamFixture) Library(path string) string {
	f.t.Helper()
	return f.Dir(path, "steamapps")
}

// LibraryFolders writes root/steamapps/libraryfolders.vdf listing paths in
// order.
func (f *SteamFixture) LibraryFolders(root string, paths ...string) {
	f.t.Helper()
	var b strings.Builder
	b.WriteString("\"libraryfolders\"\n{\n")
	for i, p := range paths {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t\t\"label\"\t\t\"\"\n\t}\n", i, p)
	}
	b.WriteString("}\n")
	f.File(filepath.Join(root, "steamapps", "libraryfolders.vdf"), b.String())
}

// Manifest writes appmanifest_<appID>.acf into a steamapps directory.
// When withInstall is true the common/<installDir> directory is created too.
func (f *SteamFixture) Manifest(steamapps, appID, installDir string, withInstall bool) string {
	f.t.Helper()
	content := fmt.Sprintf("\"AppState\"\n{\n\t\"appid\"\t\t\"%s\"\n\t\"name\"\t\t\"Geometry Dash\"\n\t\"installdir\"\t\t\"%s\"\n}\n", appID, installDir)
	f.File(filepath.Join(steamapps, "appmanifest_"+appID+".acf"), content)
	installPath := filepath.Join(steamapps, "common", installDir)
	if withInstall {
		f.Dir(installPath)
	}
	return installPath
}

// Prefix creates steamapps/compatdata/<appID>/pfx and returns it.
func (f *SteamFixture) Prefix(steamapps, appID string) string {
	f.t.Helper()
	return f.Dir(steamapps, "compatdata", appID, "pfx")
}

// UserReg writes prefix/user.reg and returns its path.
func (f *SteamFixture) UserReg(prefix, content string) string {
	f.t.Helper()
	return f.File(filepath.Join(prefix, "user.reg"), content)
}

// Read returns the content of path, failing the test if it cannot be read.
func (f *SteamFixture) Read(path string) string {
	f.t.Helper()
	data, err := f.FS.ReadFile(path)
	if err != nil {
		f.t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
