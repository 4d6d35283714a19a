// Package testutil provides utilities for testing geode-installer components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory types.FS
//   - SteamFixture: declarative builder for Steam roots, library folders,
//     app manifests, compat prefixes and Wine registry files
//
// Usage guidelines:
//   - Discovery and patching tests run against SteamFixture's in-memory FS
//   - Only tests that exercise real permissions or zip files use t.TempDir()
//   - All test data should be defined inline, not in external files
package testutil
