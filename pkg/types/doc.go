// Package types defines the interfaces shared across geode-installer
// packages. The FS interface is implemented by pkg/filesystem for both the
// real OS filesystem and afero-backed test filesystems.
package types
