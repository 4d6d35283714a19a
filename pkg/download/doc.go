// Package download fetches release archives over HTTP and streams them to
// disk while reporting progress.
package download
