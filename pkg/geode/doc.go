// Package geode talks to the Geode SDK index to find the latest loader
// release and where its Windows build can be downloaded.
package geode
