// Package archive unpacks downloaded release archives into a game
// directory.
package archive
