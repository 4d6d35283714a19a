// Package installer puts the Geode loader into a Geometry Dash install.
//
// An installation has three effects: the latest release archive is
// downloaded into the game directory, unpacked there and removed, and the
// Wine prefix's user.reg gets the xinput1_4 DLL override so Wine loads
// Geode's proxy instead of its builtin. InstallToSteam finds the game and
// prefix through Steam discovery first; InstallToWine takes both paths
// from the caller.
package installer
