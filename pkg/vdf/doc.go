// Package vdf reads Valve's text KeyValues format ("VDF"), as found in
// steamapps/libraryfolders.vdf and appmanifest_<appid>.acf.
//
// Nested blocks are flattened into dotted key paths:
//
//	"AppState"
//	{
//		"appid"       "322170"
//		"installdir"  "Geometry Dash"
//	}
//
// parses to AppState.appid = 322170 and AppState.installdir = Geometry Dash.
//
// The parser is lenient and read-only. Malformed, truncated or unbalanced
// input never produces an error: whatever was consumed before the damage
// is returned. Escape sequences, conditionals (`[$WIN32]`) and #include
// directives are not interpreted.
package vdf
