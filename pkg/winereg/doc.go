// Package winereg edits Wine's text registry hives (user.reg) in place.
//
// A hive is a sequence of sections:
//
//	[Software\\Wine\\DllOverrides] 1718000000
//	#time=1d9c4e1f2a3b4c0
//	"xinput1_4"="native,builtin"
//
// The package only ever adds one configured "key"="value" line to one
// section. Everything else in the file is preserved byte for byte, and
// applying the same override twice leaves the file unchanged.
package winereg
