package winereg

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdlinux/geode-installer/pkg/errors"
)

// Default DLL override required by Geode's xinput proxy loader.
const (
	DefaultSection = `Software\\Wine\\DllOverrides`
	DefaultKey     = "xinput1_4"
	DefaultValue   = "native,builtin"
)

// Override is a single "key"="value" entry in a registry section. Section
// is written exactly as it appears between the brackets in the hive, with
// backslashes already doubled.
type Override struct {
	Section string
	Key     string
	Value   string
}

// DefaultOverride returns the xinput1_4 override.
func DefaultOverride() Override {
	return Override{Section: DefaultSection, Key: DefaultKey, Value: DefaultValue}
}

// Header returns the bracketed section name, without timestamp.
func (o Override) Header() string {
	return "[" + o.Section + "]"
}

// Entry returns the `"key"="value"` line, without newline. Key and value
// are written verbatim; see Validate.
func (o Override) Entry() string {
	return `"` + o.Key + `"="` + o.Value + `"`
}

// marker is what presence detection looks for. Any value counts, so a user
// who set the key to something else is left alone.
func (o Override) marker() string {
	return `"` + o.Key + `"=`
}

// Validate rejects overrides that cannot be written as a plain registry
// line: empty section or key, quotes, control characters.
func (o Override) Validate() error {
	if o.Section == "" || o.Key == "" {
		return errors.New(errors.ErrValidation, "wine.override needs a section and a key")
	}
	for field, s := range map[string]string{"section": o.Section, "key": o.Key, "value": o.Value} {
		for _, r := range s {
			if r == '"' || unicode.IsControl(r) {
				return errors.Newf(errors.ErrValidation, "wine.override.%s contains %q", field, r).
					WithDetail(field, s)
			}
		}
	}
	if strings.ContainsAny(o.Section, "[]") {
		return errors.New(errors.ErrValidation, "wine.override.section must not contain brackets").
			WithDetail("section", o.Section)
	}
	return nil
}

// EnsureEntry returns content with the override present. If the key is
// already set anywhere in the document, content is returned unchanged. If
// the section is missing it is appended with a fresh timestamp taken from
// now. Otherwise the entry is inserted as the last line of the section.
func EnsureEntry(content string, o Override, now time.Time) string {
	if strings.Contains(content, o.marker()) {
		return content
	}

	header := o.Header()
	start := strings.Index(content, header)
	if start < 0 {
		return content + newSection(o, now)
	}

	searchFrom := start + len(header)
	insertAt := len(content)
	if next := strings.Index(content[searchFrom:], "\n["); next >= 0 {
		insertAt = searchFrom + next
	}

	// insertAt is either EOF or the newline in front of the next header.
	// The entry always gets a line of its own.
	atLineStart := content[insertAt-1] == '\n'

	var b strings.Builder
	b.Grow(len(content) + len(o.Entry()) + 2)
	b.WriteString(content[:insertAt])
	if !atLineStart {
		b.WriteByte('\n')
	}
	b.WriteString(o.Entry())
	if atLineStart || insertAt == len(content) {
		b.WriteByte('\n')
	}
	b.WriteString(content[insertAt:])
	return b.String()
}

func newSection(o Override, now time.Time) string {
	unix := now.Unix()
	return fmt.Sprintf("\n\n%s %d\n#time=%x\n%s\n", o.Header(), unix, unix, o.Entry())
}
