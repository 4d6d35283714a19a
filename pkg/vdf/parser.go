package vdf

import (
	"unicode"

	"github.com/gdlinux/geode-installer/pkg/logging"
	"github.com/gdlinux/geode-installer/pkg/types"
)

// cursor is the scan position shared by every level of the descent.
type cursor struct {
	src []rune
	pos int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) peek() rune {
	return c.src[c.pos]
}

func (c *cursor) skipSpace() {
	for !c.eof() && unicode.IsSpace(c.peek()) {
		c.pos++
	}
}

func (c *cursor) atComment() bool {
	return c.pos+1 < len(c.src) && c.src[c.pos] == '/' && c.src[c.pos+1] == '/'
}

func (c *cursor) skipLine() {
	for !c.eof() && c.peek() != '\n' {
		c.pos++
	}
}

// quoted reads a string whose opening quote is at the cursor. An
// unterminated string runs to the end of input.
func (c *cursor) quoted() string {
	c.pos++
	start := c.pos
	for !c.eof() && c.peek() != '"' {
		c.pos++
	}
	s := string(c.src[start:c.pos])
	c.pos++
	return s
}

// Parse flattens VDF text into a Document. It never fails.
func Parse(text string) *Document {
	doc := newDocument()
	c := &cursor{src: []rune(text)}
	parseBlock(c, doc, "")
	return doc
}

// parseBlock consumes entries until the closing brace of the current block
// or the end of input. At the top level a stray closing brace also ends
// the scan.
func parseBlock(c *cursor, doc *Document, prefix string) {
	for !c.eof() {
		c.skipSpace()
		if c.eof() {
			return
		}

		if c.atComment() {
			c.skipLine()
			continue
		}

		switch c.peek() {
		case '}':
			c.pos++
			return
		case '{':
			// A block without a preceding key contributes no prefix
			c.pos++
		case '"':
			key := join(prefix, c.quoted())
			c.skipSpace()
			if c.eof() {
				return
			}
			switch c.peek() {
			case '"':
				doc.set(key, c.quoted())
			case '{':
				c.pos++
				parseBlock(c, doc, key)
			}
		default:
			c.pos++
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// ParseFile reads and parses path. A missing or unreadable file yields an
// empty Document.
func ParseFile(fsys types.FS, path string) *Document {
	logger := logging.GetLogger("vdf")

	data, err := fsys.ReadFile(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("VDF file not readable, using empty document")
		return newDocument()
	}

	doc := Parse(string(data))
	logger.Trace().Str("path", path).Int("keys", doc.Len()).Msg("Parsed VDF file")
	return doc
}
