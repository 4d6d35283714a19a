package vdf

import "strings"

// Separator joins nested key segments.
const Separator = "."

// Document is a flat view of a VDF file: dotted key path to value.
// Keys are unique; a repeated key keeps its first position and takes the
// last value seen.
type Document struct {
	values map[string]string
	order  []string
}

func newDocument() *Document {
	return &Document{values: make(map[string]string)}
}

func (d *Document) set(key, value string) {
	if _, exists := d.values[key]; !exists {
		d.order = append(d.order, key)
	}
	d.values[key] = value
}

// Get returns the value stored under the dotted key path.
func (d *Document) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in the order they first appeared in the source.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.order))
	copy(keys, d.order)
	return keys
}

// Len returns the number of distinct keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Map returns a copy of the key/value pairs.
func (d *Document) Map() map[string]string {
	out := make(map[string]string, d.Len())
	if d == nil {
		return out
	}
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// HasSegment reports whether any dot-separated segment of key equals name.
func HasSegment(key, name string) bool {
	for _, segment := range strings.Split(key, Separator) {
		if segment == name {
			return true
		}
	}
	return false
}
