// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain), JSON, YAML and TOML output.
package ui

import (
	"io"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/ui/json"
	"github.com/gdlinux/geode-installer/pkg/ui/terminal"
	"github.com/gdlinux/geode-installer/pkg/ui/text"
	"github.com/gdlinux/geode-installer/pkg/ui/toml"
	"github.com/gdlinux/geode-installer/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a report from pkg/ui/display, or any other value
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message. Style markup is resolved by
	// the terminal renderer and stripped by the text renderer.
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(ResolveFormat(format, output), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	case FormatTOML:
		return toml.New(output)
	default:
		return nil, errors.Newf(errors.ErrInternal, "unknown format: %v", format)
	}
}
