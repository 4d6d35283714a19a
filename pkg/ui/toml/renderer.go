// Package toml renders results as TOML documents.
package toml

import (
	"io"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/gdlinux/geode-installer/pkg/ui/display"
)

// Renderer writes results as TOML. Results must be structs or maps since
// TOML has no top-level scalars or arrays.
type Renderer struct {
	output io.Writer
}

func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.write(result)
}

func (r *Renderer) RenderError(err error) error {
	return r.write(display.NewErrorReport(err))
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.write(display.MessageReport{Message: msg})
}

func (r *Renderer) write(v interface{}) error {
	encoder := gotoml.NewEncoder(r.output)
	encoder.SetIndentTables(true)
	return encoder.Encode(v)
}
