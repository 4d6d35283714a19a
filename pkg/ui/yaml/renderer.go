// Package yaml renders results as YAML documents.
package yaml

import (
	"io"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gdlinux/geode-installer/pkg/ui/display"
)

// Renderer writes one YAML document per call.
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
	data, err := yamlv3.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}
