// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdlinux/geode-installer/pkg/style"
	"github.com/gdlinux/geode-installer/pkg/ui/display"
)

const labelWidth = 14

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders reports as aligned label/value lines. Other values
// are printed with %+v.
func (r *Renderer) RenderResult(result interface{}) error {
	report, ok := result.(display.Report)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	var b strings.Builder
	b.WriteString(report.Title())
	b.WriteString("\n")
	for _, field := range report.Fields() {
		writeField(&b, field)
	}
	if summary := report.Summary(); summary != "" {
		b.WriteString("\n")
		b.WriteString(style.Strip(summary))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func writeField(b *strings.Builder, field display.Field) {
	label := field.Label + ":"
	if len(field.Values) == 0 {
		fmt.Fprintf(b, "  %-*s-\n", labelWidth, label)
		return
	}
	for i, value := range field.Values {
		if i > 0 {
			label = ""
		}
		fmt.Fprintf(b, "  %-*s%s\n", labelWidth, label, value)
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return writeErr
}

// RenderMessage renders a simple message as plain text
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}
