// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdlinux/geode-installer/pkg/errors"
	"github.com/gdlinux/geode-installer/pkg/style"
	"github.com/gdlinux/geode-installer/pkg/ui/display"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	report, ok := result.(display.Report)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	lines := []string{style.SubtitleStyle.Render(report.Title())}
	for _, field := range report.Fields() {
		lines = append(lines, renderField(field)...)
	}

	body := style.BoxStyle.Render(strings.Join(lines, "\n"))
	if summary := report.Summary(); summary != "" {
		body += "\n" + style.Render(summary)
	}

	_, err := fmt.Fprintln(r.output, body)
	return err
}

func renderField(field display.Field) []string {
	if len(field.Values) == 0 {
		return []string{style.LabelStyle.Render(field.Label) + style.MutedStyle.Render("-")}
	}

	lines := make([]string, 0, len(field.Values))
	for i, value := range field.Values {
		label := field.Label
		if i > 0 {
			label = ""
		}
		lines = append(lines, style.LabelStyle.Render(label)+renderValue(field.Kind, value))
	}
	return lines
}

func renderValue(kind display.FieldKind, value string) string {
	switch kind {
	case display.KindPath:
		return style.PathStyle.Render(value)
	case display.KindFound:
		return style.SuccessIndicator + " " + style.PathStyle.Render(value)
	case display.KindMissing:
		return style.ErrorIndicator + " " + style.MutedStyle.Render(value)
	case display.KindRelease:
		return style.GeodeStyle.Render(value)
	default:
		return style.NormalStyle.Render(value)
	}
}

// RenderError renders an error with the failing path or URL underneath
func (r *Renderer) RenderError(err error) error {
	lines := []string{style.ErrorIndicator + " " + style.ErrorStyle.Render(err.Error())}
	for key, value := range errors.GetErrorDetails(err) {
		lines = append(lines, style.Indent(style.MutedStyle.Render(fmt.Sprintf("%s: %v", key, value)), 1))
	}
	_, writeErr := fmt.Fprintln(r.output, strings.Join(lines, "\n"))
	return writeErr
}

// RenderMessage renders a simple message, resolving style markup
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}
