package dump

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	kindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	lengthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))
)

// TextOptions controls Text output.
type TextOptions struct {
	// Styled enables terminal colors.
	Styled bool
	// Indent is the number of spaces per level. Zero means two.
	Indent int
}

// Text renders d as an indented tree, one structure per line:
//
//	append_frame (6) frame_type=252 offset_delta=7
//	  object_variable_info (3) tag=7 cpool_index=12
func Text(d *Doc, opts TextOptions) string {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	var b strings.Builder
	writeText(&b, d, 0, opts)
	return b.String()
}

// Line renders d alone, without its children.
func Line(d *Doc, styled bool) string {
	render := func(s lipgloss.Style, text string) string {
		if styled {
			return s.Render(text)
		}
		return text
	}

	var b strings.Builder
	b.WriteString(render(kindStyle, d.Kind))
	b.WriteByte(' ')
	b.WriteString(render(lengthStyle, fmt.Sprintf("(%d)", d.Length)))
	for _, f := range d.Fields {
		b.WriteByte(' ')
		b.WriteString(render(nameStyle, f.Name))
		b.WriteByte('=')
		b.WriteString(render(valueStyle, formatValue(f.Value)))
	}
	return b.String()
}

func writeText(b *strings.Builder, d *Doc, depth int, opts TextOptions) {
	b.WriteString(strings.Repeat(" ", depth*opts.Indent))
	b.WriteString(Line(d, opts.Styled))
	b.WriteByte('\n')
	for _, c := range d.Children {
		writeText(b, c, depth+1, opts)
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return `""`
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}
