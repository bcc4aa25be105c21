package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats transform errors against the original source text,
// with a caret marker under the offending construct.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter for one source file.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders one error in the caret style used by the CLI.
func (r *Reporter) Format(err *TransformError) string {
	var b strings.Builder

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	b.WriteString(fmt.Sprintf("%s[%s]: %s\n", red("error"), err.Code, err.Message))

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)
	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Position.Line > 0 && err.Position.Line <= len(r.lines) {
		content := r.lines[err.Position.Line-1]
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), content))

		marker := strings.Repeat(" ", maxInt(0, err.Position.Column-1)) + red("^")
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	return b.String()
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
