package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"dvrtl/internal/parsetree"
)

var parser = buildParser()

func buildParser() *participle.Parser[Circuit] {
	p, err := participle.Build[Circuit](
		participle.Lexer(DvrtlLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

// ParseSource parses dvrtl source text into the concrete syntax.
func ParseSource(sourceName, source string) (*Circuit, error) {
	return parser.ParseString(sourceName, source)
}

// ParseFile parses a dvrtl source file into the concrete syntax.
func ParseFile(path string) (*Circuit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// Parse parses source text and lowers it straight into the labeled parse
// tree the transformer consumes.
func Parse(sourceName, source string) (*parsetree.Node, error) {
	circuit, err := ParseSource(sourceName, source)
	if err != nil {
		return nil, err
	}
	return circuit.Tree(), nil
}

// ReportParseError prints a friendly caret-style parse error message.
func ReportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
