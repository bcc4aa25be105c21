package errors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"dvrtl/internal/parsetree"
)

func TestTransformErrorMessage(t *testing.T) {
	err := DuplicateDefinition("A", parsetree.Position{Filename: "test.dv", Line: 2, Column: 1})
	assert.Equal(t, `test.dv:2:1 [E0001]: duplicate definition of "A"`, err.Error())
}

func TestErrorCodes(t *testing.T) {
	pos := parsetree.Position{}
	assert.Equal(t, ErrorUnknownModule, UnknownModule("f", pos).Code)
	assert.Equal(t, ErrorArityMismatch, ArityMismatch("f", 2, 1, pos).Code)
	assert.Equal(t, ErrorMissingOutput, MissingOutput("f", pos).Code)
	assert.Equal(t, ErrorMisplacedRes, MisplacedRes("an assertion", pos).Code)
	assert.Equal(t, ErrorMalformedTree, MalformedTree("reg", "detail", pos).Code)
}

func TestDescribeKnownCodes(t *testing.T) {
	for _, code := range []string{
		ErrorDuplicateDefinition, ErrorUnknownModule, ErrorArityMismatch,
		ErrorMissingOutput, ErrorMisplacedRes, ErrorMalformedTree,
	} {
		assert.NotEqual(t, "Unknown error code", Describe(code))
	}
	assert.Equal(t, "Unknown error code", Describe("E9999"))
}

func TestFormatPointsAtOffendingLine(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	source := "A -> 0, A\nA -> 1, A"
	r := NewReporter("test.dv", source)
	err := DuplicateDefinition("A", parsetree.Position{Filename: "test.dv", Line: 2, Column: 1})

	out := r.Format(err)
	assert.Contains(t, out, `error[E0001]: duplicate definition of "A"`)
	assert.Contains(t, out, "--> test.dv:2:1")
	assert.Contains(t, out, "A -> 1, A")
	assert.Contains(t, out, "^")
}

func TestFormatToleratesOutOfRangeLine(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	r := NewReporter("test.dv", "x = 1")
	err := MalformedTree("start", "missing start production", parsetree.Position{})

	out := r.Format(err)
	assert.Contains(t, out, "error[E0101]")
}
