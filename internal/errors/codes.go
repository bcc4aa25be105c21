// Package errors defines the coded errors raised by the transform pass
// and a terminal formatter for them.
package errors

// Error codes used in messages and documentation.
//
// Ranges:
// E0001-E0099: transform (name resolution, well-formedness) errors
// E0100-E0199: parse-tree contract violations
const (
	// E0001: a name is bound a second time in the same scope
	ErrorDuplicateDefinition = "E0001"

	// E0002: a call's callee has no module binding in context
	ErrorUnknownModule = "E0002"

	// E0003: a call's argument count differs from the callee's parameters
	ErrorArityMismatch = "E0003"

	// E0004: a named module has no out expression
	ErrorMissingOutput = "E0004"

	// E0005: res used outside a postcondition
	ErrorMisplacedRes = "E0005"

	// E0101: a production carried a child shape the grammar should have
	// prevented; signals a broken grammar collaborator, not a user error
	ErrorMalformedTree = "E0101"
)

// Describe returns a human-readable description of an error code.
func Describe(code string) string {
	switch code {
	case ErrorDuplicateDefinition:
		return "Name is already bound in this scope"
	case ErrorUnknownModule:
		return "Called name has no module binding in context"
	case ErrorArityMismatch:
		return "Module call argument count does not match the definition"
	case ErrorMissingOutput:
		return "Named module is missing an out expression"
	case ErrorMisplacedRes:
		return "res is only valid inside a postcondition"
	case ErrorMalformedTree:
		return "Parse tree violates the grammar contract"
	default:
		return "Unknown error code"
	}
}
