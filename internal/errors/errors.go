package errors

import (
	"fmt"

	"dvrtl/internal/parsetree"
)

// TransformError is a fatal error raised during a transform pass. The
// pass stops at the first one; no partial circuit is ever returned.
type TransformError struct {
	Code     string
	Message  string
	Position parsetree.Position
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Position, e.Code, e.Message)
}

// DuplicateDefinition reports a name bound twice in the same scope.
func DuplicateDefinition(name string, pos parsetree.Position) *TransformError {
	return &TransformError{
		Code:     ErrorDuplicateDefinition,
		Message:  fmt.Sprintf("duplicate definition of %q", name),
		Position: pos,
	}
}

// UnknownModule reports a call whose callee has no module binding.
func UnknownModule(name string, pos parsetree.Position) *TransformError {
	return &TransformError{
		Code:     ErrorUnknownModule,
		Message:  fmt.Sprintf("call to %q, which is not bound to a module", name),
		Position: pos,
	}
}

// ArityMismatch reports a call with the wrong number of arguments.
func ArityMismatch(name string, want, got int, pos parsetree.Position) *TransformError {
	return &TransformError{
		Code:     ErrorArityMismatch,
		Message:  fmt.Sprintf("module %q takes %d arguments, got %d", name, want, got),
		Position: pos,
	}
}

// MissingOutput reports a named module without an out expression.
func MissingOutput(name string, pos parsetree.Position) *TransformError {
	return &TransformError{
		Code:     ErrorMissingOutput,
		Message:  fmt.Sprintf("module bound to %q has no out expression", name),
		Position: pos,
	}
}

// MisplacedRes reports res used outside a postcondition.
func MisplacedRes(where string, pos parsetree.Position) *TransformError {
	return &TransformError{
		Code:     ErrorMisplacedRes,
		Message:  fmt.Sprintf("res is not valid in %s", where),
		Position: pos,
	}
}

// MalformedTree reports a parse-tree shape the grammar should have made
// impossible.
func MalformedTree(label, detail string, pos parsetree.Position) *TransformError {
	return &TransformError{
		Code:     ErrorMalformedTree,
		Message:  fmt.Sprintf("malformed %q production: %s", label, detail),
		Position: pos,
	}
}
