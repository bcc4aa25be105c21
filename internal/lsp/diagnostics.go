package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"dvrtl/internal/errors"
)

// ConvertParseError transforms a syntax error into LSP diagnostics for
// IDE display.
func ConvertParseError(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("dvrtl-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range:    spanAt(pos.Line, pos.Column, 1),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("dvrtl-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertTransformError transforms a transform error into LSP
// diagnostics, keeping the error code visible in the message.
func ConvertTransformError(err error) []protocol.Diagnostic {
	terr, ok := err.(*errors.TransformError)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("dvrtl-transform"),
			Message:  err.Error(),
		}}
	}

	return []protocol.Diagnostic{{
		Range:    spanAt(terr.Position.Line, terr.Position.Column, 1),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("dvrtl-transform"),
		Code:     &protocol.IntegerOrString{Value: terr.Code},
		Message:  terr.Message,
	}}
}

// spanAt builds a one-line range from 1-based line/column coordinates.
func spanAt(line, column, length int) protocol.Range {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(line - 1),
			Character: uint32(column - 1),
		},
		End: protocol.Position{
			Line:      uint32(line - 1),
			Character: uint32(column - 1 + length),
		},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
