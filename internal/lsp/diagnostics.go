package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"dialogscript/internal/diag"
)

// ConvertError transforms the core's single halt-on-first-error value
// into the (possibly empty) diagnostic list the LSP publishes. The core
// never collects multiple errors, so there is at most one diagnostic
// per document.
func ConvertError(err *diag.Error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	line := uint32(0)
	if err.Line > 0 {
		line = uint32(err.Line - 1)
	}
	column := uint32(0)
	if err.Column > 0 {
		column = uint32(err.Column - 1)
	}

	return []protocol.Diagnostic{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: column},
				End:   protocol.Position{Line: line, Character: column + 1},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("dialogscript"),
			Message:  err.Message,
		},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
