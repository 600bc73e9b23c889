package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"dialogscript/internal/ast"
	"dialogscript/internal/outline"
	"dialogscript/internal/parser"
)

// DialogHandler implements the LSP server handlers for dialogue-script
// documents.
type DialogHandler struct {
	mu      sync.RWMutex
	content map[string]string
	nodes   map[string]*ast.Node
}

// NewDialogHandler creates and returns a new DialogHandler instance.
func NewDialogHandler() *DialogHandler {
	return &DialogHandler{
		content: make(map[string]string),
		nodes:   make(map[string]*ast.Node),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities.
func (h *DialogHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			DocumentSymbolProvider: ptrBool(true),
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization.
func (h *DialogHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("dialogscript LSP initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *DialogHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("dialogscript LSP shutdown")
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *DialogHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("opened file: %s\n", params.TextDocument.URI)
	return h.reparseAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *DialogHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.nodes, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
func (h *DialogHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("changed file: %s\n", params.TextDocument.URI)
	return h.reparseAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentCompletion handles completion requests (currently returns an empty list).
func (h *DialogHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}, nil
}

// TextDocumentDocumentSymbol answers an outline request using
// internal/outline, which tolerates a document the strict parser
// currently rejects.
func (h *DialogHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	source, ok := h.content[path]
	h.mu.RUnlock()
	if !ok {
		raw, err := os.ReadFile(path)
		if err != nil {
			return []protocol.DocumentSymbol{}, nil
		}
		source = string(raw)
	}

	symbols := outline.Build(source)
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		line := uint32(0)
		if sym.Line > 0 {
			line = uint32(sym.Line - 1)
		}
		rng := protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: uint32(len(sym.Name))},
		}
		result = append(result, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           symbolKindFor(sym.Kind),
			Range:          rng,
			SelectionRange: rng,
		})
	}
	return result, nil
}

func symbolKindFor(kind outline.SymbolKind) protocol.SymbolKind {
	switch kind {
	case outline.SymbolShortcutOption, outline.SymbolOptionLink:
		return protocol.SymbolKindEvent
	case outline.SymbolCommand:
		return protocol.SymbolKindFunction
	default:
		return protocol.SymbolKindString
	}
}

func (h *DialogHandler) reparseAndPublish(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	source := string(content)

	node, parseErr := parser.Parse(source)

	h.mu.Lock()
	h.content[path] = source
	h.nodes[path] = node
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, ConvertError(parseErr))
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Printf("publishing %d diagnostic(s) for %s\n", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
