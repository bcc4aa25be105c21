// Package lsp implements the language server for dvrtl designs. The
// handler keeps the latest parse and transform result per open document
// and publishes diagnostics on every change.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"dvrtl/grammar"
	"dvrtl/internal/ast"
	"dvrtl/internal/transform"
)

// keywords the editor may complete anywhere an identifier fits.
var keywords = []string{
	"mod", "out", "req", "ens", "assert", "assume",
	"mux", "not", "res", "xor", "and", "or", "eq", "impl",
}

// DvrtlHandler implements the LSP server handlers for the dvrtl language.
type DvrtlHandler struct {
	mu       sync.RWMutex
	content  map[string]string
	circuits map[string]*ast.Circuit
}

// NewDvrtlHandler creates and returns a new DvrtlHandler instance.
func NewDvrtlHandler() *DvrtlHandler {
	return &DvrtlHandler{
		content:  make(map[string]string),
		circuits: make(map[string]*ast.Circuit),
	}
}

// Initialize responds to the LSP client's initialize request and
// advertises the server's capabilities.
func (h *DvrtlHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
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
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client completes initialization.
func (h *DvrtlHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("dvrtl LSP initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *DvrtlHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("dvrtl LSP shutdown")
	return nil
}

// SetTrace acknowledges trace level changes; the server does not emit
// trace notifications.
func (h *DvrtlHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *DvrtlHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)
	return h.refresh(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange handles file change notifications. Sync is
// full-document, so the last change event carries the whole text.
func (h *DvrtlHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	var text string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			text = c.Text
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		}
	}
	return h.refresh(ctx, params.TextDocument.URI, text)
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *DvrtlHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.circuits, path)
	return nil
}

// TextDocumentCompletion completes keywords plus every name bound at
// the top level of the document's last good circuit.
func (h *DvrtlHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}

	h.mu.RLock()
	circuit := h.circuits[path]
	h.mu.RUnlock()

	if circuit != nil && circuit.Context != nil {
		for _, sym := range circuit.Context.Symbols() {
			kind := protocol.CompletionItemKindVariable
			if circuit.Context.IsModule(sym) {
				kind = protocol.CompletionItemKindFunction
			}
			items = append(items, protocol.CompletionItem{
				Label: sym.Name,
				Kind:  ptrCompletionKind(kind),
			})
		}
	}

	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the
// entire document.
func (h *DvrtlHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	content, ok := h.content[path]
	h.mu.RUnlock()
	if !ok {
		return &protocol.SemanticTokens{}, nil
	}

	tokens, err := collectSemanticTokens(path, content)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

// refresh reparses a document, caches the result and publishes the
// diagnostics of the new text. A broken document keeps its previous
// circuit so completion stays useful while the user types.
func (h *DvrtlHandler) refresh(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	diagnostics := []protocol.Diagnostic{}
	tree, err := grammar.Parse(path, text)
	if err != nil {
		diagnostics = ConvertParseError(err)
	} else if circuit, terr := transform.Transform(tree); terr != nil {
		diagnostics = ConvertTransformError(terr)
	} else {
		h.mu.Lock()
		h.circuits[path] = circuit
		h.mu.Unlock()
	}

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// uriToPath converts a document URI to a platform-local file path.
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
	if ctx == nil || ctx.Notify == nil {
		return
	}
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

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
