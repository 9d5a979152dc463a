// Package lsp implements a tliron/glsp language server that offers live
// diagnostics over .aotrace trace script files, adapted from the teacher's
// KansoHandler: on open and on change it re-reads the file from disk,
// parses and interprets it, and publishes either a parse error or an
// interpreter error (including any AnalysisInvariantViolation raised by the
// abstract object core) as an LSP diagnostic at the offending position.
package lsp

import (
	"bytes"
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

	"abstractobject/grammar"
	"abstractobject/internal/options"
	"abstractobject/internal/script"
)

// TraceHandler implements the LSP server handlers for the trace script
// language.
type TraceHandler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewTraceHandler creates and returns a new TraceHandler instance.
func NewTraceHandler() *TraceHandler {
	return &TraceHandler{content: make(map[string]string)}
}

// Initialize responds to the LSP client's initialize request and advertises
// the server's capabilities.
func (h *TraceHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's
// capabilities and completes initialization.
func (h *TraceHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("aols Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *TraceHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("aols Shutdown")
	return nil
}

// SetTrace handles the client's $/setTrace notification.
func (h *TraceHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *TraceHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)
	return h.updateAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *TraceHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
func (h *TraceHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)
	return h.updateAndPublish(ctx, params.TextDocument.URI)
}

// updateAndPublish re-reads rawURI from disk, parses and interprets it, and
// publishes either an empty diagnostics list (clean run) or a single
// diagnostic describing the first parse or interpretation failure.
func (h *TraceHandler) updateAndPublish(ctx *glsp.Context, rawURI protocol.DocumentUri) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	h.mu.Lock()
	h.content[path] = string(source)
	h.mu.Unlock()

	prog, err := grammar.ParseString(path, string(source))
	if err != nil {
		sendDiagnosticNotification(ctx, rawURI, ConvertParseError(err))
		return nil
	}

	var out bytes.Buffer
	interp := script.NewInterpreter(&out, options.Default())
	if err := interp.Run(prog); err != nil {
		sendDiagnosticNotification(ctx, rawURI, ConvertStatementError(err))
		return nil
	}

	sendDiagnosticNotification(ctx, rawURI, nil)
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
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
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
