package workspace

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/MarkThunder/aosp-member-viewer/analysis"
	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

const lsName = "amv"

// LSPServer exposes the engine to an editor: document symbols from the
// structural summary, lock-hazard warnings as diagnostics. Document sync is
// whole-text; every change re-runs the cached analysis pipeline.
type LSPServer struct {
	newParser func() syntax.Parser
	workspace *Workspace
	watcher   *FileWatcher
	handler   protocol.Handler
	server    *server.Server
	version   string

	mu   sync.Mutex
	docs map[string][]byte
}

// NewLSPServer builds the server; newParser supplies the grammar parser the
// workspace will own once the root directory is known at initialize time.
func NewLSPServer(version string, newParser func() syntax.Parser) *LSPServer {
	ls := &LSPServer{
		newParser: newParser,
		version:   version,
		docs:      make(map[string][]byte),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir, ls.newParser(), 0)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if ls.workspace != nil {
		ls.watcher = NewFileWatcher(ls.workspace)
		ls.watcher.Start()
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	if params.TextDocument.LanguageID != LanguageJava {
		return nil
	}
	ls.updateDocument(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.updateDocument(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.updateDocument(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	if ls.workspace != nil {
		ls.workspace.Evict(params.TextDocument.URI)
	}
	return nil
}

func (ls *LSPServer) updateDocument(ctx *glsp.Context, uri string, text []byte) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	if ls.workspace == nil {
		return
	}
	if _, err := ls.workspace.AnalyzeText(uri, text, LanguageJava); err != nil {
		log.Debugf("analyze %s: %s", uri, err.Error())
	}
	ls.publishLockWarnings(ctx, uri, text)
}

func (ls *LSPServer) publishLockWarnings(ctx *glsp.Context, uri string, text []byte) {
	warnings := analysis.DetectLockHazards(text)
	lines := syntax.BuildLineIndex(text)

	diagnostics := make([]protocol.Diagnostic, 0, len(warnings))
	severity := protocol.DiagnosticSeverityWarning
	source := lsName
	for _, w := range warnings {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: offsetToPosition(w.Start, text, lines),
				End:   offsetToPosition(w.End, text, lines),
			},
			Severity: &severity,
			Source:   &source,
			Message:  w.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	ls.mu.Lock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if !ok || ls.workspace == nil {
		return nil, nil
	}

	result, err := ls.workspace.AnalyzeText(params.TextDocument.URI, text, LanguageJava)
	if err != nil {
		return nil, nil
	}
	return summaryToSymbols(result.Summary), nil
}

func summaryToSymbols(summary analysis.ClassSummary) []protocol.DocumentSymbol {
	class := protocol.DocumentSymbol{
		Name: summary.ClassName,
		Kind: protocol.SymbolKindClass,
	}
	if summary.PackageName != "" {
		detail := summary.PackageName
		class.Detail = &detail
	}

	for _, f := range summary.Fields {
		detail := f.Type
		class.Children = append(class.Children, protocol.DocumentSymbol{
			Name:           f.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindField,
			Range:          lineRange(f.Line),
			SelectionRange: lineRange(f.Line),
		})
	}
	for _, m := range summary.Methods {
		class.Children = append(class.Children, protocol.DocumentSymbol{
			Name:           m.Name,
			Kind:           protocol.SymbolKindMethod,
			Range:          lineRange(m.Line),
			SelectionRange: lineRange(m.Line),
		})
	}

	symbols := []protocol.DocumentSymbol{class}
	for _, inner := range summary.InnerClasses {
		symbols = append(symbols, protocol.DocumentSymbol{
			Name: inner,
			Kind: protocol.SymbolKindClass,
		})
	}
	return symbols
}

func lineRange(line int) protocol.Range {
	if line < 1 {
		line = 1
	}
	pos := protocol.Position{Line: protocol.UInteger(line - 1), Character: 0}
	return protocol.Range{Start: pos, End: pos}
}

// offsetToPosition converts a byte offset to an LSP position. Character is
// counted in UTF-16 code units over the line prefix, per the protocol's
// default position encoding.
func offsetToPosition(offset int, text []byte, lines syntax.LineIndex) protocol.Position {
	line := lines.LineAt(offset)
	start := lines[line-1]
	if offset > len(text) {
		offset = len(text)
	}
	column := 0
	for i := start; i < offset; {
		r, size := utf8.DecodeRune(text[i:])
		i += size
		column += len(utf16.Encode([]rune{r}))
	}
	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(column),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
