// Package workspace is the host-side adapter around the analysis engine: it
// owns the parser and cache for a session, applies the language gate, walks
// directories with cooperative cancellation, and exposes the LSP surface.
// All scheduling (watching, debouncing) lives here; the analysis packages
// have no timers.
package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/MarkThunder/aosp-member-viewer/analysis"
	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

// LanguageJava is the only language marker the engine accepts.
const LanguageJava = "java"

// ErrNotJava rejects documents whose language marker or extension is not
// Java-like. Such inputs are never analyzed.
var ErrNotJava = errors.New("not a java document")

var log = commonlog.GetLogger("amv.workspace")

// Workspace ties one session's parser and analysis cache to a root
// directory.
type Workspace struct {
	rootDir  string
	analyzer *analysis.Analyzer
}

// New builds a workspace rooted at rootDir. maxFileSize <= 0 selects the
// analysis default.
func New(rootDir string, parser syntax.Parser, maxFileSize int) *Workspace {
	return &Workspace{
		rootDir:  rootDir,
		analyzer: analysis.NewAnalyzer(parser, maxFileSize),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// AnalyzeText analyzes in-memory document content. Only documents whose
// language marker is Java are accepted.
func (w *Workspace) AnalyzeText(identity string, text []byte, languageID string) (*analysis.FileAnalysis, error) {
	if languageID != LanguageJava {
		return nil, ErrNotJava
	}
	return w.analyzer.Analyze(identity, text)
}

// AnalyzeFile reads and analyzes one file from disk.
func (w *Workspace) AnalyzeFile(path string) (*analysis.FileAnalysis, error) {
	if filepath.Ext(path) != ".java" {
		return nil, ErrNotJava
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.analyzer.Analyze(path, content)
}

// Evict drops one document from the analysis cache.
func (w *Workspace) Evict(identity string) {
	w.analyzer.Cache().Evict(identity)
}

// ClearCache drops every cached analysis.
func (w *Workspace) ClearCache() {
	w.analyzer.Cache().Clear()
}

// ScanSystemServices walks root for Java files whose primary class extends
// SystemService. Cancellation is cooperative at file granularity: the
// context is checked between files, and whatever was accumulated so far is
// returned alongside the context's error.
func (w *Workspace) ScanSystemServices(ctx context.Context, root string) ([]*analysis.SystemServiceSummary, error) {
	var out []*analysis.SystemServiceSummary
	err := w.walkJavaFiles(ctx, root, func(path string, content []byte) {
		result, err := w.analyzer.Analyze(path, content)
		if err != nil {
			log.Debugf("skipping %s: %s", path, err.Error())
			return
		}
		if result.SystemService != nil {
			out = append(out, result.SystemService)
		}
	})
	return out, err
}

// LifecycleTimelines walks root for the fixed boot-sequence files and
// builds a timeline per match. Same cancellation contract as
// ScanSystemServices.
func (w *Workspace) LifecycleTimelines(ctx context.Context, root string) ([]*analysis.LifecycleTimeline, error) {
	var out []*analysis.LifecycleTimeline
	err := w.walkJavaFiles(ctx, root, func(path string, content []byte) {
		if !analysis.LifecycleTarget(path) {
			return
		}
		result, err := w.analyzer.Analyze(path, content)
		if err != nil {
			log.Debugf("skipping %s: %s", path, err.Error())
			return
		}
		if timeline, ok := analysis.BuildLifecycleTimeline(path, result.Summary.ClassName, result.Decls); ok {
			out = append(out, timeline)
		}
	})
	return out, err
}

// LockWarnings scans one file's raw text for lock hazards. The scan is
// independent of the grammar parser, so it works even on files the parser
// rejects.
func (w *Workspace) LockWarnings(path string) ([]analysis.ConcurrencyWarning, error) {
	if filepath.Ext(path) != ".java" {
		return nil, ErrNotJava
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return analysis.DetectLockHazards(content), nil
}

// walkJavaFiles visits every .java file under root, skipping hidden
// directories, checking the context between files.
func (w *Workspace) walkJavaFiles(ctx context.Context, root string, visit func(path string, content []byte)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if filepath.Ext(path) != ".java" {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		visit(path, content)
		return nil
	})
}
