package analysis

import (
	"path/filepath"
	"strings"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

// Analyzer ties the grammar parser, the analysis pipeline and the cache
// together for one session.
type Analyzer struct {
	parser syntax.Parser
	cache  *Cache
}

// NewAnalyzer builds an analyzer around the given parser. maxBytes <= 0
// selects DefaultMaxFileSize.
func NewAnalyzer(parser syntax.Parser, maxBytes int) *Analyzer {
	a := &Analyzer{parser: parser}
	a.cache = NewCache(a.run, maxBytes)
	return a
}

// Cache exposes the analyzer's cache for eviction by the host.
func (a *Analyzer) Cache() *Cache {
	return a.cache
}

// Analyze returns the cached or freshly computed analysis for one document.
// identity is an opaque key (path or URI); its base name, minus the .java
// extension, doubles as the fallback class name. A grammar-level parse
// failure is returned as an error and never cached.
func (a *Analyzer) Analyze(identity string, source []byte) (*FileAnalysis, error) {
	return a.cache.Analyze(identity, source, FallbackClassName(identity))
}

// AnalyzeSource is the uncached, always-total summarization path: a parse
// failure degrades to a fallback-named empty summary instead of an error.
func AnalyzeSource(parser syntax.Parser, source []byte, fallbackName string) *FileAnalysis {
	root, err := parser.Parse(source)
	if err != nil {
		return &FileAnalysis{Summary: ClassSummary{ClassName: fallbackName}}
	}
	return runPipeline(root, source, fallbackName)
}

func (a *Analyzer) run(source []byte, fallbackName string) (*FileAnalysis, error) {
	root, err := a.parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return runPipeline(root, source, fallbackName), nil
}

// runPipeline is the memoized unit of work: structural summary, invocation
// scan over every method body, and the system-service heuristic.
func runPipeline(root *syntax.Node, source []byte, fallbackName string) *FileAnalysis {
	summary, decls := Summarize(root, source, fallbackName)
	lines := syntax.BuildLineIndex(source)

	var invocations []MethodInvocation
	for _, d := range decls {
		if !d.HasBody {
			continue
		}
		end := d.BodyEnd + 1
		if end > len(source) {
			end = len(source)
		}
		if d.BodyStart >= end {
			continue
		}
		span := string(source[d.BodyStart:end])
		invocations = append(invocations, ScanInvocations(span, d.BodyStart, lines)...)
	}

	return &FileAnalysis{
		Summary:       summary,
		Decls:         decls,
		Invocations:   invocations,
		SystemService: DetectSystemService(root, source, summary, decls, invocations),
	}
}

// FallbackClassName derives a class name from a document identity: the base
// name with the .java extension removed.
func FallbackClassName(identity string) string {
	base := filepath.Base(identity)
	return strings.TrimSuffix(base, ".java")
}
