package analysis

import (
	"errors"
	"testing"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

func TestCacheIdempotence(t *testing.T) {
	calls := 0
	cache := NewCache(func(source []byte, fallbackName string) (*FileAnalysis, error) {
		calls++
		return &FileAnalysis{Summary: ClassSummary{ClassName: "A"}}, nil
	}, 0)

	text := []byte("class A {}")
	first, err := cache.Analyze("file:///A.java", text, "A")
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Analyze("file:///A.java", text, "A")
	if err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Errorf("pipeline ran %d times, want 1", calls)
	}
	if first != second {
		t.Error("expected the identical cached result object")
	}
}

func TestCacheFingerprintSensitivity(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
	}{
		{"whitespace only", "class A { }", "class A {  }"},
		{"identifier only", "class A { int x; }", "class A { int y; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			cache := NewCache(func(source []byte, fallbackName string) (*FileAnalysis, error) {
				calls++
				return &FileAnalysis{}, nil
			}, 0)

			if _, err := cache.Analyze("doc", []byte(tt.before), "A"); err != nil {
				t.Fatal(err)
			}
			if _, err := cache.Analyze("doc", []byte(tt.after), "A"); err != nil {
				t.Fatal(err)
			}
			if calls != 2 {
				t.Errorf("pipeline ran %d times, want 2 (no false cache hit)", calls)
			}
		})
	}
}

type countingParser struct {
	calls int
	err   error
}

func (p *countingParser) Parse(source []byte) (*syntax.Node, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return syntax.NewNode("ordinaryCompilationUnit"), nil
}

func TestCacheSizeCutoffSkipsParser(t *testing.T) {
	parser := &countingParser{}
	analyzer := NewAnalyzer(parser, 16)

	big := make([]byte, 64)
	result, err := analyzer.Analyze("Huge.java", big)
	if err != nil {
		t.Fatal(err)
	}

	if parser.calls != 0 {
		t.Errorf("parser invoked %d times for an oversized file, want 0", parser.calls)
	}
	if result.Summary.ClassName != "Huge" {
		t.Errorf("fallback name: got %q, want %q", result.Summary.ClassName, "Huge")
	}
	if len(result.Decls) != 0 || len(result.Invocations) != 0 || result.SystemService != nil {
		t.Error("oversized file should yield a degenerate empty analysis")
	}

	// The degenerate result is a valid cached outcome.
	if _, err := analyzer.Analyze("Huge.java", big); err != nil {
		t.Fatal(err)
	}
	if analyzer.Cache().Len() != 1 {
		t.Errorf("cache size: got %d, want 1", analyzer.Cache().Len())
	}
}

func TestCacheParseFailureNotCached(t *testing.T) {
	parser := &countingParser{err: &syntax.ParseError{Message: "bad"}}
	analyzer := NewAnalyzer(parser, 0)

	text := []byte("not java at all")
	if _, err := analyzer.Analyze("Bad.java", text); err == nil {
		t.Fatal("expected an error for a parse failure")
	}
	if _, err := analyzer.Analyze("Bad.java", text); err == nil {
		t.Fatal("expected the failure again on retry")
	}

	if parser.calls != 2 {
		t.Errorf("parser invoked %d times, want 2 (failures are not cached)", parser.calls)
	}
	if analyzer.Cache().Len() != 0 {
		t.Errorf("cache size: got %d, want 0", analyzer.Cache().Len())
	}
}

func TestCacheEvictAndClear(t *testing.T) {
	calls := 0
	cache := NewCache(func(source []byte, fallbackName string) (*FileAnalysis, error) {
		calls++
		return &FileAnalysis{}, nil
	}, 0)

	text := []byte("class A {}")
	cache.Analyze("a", text, "A")
	cache.Analyze("b", text, "B")
	if cache.Len() != 2 {
		t.Fatalf("cache size: got %d, want 2", cache.Len())
	}

	cache.Evict("a")
	if cache.Len() != 1 {
		t.Errorf("after evict: got %d, want 1", cache.Len())
	}
	cache.Analyze("a", text, "A")
	if calls != 3 {
		t.Errorf("pipeline ran %d times, want 3 after eviction", calls)
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after clear: got %d, want 0", cache.Len())
	}
}

func TestFallbackClassName(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"/a/b/PowerManagerService.java", "PowerManagerService"},
		{"file.java", "file"},
		{"NoExtension", "NoExtension"},
	}
	for _, tt := range tests {
		if got := FallbackClassName(tt.identity); got != tt.want {
			t.Errorf("FallbackClassName(%q) = %q, want %q", tt.identity, got, tt.want)
		}
	}
}

func TestAnalyzeSourceDegradesOnParseFailure(t *testing.T) {
	parser := &countingParser{err: errors.New("rejected")}
	result := AnalyzeSource(parser, []byte("garbage"), "Fallback")
	if result.Summary.ClassName != "Fallback" {
		t.Errorf("got %q, want fallback summary", result.Summary.ClassName)
	}
	if len(result.Decls) != 0 {
		t.Error("expected no declarations in the degraded summary")
	}
}
