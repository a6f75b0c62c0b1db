package analysis

import (
	"strings"
	"testing"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

func scan(span string) []MethodInvocation {
	return ScanInvocations(span, 0, syntax.BuildLineIndex([]byte(span)))
}

func TestScanInvocationsArity(t *testing.T) {
	tests := []struct {
		span string
		name string
		args int
	}{
		{"f(a, b.g(c, d), e);", "f", 3},
		{"f();", "f", 0},
		{"f(new int[]{1,2,3});", "f", 1},
		{"f(Map<String, Integer> m);", "f", 1},
		{"f(  );", "f", 0},
		{"f(x);", "f", 1},
	}

	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			invs := scan(tt.span)
			if len(invs) == 0 {
				t.Fatal("no invocations found")
			}
			if invs[0].Name != tt.name {
				t.Errorf("name: got %q, want %q", invs[0].Name, tt.name)
			}
			if invs[0].ArgCount != tt.args {
				t.Errorf("args: got %d, want %d", invs[0].ArgCount, tt.args)
			}
		})
	}
}

func TestScanInvocationsFindsNestedCalls(t *testing.T) {
	invs := scan("f(a, b.g(c, d), e);")
	if len(invs) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(invs))
	}
	if invs[1].Name != "g" || invs[1].ArgCount != 2 {
		t.Errorf("nested call: got %s(%d), want g(2)", invs[1].Name, invs[1].ArgCount)
	}
}

func TestScanInvocationsSkipsKeywords(t *testing.T) {
	invs := scan("if (x) { foo(1); } else { while (y) bar(); } return (z);")
	if len(invs) != 2 {
		t.Fatalf("expected 2 invocations, got %d: %v", len(invs), invs)
	}
	if invs[0].Name != "foo" || invs[1].Name != "bar" {
		t.Errorf("got %s, %s; want foo, bar", invs[0].Name, invs[1].Name)
	}
}

func TestScanInvocationsStringLiterals(t *testing.T) {
	t.Run("close paren inside string does not end the call", func(t *testing.T) {
		invs := scan(`log("a)b", x);`)
		if len(invs) != 1 {
			t.Fatalf("expected 1 invocation, got %d", len(invs))
		}
		if invs[0].ArgCount != 2 {
			t.Errorf("args: got %d, want 2", invs[0].ArgCount)
		}
	})

	t.Run("escaped quote inside string", func(t *testing.T) {
		invs := scan(`log("a\")b", x);`)
		if len(invs) != 1 {
			t.Fatalf("expected 1 invocation, got %d", len(invs))
		}
		if invs[0].ArgCount != 2 {
			t.Errorf("args: got %d, want 2", invs[0].ArgCount)
		}
	})
}

func TestScanInvocationsUnbalancedInputDropped(t *testing.T) {
	if invs := scan("broken(a, b"); len(invs) != 0 {
		t.Errorf("expected unterminated call to be dropped, got %v", invs)
	}
}

func TestScanInvocationsOffsetsAndLines(t *testing.T) {
	span := "x();\ny(1);"
	file := strings.Repeat(" ", 99) + "\n" + span
	invs := ScanInvocations(span, 100, syntax.BuildLineIndex([]byte(file)))
	if len(invs) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(invs))
	}
	if invs[0].Offset != 100 {
		t.Errorf("offset: got %d, want 100", invs[0].Offset)
	}
	if invs[1].Offset != 105 {
		t.Errorf("offset: got %d, want 105", invs[1].Offset)
	}
	if invs[0].Line != 2 || invs[1].Line != 3 {
		t.Errorf("lines: got %d, %d; want 2, 3", invs[0].Line, invs[1].Line)
	}
}
