package analysis

import (
	"regexp"
	"strings"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

// callSitePattern matches an identifier immediately followed by an opening
// parenthesis, with optional whitespace between them.
var callSitePattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*\s*\(`)

// Keywords that can legally precede "(" without being a method call.
var callKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"synchronized": true, "new": true, "return": true, "throw": true,
	"try": true, "else": true, "do": true, "case": true, "super": true,
	"this": true, "assert": true,
}

// ScanInvocations finds call-like sites inside span, which starts at base in
// the original file. Candidates whose closing parenthesis cannot be located
// are dropped. Lines are resolved against the whole-file index.
func ScanInvocations(span string, base int, lines syntax.LineIndex) []MethodInvocation {
	var out []MethodInvocation
	for _, loc := range callSitePattern.FindAllStringIndex(span, -1) {
		open := loc[1] - 1
		name := strings.TrimRight(span[loc[0]:open], " \t\r\n")
		if callKeywords[name] {
			continue
		}
		closing := matchingParen(span, open)
		if closing < 0 {
			continue
		}
		out = append(out, MethodInvocation{
			Name:     name,
			ArgCount: countArguments(span[open+1 : closing]),
			Offset:   base + loc[0],
			Line:     lines.LineAt(base + loc[0]),
		})
	}
	return out
}

// matchingParen returns the index of the parenthesis closing the one at
// open, or -1 if the span ends first. Parentheses inside single- or
// double-quoted literals are ignored, and a backslash inside a literal
// skips the next character.
func matchingParen(span string, open int) int {
	depth := 1
	var quote byte
	for i := open + 1; i < len(span); i++ {
		c := span[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// countArguments counts top-level commas in an argument list: commas nested
// in parentheses, angle brackets, square brackets, or braces (array
// initializers) do not count. Each bracket kind keeps its own depth, clamped
// at zero so unbalanced input cannot drag the count negative. Empty text is
// zero arguments.
func countArguments(args string) int {
	if strings.TrimSpace(args) == "" {
		return 0
	}
	count := 1
	paren, angle, square, brace := 0, 0, 0, 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '(':
			paren++
		case ')':
			if paren > 0 {
				paren--
			}
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		case '[':
			square++
		case ']':
			if square > 0 {
				square--
			}
		case '{':
			brace++
		case '}':
			if brace > 0 {
				brace--
			}
		case ',':
			if paren == 0 && angle == 0 && square == 0 && brace == 0 {
				count++
			}
		}
	}
	return count
}
