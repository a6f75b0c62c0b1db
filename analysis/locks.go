package analysis

import (
	"regexp"
	"strings"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

const (
	msgBinderInLock = "binder call inside a lock may block other threads"
	msgPostInLock   = "posting/sending inside a lock can invert lock ordering"
	msgNestedLock   = "nested lock blocks detected"
)

var (
	binderCallInLock = regexp.MustCompile(`\b(?:transact|linkToDeath|asBinder|queryLocalInterface)\s*\(`)
	handlerPostLock  = regexp.MustCompile(`\b(?:post|postDelayed|sendMessage|sendMessageAtTime)\s*\(`)
)

// DetectLockHazards scans raw file text for hazardous patterns inside
// synchronized blocks. It is deliberately textual: it has no notion of
// comments or string literals, so hazard-looking text inside either can
// produce a false positive. Each block is tested against three independent
// patterns and can emit up to three warnings.
func DetectLockHazards(source []byte) []ConcurrencyWarning {
	text := string(source)
	lines := syntax.BuildLineIndex(source)

	var out []ConcurrencyWarning
	from := 0
	for {
		rel := strings.Index(text[from:], "synchronized")
		if rel < 0 {
			break
		}
		keyword := from + rel
		from = keyword + len("synchronized")

		open := strings.IndexByte(text[from:], '{')
		if open < 0 {
			break
		}
		open += from
		closing := matchingBrace(text, open)
		if closing < 0 {
			continue
		}

		block := text[open+1 : closing]
		line := lines.LineAt(keyword)
		for _, hazard := range []struct {
			match   func(string) bool
			message string
		}{
			{binderCallInLock.MatchString, msgBinderInLock},
			{handlerPostLock.MatchString, msgPostInLock},
			{func(s string) bool { return strings.Contains(s, "synchronized") }, msgNestedLock},
		} {
			if hazard.match(block) {
				out = append(out, ConcurrencyWarning{
					Start:   keyword,
					End:     closing,
					Line:    line,
					Message: hazard.message,
				})
			}
		}
	}
	return out
}

// matchingBrace returns the index of the brace closing the one at open, or
// -1 when the text ends first.
func matchingBrace(text string, open int) int {
	depth := 1
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
