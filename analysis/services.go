package analysis

import (
	"regexp"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

// UnknownServiceName is reported when a registration call site carries no
// quoted literal on its line.
const UnknownServiceName = "<unknown>"

var (
	systemServiceHeader = regexp.MustCompile(`extends\s+SystemService\b`)
	quotedLiteral       = regexp.MustCompile(`"([^"]*)"`)
)

// Method names whose call sites register a binder service.
var binderRegistrars = map[string]bool{
	"publishBinderService": true,
	"addService":           true,
}

// DetectSystemService inspects the primary class for the SystemService
// lifecycle shape. The gate is the class header text: no "extends
// SystemService" match means no summary. This is a naming heuristic, not a
// semantic check, so a class extending an unrelated SystemService type
// still matches.
func DetectSystemService(root *syntax.Node, source []byte, summary ClassSummary, decls []MethodDecl, invocations []MethodInvocation) *SystemServiceSummary {
	header := ClassHeader(root, source)
	if header == "" || !systemServiceHeader.MatchString(header) {
		return nil
	}

	svc := &SystemServiceSummary{ClassName: summary.ClassName}
	for _, d := range decls {
		switch d.Name {
		case "onStart":
			if svc.OnStartLine == 0 {
				svc.OnStartLine = d.Line
			}
		case "onBootPhase":
			svc.BootPhaseLine = append(svc.BootPhaseLine, d.Line)
		}
	}

	lines := syntax.BuildLineIndex(source)
	for _, inv := range invocations {
		if !binderRegistrars[inv.Name] {
			continue
		}
		name := UnknownServiceName
		if m := quotedLiteral.FindStringSubmatch(lineText(source, lines, inv.Line)); m != nil {
			name = m[1]
		}
		svc.Services = append(svc.Services, RegisteredService{Name: name, Line: inv.Line})
	}
	return svc
}

// lineText returns the text of the 1-based line, without its trailing break.
func lineText(source []byte, lines syntax.LineIndex, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	start := lines[line-1]
	end := len(source)
	if line < len(lines) {
		end = lines[line] - 1
	}
	if start > end {
		return ""
	}
	return string(source[start:end])
}
