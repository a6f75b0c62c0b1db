package analysis

import (
	"sort"
	"strings"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

// Node names the summarizer looks for in the tree. The grammar adapter is
// responsible for producing this vocabulary.
const (
	nodeClassDecl      = "normalClassDeclaration"
	nodeClassBody      = "classBody"
	nodeTypeIdentifier = "typeIdentifier"
	nodePackageDecl    = "packageDeclaration"
	nodeFieldDecl      = "fieldDeclaration"
	nodeDeclaratorID   = "variableDeclaratorId"
	nodeMethodDecl     = "methodDeclaration"
	nodeDeclarator     = "methodDeclarator"
	nodeMethodBody     = "methodBody"
)

// Alternative names for a field's declared-type node, tried in order. The
// first one present under the declaration supplies the shared type text.
var typeNodeNames = []string{
	"unannType",
	"unannReferenceType",
	"unannClassType",
	"unannPrimitiveType",
}

// Names of parameter nodes that count toward a method's arity.
var paramNodeNames = []string{
	"formalParameter",
	"variableArityParameter",
	"receiverParameter",
}

// Summarize extracts the structural overview of one file: the primary class
// (or fallbackName when the tree has no class declaration), its package,
// fields, and methods, plus the full method declaration list used by the
// call-graph builder. It never fails: a declaration missing an expected
// sub-node is skipped, not reported.
func Summarize(root *syntax.Node, source []byte, fallbackName string) (ClassSummary, []MethodDecl) {
	summary := ClassSummary{ClassName: fallbackName}
	if root == nil {
		return summary, nil
	}
	lines := syntax.BuildLineIndex(source)

	classes := syntax.FindAllNodes(root, nodeClassDecl)
	if len(classes) > 0 {
		if name := classDeclName(classes[0], source); name != "" {
			summary.ClassName = name
		}
		for _, c := range classes[1:] {
			name := classDeclName(c, source)
			if name != "" && name != summary.ClassName {
				summary.InnerClasses = append(summary.InnerClasses, name)
			}
		}
	}

	if pkg := syntax.FindFirstNode(root, nodePackageDecl); pkg != nil {
		summary.PackageName = packageName(pkg, source)
	}

	for _, field := range syntax.FindAllNodes(root, nodeFieldDecl) {
		summary.Fields = append(summary.Fields, fieldSummaries(field, source, lines)...)
	}

	var decls []MethodDecl
	for _, method := range syntax.FindAllNodes(root, nodeMethodDecl) {
		decl, ok := methodDecl(method, source, lines)
		if !ok {
			continue
		}
		decls = append(decls, decl)
		summary.Methods = append(summary.Methods, decl.MethodSummary)
	}

	return summary, decls
}

// ClassHeader returns the primary class declaration's header text: everything
// from the declaration's first token up to its body. Empty when the tree has
// no class declaration.
func ClassHeader(root *syntax.Node, source []byte) string {
	class := syntax.FindFirstNode(root, nodeClassDecl)
	if class == nil {
		return ""
	}
	tokens := sortedTokens(class)
	if len(tokens) == 0 {
		return ""
	}
	start := tokens[0].Start
	end := tokens[len(tokens)-1].End + 1
	if body := syntax.FindFirstNode(class, nodeClassBody); body != nil {
		if bodyTokens := sortedTokens(body); len(bodyTokens) > 0 {
			end = bodyTokens[0].Start
		}
	}
	if start < 0 || end > len(source) || start >= end {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}

func classDeclName(class *syntax.Node, source []byte) string {
	if ident := syntax.FindFirstNode(class, nodeTypeIdentifier); ident != nil {
		return syntax.TokensToText(syntax.CollectTokens(ident), source)
	}
	// No typeIdentifier node: fall back to the token after the class keyword.
	tokens := sortedTokens(class)
	for i, tok := range tokens {
		if tok.Image == "class" && i+1 < len(tokens) && isIdentToken(tokens[i+1].Image) {
			return tokens[i+1].Image
		}
	}
	return ""
}

func packageName(pkg *syntax.Node, source []byte) string {
	text := syntax.TokensToText(syntax.CollectTokens(pkg), source)
	text = strings.TrimPrefix(text, "package")
	text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	return strings.TrimSpace(text)
}

// fieldSummaries expands one field declaration into one summary per declared
// variable. All variables share the declaration's type text, visibility and
// static flag.
func fieldSummaries(field *syntax.Node, source []byte, lines syntax.LineIndex) []FieldSummary {
	tokens := sortedTokens(field)
	visibility := visibilityOf(tokens)
	static := hasToken(tokens, "static")

	var typeText string
	for _, name := range typeNodeNames {
		if typeNode := syntax.FindFirstNode(field, name); typeNode != nil {
			typeText = syntax.TokensToText(syntax.CollectTokens(typeNode), source)
			break
		}
	}

	var out []FieldSummary
	for _, id := range syntax.FindAllNodes(field, nodeDeclaratorID) {
		idTokens := sortedTokens(id)
		if len(idTokens) == 0 || !isIdentToken(idTokens[0].Image) {
			continue
		}
		out = append(out, FieldSummary{
			Name:       idTokens[0].Image,
			Type:       typeText,
			Visibility: visibility,
			IsStatic:   static,
			Line:       lines.LineAt(idTokens[0].Start),
		})
	}
	return out
}

func methodDecl(method *syntax.Node, source []byte, lines syntax.LineIndex) (MethodDecl, bool) {
	declarator := syntax.FindFirstNode(method, nodeDeclarator)
	if declarator == nil {
		return MethodDecl{}, false
	}

	var name string
	for _, tok := range sortedTokens(declarator) {
		if tok.Image == "(" {
			break
		}
		if isIdentToken(tok.Image) {
			name = tok.Image
			break
		}
	}
	if name == "" {
		return MethodDecl{}, false
	}

	paramCount := 0
	for _, paramName := range paramNodeNames {
		paramCount += len(syntax.FindAllNodes(declarator, paramName))
	}

	tokens := sortedTokens(method)
	if len(tokens) == 0 {
		return MethodDecl{}, false
	}
	start := tokens[0].Start
	end := tokens[len(tokens)-1].End

	decl := MethodDecl{
		MethodSummary: MethodSummary{
			Name:       name,
			ParamCount: paramCount,
			Visibility: visibilityOf(tokens),
			IsStatic:   hasToken(tokens, "static"),
			Line:       lines.LineAt(start),
		},
		Start: start,
		End:   end,
	}

	if body := syntax.FindFirstNode(method, nodeMethodBody); body != nil {
		if bodyTokens := sortedTokens(body); len(bodyTokens) > 0 {
			decl.HasBody = true
			decl.BodyStart = bodyTokens[0].Start
			decl.BodyEnd = bodyTokens[len(bodyTokens)-1].End
		}
	}

	decl.Signature = signatureText(source, decl)
	return decl, true
}

// signatureText is the declaration header: the full declaration with the
// body (or trailing semicolon) stripped.
func signatureText(source []byte, decl MethodDecl) string {
	end := decl.End + 1
	if decl.HasBody {
		end = decl.BodyStart
	}
	if decl.Start < 0 || end > len(source) || decl.Start >= end {
		return ""
	}
	text := strings.TrimSpace(string(source[decl.Start:end]))
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text)
}

// visibilityOf scans the declaration's tokens in source order and returns the
// first access modifier found, defaulting to package visibility.
func visibilityOf(tokens []*syntax.Token) Visibility {
	for _, tok := range tokens {
		switch tok.Image {
		case "public":
			return VisibilityPublic
		case "private":
			return VisibilityPrivate
		case "protected":
			return VisibilityProtected
		}
	}
	return VisibilityPackage
}

func hasToken(tokens []*syntax.Token, image string) bool {
	for _, tok := range tokens {
		if tok.Image == image {
			return true
		}
	}
	return false
}

func isIdentToken(image string) bool {
	if image == "" {
		return false
	}
	c := image[0]
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func sortedTokens(n *syntax.Node) []*syntax.Token {
	tokens := syntax.CollectTokens(n)
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Start < tokens[j].Start
	})
	return tokens
}
