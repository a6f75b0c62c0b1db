// Package treesitter implements the syntax.Parser contract on top of the
// tree-sitter Java grammar. It converts the tree-sitter CST into the
// engine's named-slot form, normalizing node kinds to the vocabulary the
// analysis package searches for.
package treesitter

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
)

// nodeNames maps tree-sitter node kinds to the engine's grammar vocabulary.
// Kinds not listed here pass through under their tree-sitter name.
var nodeNames = map[string]string{
	"program":                 "ordinaryCompilationUnit",
	"package_declaration":     "packageDeclaration",
	"import_declaration":      "importDeclaration",
	"class_declaration":       "normalClassDeclaration",
	"class_body":              "classBody",
	"field_declaration":       "fieldDeclaration",
	"variable_declarator":     "variableDeclarator",
	"method_declaration":      "methodDeclaration",
	"constructor_declaration": "constructorDeclaration",
	"formal_parameters":       "formalParameterList",
	"formal_parameter":        "formalParameter",
	"spread_parameter":        "variableArityParameter",
	"receiver_parameter":      "receiverParameter",
	"method_invocation":       "methodInvocation",
	"modifiers":               "modifiers",
}

// typeNames maps tree-sitter type-node kinds to the alternative type-node
// names the summarizer tries. Leaf kinds get wrapped in a synthetic node so
// the type is always node-shaped.
var typeNames = map[string]string{
	"generic_type":           "unannReferenceType",
	"array_type":             "unannReferenceType",
	"scoped_type_identifier": "unannReferenceType",
	"type_identifier":        "unannClassType",
	"integral_type":          "unannPrimitiveType",
	"floating_point_type":    "unannPrimitiveType",
	"boolean_type":           "unannPrimitiveType",
}

// Parser parses Java source with tree-sitter. Not safe for concurrent use;
// each goroutine should own its own instance.
type Parser struct {
	inner *sitter.Parser
}

func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{inner: p}
}

// Parse converts source into the engine's tree form. Grammar-level errors
// (ERROR or MISSING nodes anywhere in the tree) are reported as a
// *syntax.ParseError; tree-sitter itself recovers from them, but the
// analysis contract wants malformed input rejected, not half-analyzed.
func (p *Parser) Parse(source []byte) (*syntax.Node, error) {
	tree, err := p.inner.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &syntax.ParseError{Message: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &syntax.ParseError{Message: "no parse tree"}
	}
	if root.HasError() {
		return nil, &syntax.ParseError{
			Message: "syntax error",
			Offset:  firstErrorOffset(root),
		}
	}
	return convert(root, source), nil
}

func firstErrorOffset(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartByte())
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorOffset(child)
		}
	}
	return int(n.StartByte())
}

func convert(n *sitter.Node, source []byte) *syntax.Node {
	kind := n.Type()
	out := syntax.NewNode(mappedName(kind))

	// Grouped under a synthetic methodDeclarator: the name and parameter
	// list of a method or constructor, mirroring the grammar vocabulary the
	// summarizer expects.
	var declarator *syntax.Node
	isMethod := kind == "method_declaration" || kind == "constructor_declaration"

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		field := n.FieldNameForChild(i)

		switch {
		case isMethod && field == "name":
			declarator = syntax.NewNode("methodDeclarator")
			out.AddNode("methodDeclarator", declarator)
			declarator.AddToken("Identifier", tokenOf(child, source))
		case isMethod && field == "parameters":
			params := convert(child, source)
			if declarator == nil {
				declarator = syntax.NewNode("methodDeclarator")
				out.AddNode("methodDeclarator", declarator)
			}
			declarator.AddNode(params.Name, params)
		case isMethod && field == "body":
			body := convert(child, source)
			body.Name = "methodBody"
			out.AddNode("methodBody", body)
		case kind == "class_declaration" && field == "name":
			ident := syntax.NewNode("typeIdentifier")
			ident.AddToken("Identifier", tokenOf(child, source))
			out.AddNode("typeIdentifier", ident)
		case kind == "variable_declarator" && field == "name":
			id := syntax.NewNode("variableDeclaratorId")
			id.AddToken("Identifier", tokenOf(child, source))
			out.AddNode("variableDeclaratorId", id)
		case field == "type" && typeNames[child.Type()] != "":
			out.AddNode(typeNames[child.Type()], convertType(child, source))
		default:
			addChild(out, child, source)
		}
	}
	return out
}

// convertType normalizes a type node. Leaf kinds (type_identifier, the
// primitive types) become a wrapper node holding the literal token.
func convertType(n *sitter.Node, source []byte) *syntax.Node {
	name := typeNames[n.Type()]
	if int(n.ChildCount()) == 0 {
		wrapper := syntax.NewNode(name)
		wrapper.AddToken(n.Type(), tokenOf(n, source))
		return wrapper
	}
	converted := convert(n, source)
	converted.Name = name
	return converted
}

func addChild(parent *syntax.Node, child *sitter.Node, source []byte) {
	if int(child.ChildCount()) == 0 {
		parent.AddToken(child.Type(), tokenOf(child, source))
		return
	}
	converted := convert(child, source)
	parent.AddNode(converted.Name, converted)
}

func mappedName(kind string) string {
	if mapped, ok := nodeNames[kind]; ok {
		return mapped
	}
	return kind
}

func tokenOf(n *sitter.Node, source []byte) *syntax.Token {
	start := int(n.StartByte())
	end := int(n.EndByte())
	if end > len(source) {
		end = len(source)
	}
	image := ""
	if start < end {
		image = string(source[start:end])
	}
	if end <= start {
		return syntax.NewCharToken(image, start)
	}
	return syntax.NewToken(image, start, end-1)
}
