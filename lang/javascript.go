package lang

import (
	_ "embed"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/arjunmahishi/codeview/types"
)

//go:embed queries/javascript/interface.scm
var jsInterfaceQuery string

//go:embed queries/javascript/expand.scm
var jsExpandQuery string

func init() {
	Register(JavaScript, javaScriptSpec("javascript", "js"))
	Register(Jsx, javaScriptSpec("jsx", "jsx"))
}

// javaScriptSpec builds the spec shared by .js and .jsx; the grammar
// handles JSX syntax natively.
func javaScriptSpec(name, ext string) *Spec {
	return &Spec{
		Name:           name,
		Extensions:     []string{ext},
		Grammar:        javascript.GetLanguage,
		InterfaceQuery: jsInterfaceQuery,
		ExpandQuery:    jsExpandQuery,
		Kinds: map[string]types.ItemKind{
			"function_declaration": types.KindFunction,
			"class_declaration":    types.KindClass,
			"import_statement":     types.KindUse,
			"lexical_declaration":  types.KindConst,
			"variable_declaration": types.KindConst,
			"method_definition":    types.KindMethod,
		},
		Wrappers:         map[string]string{"export_statement": "declaration"},
		AttributeKinds:   set("decorator"),
		BodyKinds:        set("statement_block"),
		FunctionKinds:    set("method_definition"),
		TransparentKinds: set("class_body", "class_declaration", "export_statement"),
		ItemVisibility:   exportVisibility,
		Members:          jsMembers,
		MemberVisibility: func(*sitter.Node, []byte) types.Visibility { return types.Public },
		Signature:        jsSignature,
		EnclosingName:    jsEnclosingName,
	}
}

func jsMembers(decl *sitter.Node) []*sitter.Node {
	return bodyMembers(decl, "class_body", set("method_definition"))
}

func jsSignature(member *sitter.Node, src []byte) string {
	var parts []string
	for _, child := range Children(member) {
		switch child.Type() {
		case "static", "async", "get", "set":
			parts = append(parts, Text(child, src))
		}
	}
	parts = append(parts, fieldText(member, "name", src)+fieldText(member, "parameters", src))
	return strings.Join(parts, " ")
}

func jsEnclosingName(node *sitter.Node, src []byte) (string, bool) {
	switch node.Type() {
	case "function_declaration", "method_definition":
		name := fieldText(node, "name", src)
		return name + "()", name != ""
	case "class_declaration":
		name := fieldText(node, "name", src)
		return name, name != ""
	case "lexical_declaration", "variable_declaration":
		return declaratorName(node, src)
	}
	return "", false
}
