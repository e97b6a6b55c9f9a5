package lang

import (
	_ "embed"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/arjunmahishi/codeview/types"
)

//go:embed queries/python/interface.scm
var pyInterfaceQuery string

//go:embed queries/python/expand.scm
var pyExpandQuery string

func init() {
	Register(Python, &Spec{
		Name:           "python",
		Extensions:     []string{"py"},
		Grammar:        python.GetLanguage,
		InterfaceQuery: pyInterfaceQuery,
		ExpandQuery:    pyExpandQuery,
		Kinds: map[string]types.ItemKind{
			"function_definition":   types.KindFunction,
			"class_definition":      types.KindClass,
			"import_statement":      types.KindUse,
			"import_from_statement": types.KindUse,
			"expression_statement":  types.KindConst,
		},
		// Decorators are children of decorated_definition, not siblings.
		Wrappers:         map[string]string{"decorated_definition": "definition"},
		AttributeKinds:   set(),
		BodyKinds:        set("block"),
		FunctionKinds:    set("function_definition"),
		TransparentKinds: set("block", "decorated_definition", "class_definition"),
		IndentedBodies:   true,
		ItemVisibility: func(_, _, _ *sitter.Node, _ []byte) types.Visibility {
			return types.Private
		},
		Members:          pyMembers,
		MemberVisibility: pyMemberVisibility,
		Signature:        pySignature,
		EnclosingName:    pyEnclosingName,
	})
}

func pyDefinition(node *sitter.Node) *sitter.Node {
	if node.Type() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

func pyMembers(decl *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range bodyMembers(decl, "block", set("function_definition", "decorated_definition")) {
		if pyDefinition(child).Type() == "function_definition" {
			out = append(out, child)
		}
	}
	return out
}

func pyMemberVisibility(member *sitter.Node, src []byte) types.Visibility {
	return underscoreVisibility(fieldText(pyDefinition(member), "name", src))
}

func pySignature(member *sitter.Node, src []byte) string {
	def := pyDefinition(member)
	sig := "def " + fieldText(def, "name", src) + fieldText(def, "parameters", src)
	if ret := fieldText(def, "return_type", src); ret != "" {
		sig += " -> " + ret
	}
	return sig
}

func pyEnclosingName(node *sitter.Node, src []byte) (string, bool) {
	switch node.Type() {
	case "function_definition":
		name := fieldText(node, "name", src)
		return name + "()", name != ""
	case "class_definition":
		name := fieldText(node, "name", src)
		return name, name != ""
	}
	return "", false
}
