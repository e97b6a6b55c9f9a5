package lang

import (
	_ "embed"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/arjunmahishi/codeview/types"
)

//go:embed queries/typescript/interface.scm
var tsInterfaceQuery string

//go:embed queries/typescript/expand.scm
var tsExpandQuery string

func init() {
	Register(TypeScript, typeScriptSpec("typescript", "ts", typescript.GetLanguage))
	Register(Tsx, typeScriptSpec("tsx", "tsx", tsx.GetLanguage))
}

func typeScriptSpec(name, ext string, grammar func() *sitter.Language) *Spec {
	return &Spec{
		Name:           name,
		Extensions:     []string{ext},
		Grammar:        grammar,
		InterfaceQuery: tsInterfaceQuery,
		ExpandQuery:    tsExpandQuery,
		Kinds: map[string]types.ItemKind{
			"function_declaration":       types.KindFunction,
			"class_declaration":          types.KindClass,
			"abstract_class_declaration": types.KindClass,
			"interface_declaration":      types.KindTrait,
			"type_alias_declaration":     types.KindTypeAlias,
			"enum_declaration":           types.KindEnum,
			"import_statement":           types.KindUse,
			"lexical_declaration":        types.KindConst,
			"method_definition":          types.KindMethod,
		},
		Wrappers:       map[string]string{"export_statement": "declaration"},
		AttributeKinds: set("decorator"),
		BodyKinds:      set("statement_block"),
		FunctionKinds:  set("method_definition"),
		TransparentKinds: set(
			"class_body", "interface_body", "object_type",
			"class_declaration", "abstract_class_declaration", "interface_declaration",
			"export_statement",
		),
		ItemVisibility:   exportVisibility,
		Members:          tsMembers,
		MemberVisibility: tsMemberVisibility,
		Signature:        tsSignature,
		EnclosingName:    tsEnclosingName,
	}
}

func tsMembers(decl *sitter.Node) []*sitter.Node {
	return bodyMembers(decl, "class_body", set("method_definition", "abstract_method_signature"))
}

// tsMemberVisibility defaults to public when no accessibility modifier is present.
func tsMemberVisibility(member *sitter.Node, src []byte) types.Visibility {
	if mod := ChildOfKind(member, "accessibility_modifier"); mod != nil {
		if Text(mod, src) == "public" {
			return types.Public
		}
		return types.Private
	}
	if strings.HasPrefix(fieldText(member, "name", src), "#") {
		return types.Private
	}
	return types.Public
}

func tsSignature(member *sitter.Node, src []byte) string {
	var parts []string
	for _, child := range Children(member) {
		switch child.Type() {
		case "accessibility_modifier", "override_modifier", "readonly", "static", "async", "abstract", "get", "set":
			parts = append(parts, Text(child, src))
		}
	}
	var sb strings.Builder
	sb.WriteString(fieldText(member, "name", src))
	sb.WriteString(fieldText(member, "type_parameters", src))
	sb.WriteString(fieldText(member, "parameters", src))
	sb.WriteString(fieldText(member, "return_type", src))
	parts = append(parts, sb.String())
	return strings.Join(parts, " ")
}

func tsEnclosingName(node *sitter.Node, src []byte) (string, bool) {
	switch node.Type() {
	case "function_declaration", "method_definition":
		name := fieldText(node, "name", src)
		return name + "()", name != ""
	case "public_field_definition", "class_declaration", "abstract_class_declaration", "interface_declaration":
		name := fieldText(node, "name", src)
		return name, name != ""
	case "lexical_declaration":
		return declaratorName(node, src)
	}
	return "", false
}

func declaratorName(node *sitter.Node, src []byte) (string, bool) {
	decl := ChildOfKind(node, "variable_declarator")
	if decl == nil {
		return "", false
	}
	name := fieldText(decl, "name", src)
	return name, name != ""
}
