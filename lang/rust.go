package lang

import (
	_ "embed"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/arjunmahishi/codeview/types"
)

//go:embed queries/rust/interface.scm
var rustInterfaceQuery string

//go:embed queries/rust/expand.scm
var rustExpandQuery string

func init() {
	Register(Rust, &Spec{
		Name:           "rust",
		Extensions:     []string{"rs"},
		Grammar:        rust.GetLanguage,
		InterfaceQuery: rustInterfaceQuery,
		ExpandQuery:    rustExpandQuery,
		Kinds: map[string]types.ItemKind{
			"function_item":    types.KindFunction,
			"struct_item":      types.KindStruct,
			"enum_item":        types.KindEnum,
			"trait_item":       types.KindTrait,
			"impl_item":        types.KindImpl,
			"mod_item":         types.KindMod,
			"use_declaration":  types.KindUse,
			"const_item":       types.KindConst,
			"static_item":      types.KindStatic,
			"type_item":        types.KindTypeAlias,
			"macro_definition": types.KindMacroDef,
		},
		Wrappers:         map[string]string{},
		AttributeKinds:   set("attribute_item"),
		BodyKinds:        set("block"),
		FunctionKinds:    set("function_item"),
		TransparentKinds: set("declaration_list"),
		ImplName:         rustImplName,
		ItemVisibility:   rustItemVisibility,
		Members:          rustMembers,
		MemberVisibility: rustMemberVisibility,
		Signature:        rustSignature,
		EnclosingName:    rustEnclosingName,
	})
}

// RustVisibility normalizes a visibility_modifier's text.
func RustVisibility(text string) types.Visibility {
	switch {
	case strings.Contains(text, "crate"):
		return types.Crate
	case strings.Contains(text, "super"):
		return types.Super
	case strings.HasPrefix(text, "pub"):
		return types.Public
	}
	return types.Private
}

func rustItemVisibility(_, decl, vis *sitter.Node, src []byte) types.Visibility {
	if vis != nil {
		return RustVisibility(Text(vis, src))
	}
	return rustMemberVisibility(decl, src)
}

func rustMemberVisibility(member *sitter.Node, src []byte) types.Visibility {
	if mod := ChildOfKind(member, "visibility_modifier"); mod != nil {
		return RustVisibility(Text(mod, src))
	}
	return types.Private
}

// rustImplName prefers the trait name of "impl Trait for Type".
func rustImplName(decl *sitter.Node, src []byte) string {
	if name := fieldText(decl, "trait", src); name != "" {
		return name
	}
	return fieldText(decl, "type", src)
}

func rustMembers(decl *sitter.Node) []*sitter.Node {
	return bodyMembers(decl, "declaration_list", set("function_item", "function_signature_item"))
}

func rustSignature(fn *sitter.Node, src []byte) string {
	var parts []string
	for _, child := range Children(fn) {
		switch child.Type() {
		case "visibility_modifier", "function_modifiers":
			parts = append(parts, Text(child, src))
		}
	}
	parts = append(parts, "fn "+fieldText(fn, "name", src)+
		fieldText(fn, "type_parameters", src)+fieldText(fn, "parameters", src))
	if ret := fieldText(fn, "return_type", src); ret != "" {
		parts = append(parts, "->", ret)
	}
	if where := ChildOfKind(fn, "where_clause"); where != nil {
		parts = append(parts, Text(where, src))
	}
	return strings.Join(parts, " ")
}

func rustEnclosingName(node *sitter.Node, src []byte) (string, bool) {
	switch node.Type() {
	case "function_item", "const_item", "static_item", "mod_item", "macro_definition",
		"struct_item", "enum_item", "trait_item", "type_item":
		name := fieldText(node, "name", src)
		return name, name != ""
	case "impl_item":
		name := fieldText(node, "type", src)
		if name == "" {
			return "", false
		}
		return "impl " + name, true
	}
	return "", false
}
