package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/types"
)

// Text returns the source text spanned by node, or "" for a nil node.
func Text(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(src)
}

// Children returns all direct children of node, named or not.
func Children(node *sitter.Node) []*sitter.Node {
	count := int(node.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, node.Child(i))
	}
	return out
}

// ChildOfKind returns the first direct child with the given kind.
func ChildOfKind(node *sitter.Node, kinds ...string) *sitter.Node {
	for _, child := range Children(node) {
		for _, k := range kinds {
			if child.Type() == k {
				return child
			}
		}
	}
	return nil
}

// fieldText returns the text of the named field child, if any.
func fieldText(node *sitter.Node, field string, src []byte) string {
	return Text(node.ChildByFieldName(field), src)
}

// underscoreVisibility treats a leading underscore as private.
func underscoreVisibility(name string) types.Visibility {
	if strings.HasPrefix(name, "_") {
		return types.Private
	}
	return types.Public
}

func exportVisibility(item, _, _ *sitter.Node, _ []byte) types.Visibility {
	if item.Type() == "export_statement" {
		return types.Public
	}
	return types.Private
}

// bodyMembers returns the children of decl's body field whose kind is in kinds.
func bodyMembers(decl *sitter.Node, bodyKind string, kinds map[string]bool) []*sitter.Node {
	body := decl.ChildByFieldName("body")
	if body == nil || body.Type() != bodyKind {
		return nil
	}
	var out []*sitter.Node
	for _, child := range Children(body) {
		if kinds[child.Type()] {
			out = append(out, child)
		}
	}
	return out
}
