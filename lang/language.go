// Package lang describes the supported source languages: grammars, query
// text and the per-language tables the extractor and editor consult.
package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/types"
)

// Language is one of the supported source languages.
type Language int

const (
	Rust Language = iota
	TypeScript
	Tsx
	JavaScript
	Jsx
	Python
)

// All lists every supported language.
var All = []Language{Rust, TypeScript, Tsx, JavaScript, Jsx, Python}

func (l Language) String() string {
	switch l {
	case Rust:
		return "rust"
	case TypeScript:
		return "typescript"
	case Tsx:
		return "tsx"
	case JavaScript:
		return "javascript"
	case Jsx:
		return "jsx"
	case Python:
		return "python"
	}
	return fmt.Sprintf("language(%d)", int(l))
}

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrNoExtension          = errors.New("no file extension found for path")
)

// Spec is the capability table for a language.
type Spec struct {
	// Name is the language identifier (e.g. "rust").
	Name string

	// Extensions lists file extensions without the leading dot.
	Extensions []string

	// Grammar returns the tree-sitter grammar.
	Grammar func() *sitter.Language

	// InterfaceQuery matches top-level items. ExpandQuery matches named
	// items at any depth. Both expose @item and @name (or @impl_type).
	InterfaceQuery string
	ExpandQuery    string

	// Kinds maps declaration node kinds onto the item taxonomy.
	Kinds map[string]types.ItemKind

	// Wrappers maps wrapper node kinds (export statements, decorated
	// definitions) to the field holding the wrapped declaration.
	Wrappers map[string]string

	// AttributeKinds are sibling kinds that belong to the following item.
	AttributeKinds map[string]bool

	// BodyKinds are node kinds accepted as a replaceable body block.
	BodyKinds map[string]bool

	// FunctionKinds are members whose body is collapsed in block views.
	FunctionKinds map[string]bool

	// TransparentKinds are descended into when collecting member bodies.
	TransparentKinds map[string]bool

	// IndentedBodies is set for languages whose blocks are delimited by
	// indentation rather than braces.
	IndentedBodies bool

	// ImplName names an item that has no @name capture.
	ImplName func(decl *sitter.Node, src []byte) string

	// ItemVisibility computes the visibility of a top-level item. vis is
	// the @vis capture and may be nil.
	ItemVisibility func(item, decl, vis *sitter.Node, src []byte) types.Visibility

	// Members lists the method nodes of a container declaration.
	Members func(decl *sitter.Node) []*sitter.Node

	// MemberVisibility computes the visibility of a container member.
	MemberVisibility func(member *sitter.Node, src []byte) types.Visibility

	// Signature renders a one-line signature for a container member.
	Signature func(member *sitter.Node, src []byte) string

	// EnclosingName names a node for search context, or returns false.
	EnclosingName func(node *sitter.Node, src []byte) (string, bool)
}

// Classify maps a node kind onto the item taxonomy.
func (s *Spec) Classify(kind string) (types.ItemKind, bool) {
	k, ok := s.Kinds[kind]
	return k, ok
}

// Declaration unwraps export and decorator wrappers down to the declaration
// node. Nodes that are not wrappers are returned unchanged.
func (s *Spec) Declaration(node *sitter.Node) *sitter.Node {
	for node != nil {
		field, ok := s.Wrappers[node.Type()]
		if !ok {
			return node
		}
		inner := node.ChildByFieldName(field)
		if inner == nil {
			inner = firstClassifiedChild(s, node)
		}
		if inner == nil {
			return node
		}
		node = inner
	}
	return node
}

func firstClassifiedChild(s *Spec, node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if _, ok := s.Kinds[child.Type()]; ok {
			return child
		}
	}
	return nil
}

// registry holds all registered languages.
var registry = make(map[Language]*Spec)

// Register adds a language to the registry.
// This is called from init() functions in the language files.
func Register(l Language, spec *Spec) {
	registry[l] = spec
}

// Get returns the spec for a language, or nil if not registered.
func Get(l Language) *Spec {
	return registry[l]
}

// List returns all registered language names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for _, spec := range registry {
		names = append(names, spec.Name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds a language by file extension (with or without dot).
func ByExtension(ext string) (Language, bool) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, l := range All {
		spec := registry[l]
		if spec == nil {
			continue
		}
		for _, e := range spec.Extensions {
			if e == ext {
				return l, true
			}
		}
	}
	return 0, false
}

// Detect picks the language for a path from its extension.
func Detect(path string) (Language, error) {
	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return 0, fmt.Errorf("%w: %s", ErrNoExtension, path)
	}
	l, ok := ByExtension(ext)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedExtension, strings.TrimPrefix(ext, "."))
	}
	return l, nil
}

// IsSupported reports whether path has a supported extension.
func IsSupported(path string) bool {
	_, err := Detect(path)
	return err == nil
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
