// Package locate resolves symbol names to byte ranges in a parsed document:
// query candidates, attribute-aware start positions and body blocks.
package locate

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

var (
	// ErrNotFound means no candidate carries the requested name.
	ErrNotFound = errors.New("symbol not found")

	// ErrNoBody means the symbol has no block that can be replaced.
	ErrNoBody = errors.New("symbol has no body")
)

// Candidate is an item matched by one of the language queries.
type Candidate struct {
	// Item is the matched @item node. For exported or decorated
	// declarations it is the wrapper.
	Item *sitter.Node

	// Decl is Item with wrappers removed.
	Decl *sitter.Node

	// Name is the @name capture, or the @impl_type capture when the item
	// has no name of its own.
	Name string

	Kind       types.ItemKind
	Classified bool

	// Vis and Body are the optional @vis and @body captures.
	Vis  *sitter.Node
	Body *sitter.Node

	// Start and StartLine include any attribute or decorator chain.
	// StartLine and EndLine are 1-indexed.
	Start     uint32
	StartLine int
	End       uint32
	EndLine   int
}

// EffectiveStart walks back over attribute or decorator siblings of node
// and returns the byte offset and 1-indexed line where the chain begins.
func EffectiveStart(node *sitter.Node, spec *lang.Spec) (uint32, int) {
	start := node
	for {
		prev := start.PrevSibling()
		if prev == nil || !spec.AttributeKinds[prev.Type()] {
			break
		}
		start = prev
	}
	return start.StartByte(), int(start.StartPoint().Row) + 1
}

// Candidates runs the query of the given kind and returns the matched items
// in tree traversal order. A declaration matched both bare and through its
// wrapper is reported once, as the wrapper.
func Candidates(doc *parser.Document, kind parser.QueryKind) ([]Candidate, error) {
	q, err := parser.Compiled(doc.Lang, kind)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, m := range q.Run(doc) {
		item := m.Capture("item")
		if item == nil {
			continue
		}
		c := Candidate{
			Item: item,
			Decl: doc.Spec.Declaration(item),
			Vis:  m.Capture("vis"),
			Body: m.Capture("body"),
			End:  item.EndByte(),
		}
		if name := m.Capture("name"); name != nil {
			c.Name = doc.Text(name)
		} else if implType := m.Capture("impl_type"); implType != nil {
			c.Name = doc.Text(implType)
		}
		c.Kind, c.Classified = doc.Spec.Classify(c.Decl.Type())
		c.Start, c.StartLine = EffectiveStart(item, doc.Spec)
		c.EndLine = int(item.EndPoint().Row) + 1
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Item.StartByte() != out[j].Item.StartByte() {
			return out[i].Item.StartByte() < out[j].Item.StartByte()
		}
		return out[i].Item.EndByte() > out[j].Item.EndByte()
	})

	return dedupe(out), nil
}

type nodeKey struct {
	start, end uint32
	kind, name string
}

func keyOf(c Candidate) nodeKey {
	return nodeKey{c.Decl.StartByte(), c.Decl.EndByte(), c.Decl.Type(), c.Name}
}

func dedupe(cands []Candidate) []Candidate {
	seen := make(map[nodeKey]bool, len(cands))
	out := cands[:0]
	for _, c := range cands {
		k := keyOf(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// Locate finds the first item, in traversal order, named symbol. Names are
// matched exactly, at any depth.
func Locate(doc *parser.Document, symbol string) (Candidate, error) {
	cands, err := Candidates(doc, parser.ExpandQuery)
	if err != nil {
		return Candidate{}, err
	}
	for _, c := range cands {
		if c.Name == symbol {
			return c, nil
		}
	}
	return Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, symbol)
}

// BodyOf returns the body block of a located declaration. The body field is
// tried first; otherwise the direct children are scanned for an accepted
// block kind.
func BodyOf(decl *sitter.Node, spec *lang.Spec) (*sitter.Node, error) {
	if body := decl.ChildByFieldName("body"); body != nil && spec.BodyKinds[body.Type()] {
		return body, nil
	}
	for _, child := range lang.Children(decl) {
		if spec.BodyKinds[child.Type()] {
			return child, nil
		}
	}
	return nil, ErrNoBody
}
