// Package extract builds structural views of a parsed document: the
// interface view with collapsed bodies, expanded symbols and container
// signatures.
package extract

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/locate"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

// Interface returns the top-level items of doc with function bodies
// collapsed. Containers are rendered with every member body collapsed and
// their methods are also reported as separate Method items. Items are
// ordered by start line; when two items share a line the first one wins.
func Interface(doc *parser.Document) ([]types.Item, error) {
	cands, err := locate.Candidates(doc, parser.InterfaceQuery)
	if err != nil {
		return nil, err
	}

	spec, src := doc.Spec, doc.Source
	byLine := make(map[int]types.Item)
	add := func(item types.Item) {
		if _, ok := byLine[item.LineStart]; !ok {
			byLine[item.LineStart] = item
		}
	}

	for _, c := range cands {
		if !c.Classified {
			continue
		}

		item := types.Item{
			Kind:       c.Kind,
			Name:       c.Name,
			Visibility: spec.ItemVisibility(c.Item, c.Decl, c.Vis, src),
			LineStart:  c.StartLine,
			LineEnd:    c.EndLine,
		}
		if c.Kind == types.KindImpl && spec.ImplName != nil {
			item.Name = spec.ImplName(c.Decl, src)
		}

		switch {
		case c.Kind.IsContainer():
			item.Content, item.LineMappings = CollapseBlock(src, int(c.Start), c.Item, spec, nil)
		case c.Body != nil:
			item.Content, item.LineMappings = CollapseBody(src, int(c.Start), int(c.End), int(c.Body.StartByte()), int(c.Body.EndByte()))
			item.Body = Placeholder
		default:
			item.Content = string(src[c.Start:c.End])
			item.LineMappings = SequentialMappings(item.Content, c.StartLine)
		}
		add(item)

		if c.Kind.IsContainer() && spec.Members != nil {
			for _, m := range spec.Members(c.Decl) {
				add(memberItem(doc, m))
			}
		}
	}

	items := make([]types.Item, 0, len(byLine))
	for _, item := range byLine {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LineStart < items[j].LineStart })
	return items, nil
}

// memberItem renders one method of a container with its body collapsed.
func memberItem(doc *parser.Document, member *sitter.Node) types.Item {
	spec, src := doc.Spec, doc.Source
	def := spec.Declaration(member)
	start, startLine := locate.EffectiveStart(member, spec)
	end := int(member.EndByte())

	item := types.Item{
		Kind:       types.KindMethod,
		Name:       lang.Text(def.ChildByFieldName("name"), src),
		Visibility: spec.MemberVisibility(member, src),
		LineStart:  startLine,
		LineEnd:    int(member.EndPoint().Row) + 1,
		Signature:  spec.Signature(member, src),
	}

	if body, err := locate.BodyOf(def, spec); err == nil {
		item.Content, item.LineMappings = CollapseBody(src, int(start), end, int(body.StartByte()), int(body.EndByte()))
		item.Body = Placeholder
	} else {
		item.Content = string(src[start:end])
		item.LineMappings = SequentialMappings(item.Content, startLine)
	}
	return item
}

// Expand returns every item named in symbols, at any depth, with its full
// text from the effective start. Items are ordered by start line.
func Expand(doc *parser.Document, symbols []string) ([]types.Item, error) {
	cands, err := locate.Candidates(doc, parser.ExpandQuery)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}

	var items []types.Item
	for _, c := range cands {
		if !c.Classified || !want[c.Name] {
			continue
		}
		items = append(items, fullItem(doc, c))
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].LineStart < items[j].LineStart })
	return items, nil
}

// Signatures renders the container named name with member bodies collapsed,
// except members listed in keep. Containers win over other items sharing the
// name, so "impl Foo" is chosen over "struct Foo". A symbol that is not a
// container is returned in full. It returns nil when no item is named name.
func Signatures(doc *parser.Document, name string, keep []string) ([]types.Item, error) {
	cands, err := locate.Candidates(doc, parser.ExpandQuery)
	if err != nil {
		return nil, err
	}

	var fallback *locate.Candidate
	for i, c := range cands {
		if !c.Classified || c.Name != name {
			continue
		}
		if !c.Kind.IsContainer() {
			if fallback == nil {
				fallback = &cands[i]
			}
			continue
		}

		keepSet := make(map[string]bool, len(keep))
		for _, k := range keep {
			keepSet[k] = true
		}

		item := types.Item{
			Kind:       c.Kind,
			Name:       c.Name,
			Visibility: visibility(doc, c),
			LineStart:  c.StartLine,
			LineEnd:    c.EndLine,
		}
		item.Content, item.LineMappings = CollapseBlock(doc.Source, int(c.Start), c.Item, doc.Spec, keepSet)
		return []types.Item{item}, nil
	}
	if fallback != nil {
		return []types.Item{fullItem(doc, *fallback)}, nil
	}
	return nil, nil
}

func fullItem(doc *parser.Document, c locate.Candidate) types.Item {
	content := string(doc.Source[c.Start:c.End])
	return types.Item{
		Kind:         c.Kind,
		Name:         c.Name,
		Visibility:   visibility(doc, c),
		LineStart:    c.StartLine,
		LineEnd:      c.EndLine,
		Content:      content,
		LineMappings: SequentialMappings(content, c.StartLine),
	}
}

// visibility applies member rules to function-like declarations nested in
// another declaration and item rules to everything else.
func visibility(doc *parser.Document, c locate.Candidate) types.Visibility {
	spec := doc.Spec
	if spec.FunctionKinds[c.Decl.Type()] && nested(c.Item) && spec.MemberVisibility != nil {
		return spec.MemberVisibility(c.Item, doc.Source)
	}
	return spec.ItemVisibility(c.Item, c.Decl, c.Vis, doc.Source)
}

// nested reports whether node sits below the root's direct children.
func nested(node *sitter.Node) bool {
	parent := node.Parent()
	return parent != nil && parent.Parent() != nil
}
