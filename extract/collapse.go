package extract

import (
	"bytes"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/types"
)

// Placeholder replaces a collapsed body.
const Placeholder = "{ ... }"

// span is a half-open byte range of the source.
type span struct {
	start, end int
}

// lineIndex holds the offsets of every newline in a source buffer.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	var idx lineIndex
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

// line returns the 0-indexed line holding offset.
func (li lineIndex) line(offset int) int {
	return sort.SearchInts(li, offset)
}

// CollapseBody renders src[itemStart:itemEnd] with the body range replaced by
// the placeholder. Whitespace between the signature and the body becomes a
// single space.
func CollapseBody(src []byte, itemStart, itemEnd, bodyStart, bodyEnd int) (string, []types.LineMapping) {
	before := strings.TrimRight(string(src[itemStart:bodyStart]), " \t\r\n")
	after := strings.TrimSpace(string(src[bodyEnd:itemEnd]))

	content := before + " " + Placeholder + after
	startLine := bytes.Count(src[:itemStart], []byte("\n")) + 1
	return content, SequentialMappings(content, startLine)
}

// CollapseBlock renders the container node from start with the body of every
// function-like member collapsed. Members named in keep are left intact.
func CollapseBlock(src []byte, start int, block *sitter.Node, spec *lang.Spec, keep map[string]bool) (string, []types.LineMapping) {
	var bodies []span
	collectBodies(block, spec, src, keep, &bodies)
	sort.Slice(bodies, func(i, j int) bool { return bodies[i].start < bodies[j].start })

	end := int(block.EndByte())
	var sb strings.Builder
	collapsed := make([]span, 0, len(bodies))
	pos := start
	for _, b := range bodies {
		before := strings.TrimRight(string(src[pos:b.start]), " \t\r\n")
		sb.WriteString(before)
		sb.WriteString(" ")
		sb.WriteString(Placeholder)
		collapsed = append(collapsed, span{pos + len(before), b.end})
		pos = b.end
	}
	sb.WriteString(string(src[pos:end]))

	content := sb.String()
	return content, blockMappings(src, start, end, collapsed, content)
}

// collectBodies gathers the body ranges of function-like members, descending
// through the language's transparent container kinds.
func collectBodies(node *sitter.Node, spec *lang.Spec, src []byte, keep map[string]bool, out *[]span) {
	for _, child := range lang.Children(node) {
		switch {
		case spec.FunctionKinds[child.Type()]:
			if keep[lang.Text(child.ChildByFieldName("name"), src)] {
				continue
			}
			if body := child.ChildByFieldName("body"); body != nil && spec.BodyKinds[body.Type()] {
				*out = append(*out, span{int(body.StartByte()), int(body.EndByte())})
			}
		case spec.TransparentKinds[child.Type()]:
			collectBodies(child, spec, src, keep, out)
		}
	}
}

// blockMappings pairs rendered lines with the source lines that survive
// collapsing. The line where a collapse begins is kept; the lines after it up
// to and including the body's last line are dropped.
func blockMappings(src []byte, start, end int, collapsed []span, content string) []types.LineMapping {
	idx := newLineIndex(src)
	first, last := idx.line(start), idx.line(end)

	type lineRange struct{ from, to int }
	ranges := make([]lineRange, len(collapsed))
	for i, c := range collapsed {
		ranges[i] = lineRange{idx.line(c.start), idx.line(c.end)}
	}

	var surviving []int
	for ln := first; ln <= last; {
		skipTo := -1
		inside := false
		for _, r := range ranges {
			if r.from == ln && r.to > skipTo {
				skipTo = r.to
			}
			if ln > r.from && ln <= r.to {
				inside = true
			}
		}
		switch {
		case skipTo >= 0:
			surviving = append(surviving, ln)
			ln = skipTo + 1
		case inside:
			ln++
		default:
			surviving = append(surviving, ln)
			ln++
		}
	}

	lines := splitLines(content)
	out := make([]types.LineMapping, len(lines))
	for i, text := range lines {
		ln := first + i + 1
		if i < len(surviving) {
			ln = surviving[i] + 1
		}
		out[i] = types.LineMapping{Line: ln, Text: text}
	}
	return out
}

// SequentialMappings numbers the lines of content from startLine.
func SequentialMappings(content string, startLine int) []types.LineMapping {
	lines := splitLines(content)
	out := make([]types.LineMapping, len(lines))
	for i, text := range lines {
		out[i] = types.LineMapping{Line: startLine + i, Text: text}
	}
	return out
}

// splitLines splits on newlines, dropping a trailing empty line and any
// carriage returns.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
