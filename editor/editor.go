// Package editor performs symbol-precise edits on source text. Every edit is
// resolved against the unmodified source, spliced into a copy and accepted
// only if the result parses without errors.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/locate"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

var (
	// ErrNotFound is returned when no symbol has the requested name.
	ErrNotFound = locate.ErrNotFound
	// ErrNoBody is returned by replace-body on a symbol without a block body.
	ErrNoBody = locate.ErrNoBody
	// ErrOverlappingEdits is returned when two edits of a batch touch the
	// same bytes.
	ErrOverlappingEdits = errors.New("overlapping edits")
	// ErrMissingContent is returned for a replace or replace-body edit
	// without content.
	ErrMissingContent = errors.New("missing content")
	// ErrInvalidSyntax is returned when the edited source no longer parses.
	ErrInvalidSyntax = errors.New("edit resulted in invalid syntax")
	// ErrUnknownAction is returned for an action the editor does not know.
	ErrUnknownAction = errors.New("unknown edit action")
)

// resolvedEdit is a byte range of the original source and its replacement.
type resolvedEdit struct {
	start, end int
	text       string
	result     types.EditResult
}

// Replace swaps the whole symbol, attributes included, for content.
func Replace(source string, l lang.Language, symbol, content string) (string, error) {
	return single(source, l, types.EditDescriptor{Symbol: symbol, Action: types.ActionReplace, Content: content})
}

// Delete removes the symbol, its attributes and one trailing newline.
func Delete(source string, l lang.Language, symbol string) (string, error) {
	return single(source, l, types.EditDescriptor{Symbol: symbol, Action: types.ActionDelete})
}

// ReplaceBody swaps only the body block of the symbol. body is re-indented
// to one level below the line that opens the block.
func ReplaceBody(source string, l lang.Language, symbol, body string) (string, error) {
	return single(source, l, types.EditDescriptor{Symbol: symbol, Action: types.ActionReplaceBody, Content: body})
}

// SymbolLineRange returns the 1-indexed inclusive lines of symbol,
// attributes included.
func SymbolLineRange(source string, l lang.Language, symbol string) (int, int, error) {
	doc, err := parser.ParseString(source, l)
	if err != nil {
		return 0, 0, err
	}
	defer doc.Close()

	cand, err := locate.Locate(doc, symbol)
	if err != nil {
		return 0, 0, err
	}
	return cand.StartLine, cand.EndLine, nil
}

func single(source string, l lang.Language, desc types.EditDescriptor) (string, error) {
	doc, err := parser.ParseString(source, l)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	edit, err := resolve(doc, desc)
	if err != nil {
		return "", err
	}

	out := splice(source, edit)
	if err := Validate(out, l); err != nil {
		return "", err
	}
	return out, nil
}

// resolve computes the byte range and replacement text for one descriptor.
func resolve(doc *parser.Document, desc types.EditDescriptor) (resolvedEdit, error) {
	cand, err := locate.Locate(doc, desc.Symbol)
	if err != nil {
		return resolvedEdit{}, err
	}

	edit := resolvedEdit{
		start: int(cand.Start),
		end:   int(cand.End),
		result: types.EditResult{
			Symbol:    desc.Symbol,
			Action:    desc.Action.Past(),
			LineStart: cand.StartLine,
			LineEnd:   cand.EndLine,
		},
	}

	switch desc.Action {
	case types.ActionReplace:
		edit.text = desc.Content
	case types.ActionDelete:
		if edit.end < len(doc.Source) && doc.Source[edit.end] == '\n' {
			edit.end++
		}
	case types.ActionReplaceBody:
		body, err := locate.BodyOf(cand.Decl, doc.Spec)
		if err != nil {
			return resolvedEdit{}, fmt.Errorf("%w: %s", err, desc.Symbol)
		}
		if doc.Spec.IndentedBodies {
			edit.start, edit.end, edit.text = indentedBody(doc, cand, int(body.StartByte()), int(body.EndByte()), desc.Content)
		} else {
			edit.start, edit.end = int(body.StartByte()), int(body.EndByte())
			edit.text = bracedBody(doc.Source, edit.start, edit.end, desc.Content)
		}
	default:
		return resolvedEdit{}, fmt.Errorf("%w: %q", ErrUnknownAction, desc.Action)
	}

	return edit, nil
}

// bracedBody wraps body in the block's own delimiters, indented one level
// below the line holding the opening delimiter.
func bracedBody(src []byte, start, end int, body string) string {
	indent := lineIndent(src, start)
	openDelim, closeDelim := src[start], src[end-1]
	return string(openDelim) + "\n" + Reindent(body, indent) + "\n" + indent + string(closeDelim)
}

// indentedBody rewrites an indentation-delimited block. The statements are
// placed on the lines after the header, one level below the header's own
// indentation.
func indentedBody(doc *parser.Document, cand locate.Candidate, start, end int, body string) (int, int, string) {
	indent := lineIndent(doc.Source, int(cand.Decl.StartByte()))
	text := Reindent(body, indent)

	for start > 0 && (doc.Source[start-1] == ' ' || doc.Source[start-1] == '\t') {
		start--
	}
	if start == 0 || doc.Source[start-1] != '\n' {
		text = "\n" + text
	}
	return start, end, text
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(src []byte, offset int) string {
	lineStart := strings.LastIndexByte(string(src[:offset]), '\n') + 1
	return leadingWhitespace(string(src[lineStart:]))
}

func splice(source string, edit resolvedEdit) string {
	var sb strings.Builder
	sb.Grow(len(source) - (edit.end - edit.start) + len(edit.text))
	sb.WriteString(source[:edit.start])
	sb.WriteString(edit.text)
	sb.WriteString(source[edit.end:])
	return sb.String()
}
