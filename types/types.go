// Package types defines shared data types for codeview.
package types

// ItemKind is the language-agnostic category of an extracted item.
type ItemKind string

const (
	KindFunction  ItemKind = "function"
	KindMethod    ItemKind = "method"
	KindStruct    ItemKind = "struct"
	KindEnum      ItemKind = "enum"
	KindTrait     ItemKind = "trait"
	KindImpl      ItemKind = "impl"
	KindMod       ItemKind = "mod"
	KindUse       ItemKind = "use"
	KindConst     ItemKind = "const"
	KindStatic    ItemKind = "static"
	KindTypeAlias ItemKind = "typealias"
	KindMacroDef  ItemKind = "macrodef"
	KindClass     ItemKind = "class"
)

// IsFunction reports whether the kind is a function or method.
func (k ItemKind) IsFunction() bool {
	return k == KindFunction || k == KindMethod
}

// IsType reports whether the kind declares a type.
func (k ItemKind) IsType() bool {
	switch k {
	case KindStruct, KindEnum, KindTrait, KindTypeAlias, KindClass:
		return true
	}
	return false
}

// IsContainer reports whether items of this kind hold function-like members.
func (k ItemKind) IsContainer() bool {
	return k == KindImpl || k == KindTrait || k == KindClass
}

// Keyword returns the short label used in symbol listings.
func (k ItemKind) Keyword() string {
	switch k {
	case KindFunction, KindMethod:
		return "fn"
	case KindTypeAlias:
		return "type"
	case KindMacroDef:
		return "macro"
	}
	return string(k)
}

// Visibility is the normalized access level of an item.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
	Crate   Visibility = "crate"
	Super   Visibility = "super"
)

// LineMapping pairs a rendered output line with its original source line.
type LineMapping struct {
	Line int
	Text string
}

// Item is a rendered view over a located span of source.
type Item struct {
	Kind       ItemKind   `json:"kind"`
	Name       string     `json:"name,omitempty"`
	Visibility Visibility `json:"visibility"`
	LineStart  int        `json:"line_start"`
	LineEnd    int        `json:"line_end"`
	Signature  string     `json:"signature,omitempty"` // methods inside containers
	Body       string     `json:"body,omitempty"`      // placeholder when the body was collapsed
	Content    string     `json:"content"`

	// LineMappings is set whenever Content is not a contiguous source slice.
	LineMappings []LineMapping `json:"-"`
}

// IsPublic reports whether the item is visible outside its module.
func (i Item) IsPublic() bool {
	return i.Visibility == Public
}

// EditAction names a mutation requested in a batch.
type EditAction string

const (
	ActionReplace     EditAction = "replace"
	ActionReplaceBody EditAction = "replace-body"
	ActionDelete      EditAction = "delete"
)

// Past returns the action label used in edit results.
func (a EditAction) Past() string {
	switch a {
	case ActionReplace:
		return "replaced"
	case ActionReplaceBody:
		return "replaced_body"
	case ActionDelete:
		return "deleted"
	}
	return string(a)
}

// EditDescriptor is one entry of a batch edit.
type EditDescriptor struct {
	Symbol  string     `json:"symbol" yaml:"symbol"`
	Action  EditAction `json:"action" yaml:"action"`
	Content string     `json:"content,omitempty" yaml:"content,omitempty"`
}

// EditBatch is the on-disk batch file format.
type EditBatch struct {
	Edits []EditDescriptor `json:"edits" yaml:"edits"`
}

// EditResult reports a performed edit using pre-edit line numbers.
type EditResult struct {
	Symbol    string `json:"symbol"`
	Action    string `json:"action"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
}

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
}

// FileItems holds the items extracted from one file plus its size.
type FileItems struct {
	Path  string `json:"path"`
	Items []Item `json:"items"`
	Lines int    `json:"-"`
	Bytes int    `json:"-"`
}
