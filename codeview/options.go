package codeview

import "github.com/arjunmahishi/codeview/types"

// WalkOptions controls directory traversal.
type WalkOptions struct {
	// Depth limits recursion below the root. Nil means unlimited.
	Depth *int

	// Ext restricts files to these extensions (without the dot).
	Ext []string

	// IgnoreDirs are skipped in addition to the built-in list.
	IgnoreDirs []string

	// MaxBytes skips files larger than this.
	// If 0, no size limit is enforced.
	MaxBytes int64

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int
}

// Filter narrows the items of a view. Fns and Types combine as a union.
type Filter struct {
	// Pub keeps public items only.
	Pub bool

	// Fns keeps functions and methods, and shows standalone method items.
	Fns bool

	// Types keeps struct, enum, trait, type alias and class items.
	Types bool

	// NoTests drops a module named "tests".
	NoTests bool
}

// ViewOptions configures the View function.
type ViewOptions struct {
	// Path is a file or directory (required).
	Path string

	// Symbols switches to expand mode: every item with one of these names
	// is shown in full.
	Symbols []string

	// Signatures renders the named container with member bodies collapsed.
	// Takes precedence over Symbols.
	Signatures string

	// Keep lists members shown in full in signatures mode.
	Keep []string

	Filter Filter
	Walk   WalkOptions
}

// Mode reports which view the options select.
func (o ViewOptions) Mode() ViewMode {
	switch {
	case o.Signatures != "":
		return SignaturesMode
	case len(o.Symbols) > 0:
		return ExpandMode
	}
	return InterfaceMode
}

// ViewMode selects how items are rendered.
type ViewMode int

const (
	InterfaceMode ViewMode = iota
	ExpandMode
	SignaturesMode
)

// SearchOptions configures the Search function.
type SearchOptions struct {
	// Pattern is a regular expression in RE2 syntax (required).
	Pattern string

	IgnoreCase bool

	// Path is a file or directory. If empty, current directory is used.
	Path string

	// MaxResults caps the number of reported matches. Zero means no cap.
	// If nil, directories are capped at DefaultMaxResults and single files
	// are not capped.
	MaxResults *int

	Walk WalkOptions
}

// EditOptions configures the Edit function.
type EditOptions struct {
	// File is the file to modify (required).
	File string

	// Edits are applied atomically: all of them or none.
	Edits []types.EditDescriptor

	// DryRun computes the result without writing the file.
	DryRun bool
}
