package editor

import (
	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/parser"
)

// Validate re-parses source from scratch and fails with ErrInvalidSyntax if
// the tree contains any error or missing node.
func Validate(source string, l lang.Language) error {
	doc, err := parser.ParseString(source, l)
	if err != nil {
		return err
	}
	defer doc.Close()

	if doc.HasError() {
		return ErrInvalidSyntax
	}
	return nil
}
