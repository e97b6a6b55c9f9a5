// Package parser turns source text into syntax trees and runs the
// per-language queries over them.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/codeview/lang"
)

// ErrLanguageSetup is returned when a grammar cannot be loaded.
var ErrLanguageSetup = errors.New("language setup failed")

// Document pairs a syntax tree with the exact source buffer it was parsed
// from. Byte offsets of the tree's nodes are only valid against Source.
type Document struct {
	Lang   lang.Language
	Spec   *lang.Spec
	Source []byte
	Tree   *sitter.Tree
}

// Parse parses source as the given language. Syntax errors do not fail the
// parse; they show up as error nodes in the tree.
func Parse(ctx context.Context, source []byte, language lang.Language) (*Document, error) {
	spec := lang.Get(language)
	if spec == nil {
		return nil, fmt.Errorf("%w: %s not registered", ErrLanguageSetup, language)
	}
	grammar := spec.Grammar()
	if grammar == nil {
		return nil, fmt.Errorf("%w: no grammar for %s", ErrLanguageSetup, language)
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(grammar)

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", language, err)
	}

	return &Document{
		Lang:   language,
		Spec:   spec,
		Source: source,
		Tree:   tree,
	}, nil
}

// ParseString parses a string without a cancellation context.
func ParseString(source string, language lang.Language) (*Document, error) {
	return Parse(context.Background(), []byte(source), language)
}

// ParseFile reads and parses a file, detecting its language.
func ParseFile(ctx context.Context, path string) (*Document, error) {
	language, err := lang.Detect(path)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(ctx, source, language)
}

// Root returns the root node of the tree.
func (d *Document) Root() *sitter.Node {
	return d.Tree.RootNode()
}

// Text returns the source text spanned by node.
func (d *Document) Text(node *sitter.Node) string {
	return lang.Text(node, d.Source)
}

// HasError reports whether the tree contains error or missing nodes.
func (d *Document) HasError() bool {
	return d.Root().HasError()
}

// Close releases the tree.
func (d *Document) Close() {
	if d.Tree != nil {
		d.Tree.Close()
	}
}
