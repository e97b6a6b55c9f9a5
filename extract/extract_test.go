package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/parser"
	"github.com/arjunmahishi/codeview/types"
)

const rustSource = `use std::fmt;

/// Adds.
pub fn add(a: i32, b: i32) -> i32 {
    a + b
}

#[derive(Debug)]
pub(crate) struct Point {
    x: i32,
}

impl Point {
    pub fn new(x: i32) -> Self {
        Point { x }
    }

    fn secret(&self) -> i32 {
        self.x
    }
}
`

const calcSource = `pub struct Calc;

impl Calc {
    pub fn add(&self, a: i32, b: i32) -> i32 {
        a + b
    }

    pub fn multiply(&self, a: i32, b: i32) -> i32 {
        a * b
    }
}
`

type summary struct {
	Kind  types.ItemKind
	Name  string
	Vis   types.Visibility
	Start int
	End   int
}

func summarize(items []types.Item) []summary {
	out := make([]summary, len(items))
	for i, it := range items {
		out[i] = summary{it.Kind, it.Name, it.Visibility, it.LineStart, it.LineEnd}
	}
	return out
}

func parse(t *testing.T, src string, l lang.Language) *parser.Document {
	t.Helper()
	doc, err := parser.ParseString(src, l)
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return doc
}

func TestInterfaceRust(t *testing.T) {
	items, err := Interface(parse(t, rustSource, lang.Rust))
	require.NoError(t, err)

	require.Equal(t, []summary{
		{types.KindUse, "", types.Private, 1, 1},
		{types.KindFunction, "add", types.Public, 4, 6},
		{types.KindStruct, "Point", types.Crate, 8, 11},
		{types.KindImpl, "Point", types.Private, 13, 21},
		{types.KindMethod, "new", types.Public, 14, 16},
		{types.KindMethod, "secret", types.Private, 18, 20},
	}, summarize(items))

	add := items[1]
	require.Equal(t, "pub fn add(a: i32, b: i32) -> i32 { ... }", add.Content)
	require.Equal(t, Placeholder, add.Body)
	require.Equal(t, []types.LineMapping{{Line: 4, Text: add.Content}}, add.LineMappings)

	require.True(t, strings.HasPrefix(items[2].Content, "#[derive(Debug)]\n"))

	impl := items[3]
	require.Equal(t, "impl Point {\n    pub fn new(x: i32) -> Self { ... }\n\n    fn secret(&self) -> i32 { ... }\n}", impl.Content)
	require.Equal(t, []types.LineMapping{
		{Line: 13, Text: "impl Point {"},
		{Line: 14, Text: "    pub fn new(x: i32) -> Self { ... }"},
		{Line: 17, Text: ""},
		{Line: 18, Text: "    fn secret(&self) -> i32 { ... }"},
		{Line: 21, Text: "}"},
	}, impl.LineMappings)

	require.Equal(t, "pub fn new(x: i32) -> Self", items[4].Signature)
	require.Equal(t, "fn secret(&self) -> i32", items[5].Signature)
	require.Equal(t, "fn secret(&self) -> i32 { ... }", items[5].Content)
}

func TestInterfacePython(t *testing.T) {
	src := "import os\n\n\nclass Greeter:\n    def hello(self, name):\n        return \"hi \" + name\n\n    def _secret(self):\n        return 1\n\n\ndef main():\n    print(\"x\")\n"

	items, err := Interface(parse(t, src, lang.Python))
	require.NoError(t, err)

	require.Equal(t, []summary{
		{types.KindUse, "", types.Private, 1, 1},
		{types.KindClass, "Greeter", types.Private, 4, 9},
		{types.KindMethod, "hello", types.Public, 5, 6},
		{types.KindMethod, "_secret", types.Private, 8, 9},
		{types.KindFunction, "main", types.Private, 12, 13},
	}, summarize(items))

	require.Equal(t, "class Greeter:\n    def hello(self, name): { ... }\n\n    def _secret(self): { ... }", items[1].Content)
	lines := make([]int, 0, len(items[1].LineMappings))
	for _, m := range items[1].LineMappings {
		lines = append(lines, m.Line)
	}
	require.Equal(t, []int{4, 5, 7, 8}, lines)

	require.Equal(t, "def hello(self, name)", items[2].Signature)
	require.Equal(t, "def main(): { ... }", items[4].Content)
}

func TestInterfaceTypeScript(t *testing.T) {
	src := `import { x } from "./x";

export interface Shape {
  area(): number;
}

export class Circle {
  area(): number {
    return 1;
  }

  private scale(k: number): void {
    this.k = k;
  }
}

function helper(): void {}
`

	items, err := Interface(parse(t, src, lang.TypeScript))
	require.NoError(t, err)

	require.Equal(t, []summary{
		{types.KindUse, "", types.Private, 1, 1},
		{types.KindTrait, "Shape", types.Public, 3, 5},
		{types.KindClass, "Circle", types.Public, 7, 15},
		{types.KindMethod, "area", types.Public, 8, 10},
		{types.KindMethod, "scale", types.Private, 12, 14},
		{types.KindFunction, "helper", types.Private, 17, 17},
	}, summarize(items))

	require.Equal(t, "export interface Shape {\n  area(): number;\n}", items[1].Content)
	require.Equal(t, "export class Circle {\n  area(): number { ... }\n\n  private scale(k: number): void { ... }\n}", items[2].Content)
	require.Equal(t, "area(): number", items[3].Signature)
	require.Equal(t, "private scale(k: number): void", items[4].Signature)
	require.Equal(t, "function helper(): void { ... }", items[5].Content)
}

func TestInterfaceEmpty(t *testing.T) {
	items, err := Interface(parse(t, "", lang.Rust))
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestExpand(t *testing.T) {
	doc := parse(t, rustSource, lang.Rust)

	items, err := Expand(doc, []string{"secret", "Point"})
	require.NoError(t, err)
	require.Equal(t, []summary{
		{types.KindStruct, "Point", types.Crate, 8, 11},
		{types.KindImpl, "Point", types.Private, 13, 21},
		{types.KindFunction, "secret", types.Private, 18, 20},
	}, summarize(items))

	require.Equal(t, "#[derive(Debug)]\npub(crate) struct Point {\n    x: i32,\n}", items[0].Content)
	require.Equal(t, "fn secret(&self) -> i32 {\n        self.x\n    }", items[2].Content)
	require.Equal(t, 18, items[2].LineMappings[0].Line)
	require.Len(t, items[2].LineMappings, 3)

	none, err := Expand(doc, []string{"missing"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestExpandTypeScriptMember(t *testing.T) {
	src := "export class A {\n  run(): void {\n    go();\n  }\n}\n"

	items, err := Expand(parse(t, src, lang.TypeScript), []string{"run", "A"})
	require.NoError(t, err)
	require.Equal(t, []summary{
		{types.KindClass, "A", types.Public, 1, 5},
		{types.KindMethod, "run", types.Public, 2, 4},
	}, summarize(items))
	require.Equal(t, src[:len(src)-1], items[0].Content)
}

func TestSignatures(t *testing.T) {
	doc := parse(t, calcSource, lang.Rust)

	items, err := Signatures(doc, "Calc", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	content := items[0].Content
	require.Equal(t, types.KindImpl, items[0].Kind)
	require.Contains(t, content, "pub fn add(&self, a: i32, b: i32) -> i32 { ... }")
	require.Contains(t, content, "pub fn multiply(&self, a: i32, b: i32) -> i32 { ... }")
	require.NotContains(t, content, "a + b")
	require.NotContains(t, content, "a * b")

	lines := make([]int, 0, len(items[0].LineMappings))
	for _, m := range items[0].LineMappings {
		lines = append(lines, m.Line)
	}
	require.Equal(t, []int{3, 4, 7, 8, 11}, lines)
}

func TestSignaturesKeepExpanded(t *testing.T) {
	items, err := Signatures(parse(t, calcSource, lang.Rust), "Calc", []string{"multiply"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	content := items[0].Content
	require.Contains(t, content, "pub fn add(&self, a: i32, b: i32) -> i32 { ... }")
	require.NotContains(t, content, "a + b")
	require.Contains(t, content, "a * b")

	// Expanded members keep their own lines.
	last := items[0].LineMappings[len(items[0].LineMappings)-1]
	require.Equal(t, types.LineMapping{Line: 11, Text: "}"}, last)
}

func TestSignaturesFallback(t *testing.T) {
	doc := parse(t, rustSource, lang.Rust)

	items, err := Signatures(doc, "add", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "pub fn add(a: i32, b: i32) -> i32 {\n    a + b\n}", items[0].Content)

	items, err = Signatures(doc, "nothing", nil)
	require.NoError(t, err)
	require.Nil(t, items)
}

func TestCollapseBody(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		itemFrom string
		want     string
		line     int
	}{
		{"simple", "fn foo() {\n    42\n}\n", "fn", "fn foo() { ... }", 1},
		{"no_space_before_brace", "fn foo(){\n    1\n}", "fn", "fn foo() { ... }", 1},
		{"extra_space_before_brace", "fn foo()    {\n    1\n}", "fn", "fn foo() { ... }", 1},
		{"brace_on_next_line", "fn foo()\n{\n    1\n}", "fn", "fn foo() { ... }", 1},
		{"offset", "// comment\nfn foo() {\n    42\n}", "fn", "fn foo() { ... }", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := []byte(tc.src)
			start := strings.Index(tc.src, tc.itemFrom)
			bodyStart := strings.Index(tc.src, "{")
			bodyEnd := strings.LastIndex(tc.src, "}") + 1

			got, mappings := CollapseBody(src, start, bodyEnd, bodyStart, bodyEnd)
			require.Equal(t, tc.want, got)
			require.Equal(t, []types.LineMapping{{Line: tc.line, Text: tc.want}}, mappings)
		})
	}
}

func TestCollapseBodyPython(t *testing.T) {
	src := "def f(x):\n    return x\n"
	bodyStart := strings.Index(src, "return")
	bodyEnd := len(src) - 1

	got, _ := CollapseBody([]byte(src), 0, bodyEnd, bodyStart, bodyEnd)
	require.Equal(t, "def f(x): { ... }", got)
}

func TestSequentialMappings(t *testing.T) {
	require.Equal(t, []types.LineMapping{
		{Line: 5, Text: "line one"},
		{Line: 6, Text: "line two"},
		{Line: 7, Text: "line three"},
	}, SequentialMappings("line one\nline two\nline three\n", 5))

	require.Empty(t, SequentialMappings("", 10))
}
