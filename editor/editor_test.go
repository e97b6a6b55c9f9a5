package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/types"
)

const threeFns = "fn foo() {\n    old_foo();\n}\n\nfn bar() {\n    old_bar();\n}\n\nfn baz() {\n    old_baz();\n}\n"

func TestReplace(t *testing.T) {
	src := "fn foo() {\n println!(\"old\");\n}\n\nfn bar() {\n println!(\"keep\");\n}\n"

	out, err := Replace(src, lang.Rust, "foo", "fn foo() {\n println!(\"new\");\n}")
	require.NoError(t, err)
	require.Contains(t, out, "new")
	require.Contains(t, out, "keep")
	require.NotContains(t, out, "old")
}

func TestReplaceIncludesAttributes(t *testing.T) {
	src := "#[inline]\n#[must_use]\nfn foo() -> i32 {\n 42\n}\n"

	out, err := Replace(src, lang.Rust, "foo", "#[inline]\nfn foo() -> i32 {\n 43\n}")
	require.NoError(t, err)
	require.Equal(t, 0, strings.Count(out, "#[must_use]"))
	require.Equal(t, 1, strings.Count(out, "#[inline]"))
	require.Contains(t, out, "43")
	require.NotContains(t, out, "42")
}

func TestReplaceWithOwnTextIsIdentity(t *testing.T) {
	src := "// header\n#[derive(Debug)]\npub struct Point {\n    x: i32,\n}\n\nfn tail() {}\n"
	start, end, err := SymbolLineRange(src, lang.Rust, "Point")
	require.NoError(t, err)
	require.Equal(t, 2, start)
	require.Equal(t, 5, end)

	self := "#[derive(Debug)]\npub struct Point {\n    x: i32,\n}"
	out, err := Replace(src, lang.Rust, "Point", self)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestReplaceInvalidSyntax(t *testing.T) {
	src := "fn foo() {}\n"

	out, err := Replace(src, lang.Rust, "foo", "fn foo() { {{{{{ }")
	require.ErrorIs(t, err, ErrInvalidSyntax)
	require.Contains(t, err.Error(), "invalid syntax")
	require.Empty(t, out)
}

func TestNotFound(t *testing.T) {
	_, err := Replace("fn foo() {}\n", lang.Rust, "nope", "fn nope() {}")
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "nope")

	_, err = Delete("fn foo() {}\n", lang.Rust, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = SymbolLineRange("fn foo() {}\n", lang.Rust, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name   string
		lang   lang.Language
		src    string
		symbol string
		want   string
	}{
		{
			name:   "rust_keeps_blank_separator",
			lang:   lang.Rust,
			src:    "fn a() {}\n\nfn b() {}\n",
			symbol: "a",
			want:   "\nfn b() {}\n",
		},
		{
			name:   "rust_with_attributes",
			lang:   lang.Rust,
			src:    "fn a() {}\n#[test]\nfn b() {}\n",
			symbol: "b",
			want:   "fn a() {}\n",
		},
		{
			name:   "rust_no_trailing_newline",
			lang:   lang.Rust,
			src:    "fn a() {}\nfn b() {}",
			symbol: "b",
			want:   "fn a() {}\n",
		},
		{
			name:   "python_decorated_class",
			lang:   lang.Python,
			src:    "@dataclass\nclass P:\n    x: int\n\nY = 1\n",
			symbol: "P",
			want:   "\nY = 1\n",
		},
		{
			name:   "typescript_export",
			lang:   lang.TypeScript,
			src:    "export function a(): void {}\nfunction b(): void {}\n",
			symbol: "a",
			want:   "function b(): void {}\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Delete(tc.src, tc.lang, tc.symbol)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestReplaceBody(t *testing.T) {
	tests := []struct {
		name   string
		lang   lang.Language
		src    string
		symbol string
		body   string
		want   string
	}{
		{
			name:   "rust_top_level",
			lang:   lang.Rust,
			src:    "fn foo() -> i32 {\n    1\n}\n",
			symbol: "foo",
			body:   "let x = 2;\nx",
			want:   "fn foo() -> i32 {\n    let x = 2;\n    x\n}\n",
		},
		{
			name:   "rust_method_spaces",
			lang:   lang.Rust,
			src:    "impl S {\n    fn m(&self) {\n        1;\n    }\n}\n",
			symbol: "m",
			body:   "        2;\n",
			want:   "impl S {\n    fn m(&self) {\n        2;\n    }\n}\n",
		},
		{
			name:   "rust_method_tabs",
			lang:   lang.Rust,
			src:    "impl S {\n\tfn m(&self) {\n\t\t1;\n\t}\n}\n",
			symbol: "m",
			body:   "2;",
			want:   "impl S {\n\tfn m(&self) {\n\t\t2;\n\t}\n}\n",
		},
		{
			name:   "typescript_export",
			lang:   lang.TypeScript,
			src:    "export function greet(name: string): string {\n  return name;\n}\n",
			symbol: "greet",
			body:   "return `hi ${name}`;",
			want:   "export function greet(name: string): string {\n    return `hi ${name}`;\n}\n",
		},
		{
			name:   "python_method",
			lang:   lang.Python,
			src:    "class A:\n    def run(self):\n        return 1\n\n    def stop(self):\n        return 2\n",
			symbol: "run",
			body:   "x = 2\nreturn x",
			want:   "class A:\n    def run(self):\n        x = 2\n        return x\n\n    def stop(self):\n        return 2\n",
		},
		{
			name:   "python_inline_body",
			lang:   lang.Python,
			src:    "def f(): return 1\n",
			symbol: "f",
			body:   "return 2",
			want:   "def f():\n    return 2\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ReplaceBody(tc.src, tc.lang, tc.symbol, tc.body)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestReplaceBodyNoBody(t *testing.T) {
	_, err := ReplaceBody("struct Foo { x: i32 }\n", lang.Rust, "Foo", "y: i32")
	require.ErrorIs(t, err, ErrNoBody)

	_, err = ReplaceBody("const X: i32 = 1;\n", lang.Rust, "X", "2")
	require.ErrorIs(t, err, ErrNoBody)
}

func TestBatch(t *testing.T) {
	edits := []types.EditDescriptor{
		{Symbol: "foo", Action: types.ActionReplaceBody, Content: "new_foo();"},
		{Symbol: "baz", Action: types.ActionDelete},
	}

	out, results, err := Batch(threeFns, lang.Rust, edits)
	require.NoError(t, err)
	require.Contains(t, out, "new_foo()")
	require.NotContains(t, out, "old_foo")
	require.Contains(t, out, "fn bar() {\n    old_bar();\n}")
	require.NotContains(t, out, "baz")

	require.Equal(t, []types.EditResult{
		{Symbol: "foo", Action: "replaced_body", LineStart: 1, LineEnd: 3},
		{Symbol: "baz", Action: "deleted", LineStart: 9, LineEnd: 11},
	}, results)
}

func TestBatchOrderIndependent(t *testing.T) {
	a := types.EditDescriptor{Symbol: "foo", Action: types.ActionReplace, Content: "fn foo() {}"}
	b := types.EditDescriptor{Symbol: "bar", Action: types.ActionReplaceBody, Content: "new_bar();"}
	c := types.EditDescriptor{Symbol: "baz", Action: types.ActionDelete}

	first, _, err := Batch(threeFns, lang.Rust, []types.EditDescriptor{a, b, c})
	require.NoError(t, err)
	second, _, err := Batch(threeFns, lang.Rust, []types.EditDescriptor{c, a, b})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "fn foo() {}\n\nfn bar() {\n    new_bar();\n}\n\n", first)
}

func TestBatchErrors(t *testing.T) {
	nested := "struct Other;\n\nimpl MyStruct {\n    fn method_one() {\n        one();\n    }\n}\n"

	tests := []struct {
		name    string
		src     string
		edits   []types.EditDescriptor
		wantErr error
		msg     string
	}{
		{
			name: "overlap",
			src:  nested,
			edits: []types.EditDescriptor{
				{Symbol: "MyStruct", Action: types.ActionDelete},
				{Symbol: "method_one", Action: types.ActionReplace, Content: "fn method_one() {}"},
			},
			wantErr: ErrOverlappingEdits,
		},
		{
			name: "same_symbol_twice",
			src:  threeFns,
			edits: []types.EditDescriptor{
				{Symbol: "bar", Action: types.ActionDelete},
				{Symbol: "bar", Action: types.ActionDelete},
			},
			wantErr: ErrOverlappingEdits,
		},
		{
			name: "missing_content",
			src:  threeFns,
			edits: []types.EditDescriptor{
				{Symbol: "baz", Action: types.ActionDelete},
				{Symbol: "bar", Action: types.ActionReplace},
			},
			wantErr: ErrMissingContent,
			msg:     "bar",
		},
		{
			name: "not_found",
			src:  threeFns,
			edits: []types.EditDescriptor{
				{Symbol: "foo", Action: types.ActionDelete},
				{Symbol: "qux", Action: types.ActionDelete},
			},
			wantErr: ErrNotFound,
			msg:     "qux",
		},
		{
			name: "invalid_result",
			src:  threeFns,
			edits: []types.EditDescriptor{
				{Symbol: "foo", Action: types.ActionReplace, Content: "fn foo( {"},
			},
			wantErr: ErrInvalidSyntax,
		},
		{
			name: "unknown_action",
			src:  threeFns,
			edits: []types.EditDescriptor{
				{Symbol: "foo", Action: "rename", Content: "x"},
			},
			wantErr: ErrUnknownAction,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, results, err := Batch(tc.src, lang.Rust, tc.edits)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.msg != "" {
				require.Contains(t, err.Error(), tc.msg)
			}
			require.Empty(t, out)
			require.Nil(t, results)
		})
	}
}

func TestBatchEmpty(t *testing.T) {
	out, results, err := Batch(threeFns, lang.Rust, nil)
	require.NoError(t, err)
	require.Equal(t, threeFns, out)
	require.Empty(t, results)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(threeFns, lang.Rust))
	require.NoError(t, Validate(threeFns, lang.Rust))
	require.NoError(t, Validate("def f():\n    pass\n", lang.Python))

	require.ErrorIs(t, Validate("fn foo() { {{{{{ }", lang.Rust), ErrInvalidSyntax)
	require.ErrorIs(t, Validate("def f(:\n", lang.Python), ErrInvalidSyntax)
}

func TestReindent(t *testing.T) {
	tests := []struct {
		name string
		body string
		base string
		want string
	}{
		{"flat", "a\nb", "", "    a\n    b"},
		{"common_indent_removed", "        a\n          b\n        c\n", "    ", "        a\n          b\n        c"},
		{"blank_lines_emptied", "a\n   \nb", "", "    a\n\n    b"},
		{"tab_base", "a\n\tb", "\t", "\t\ta\n\t\t\tb"},
		{"single_line", "x", "  ", "      x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Reindent(tc.body, tc.base))
		})
	}
}
