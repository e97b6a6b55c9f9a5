package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/codeview/types"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func displayPaths(jobs []types.FileJob) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.DisplayPath
	}
	return out
}

func intPtr(n int) *int { return &n }

func TestCollect(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.rs":               "fn main() {}\n",
		"app.py":                "X = 1\n",
		"notes.txt":             "hello\n",
		".hidden.rs":            "fn h() {}\n",
		".config/tool.rs":       "fn c() {}\n",
		"src/lib.ts":            "export const a = 1;\n",
		"src/ui/view.tsx":       "const v = <div />;\n",
		"src/ui/deep/util.js":   "function u() {}\n",
		"node_modules/dep/x.js": "function x() {}\n",
		"target/debug/build.rs": "fn b() {}\n",
		"gen/out.rs":            "fn g() {}\n",
		"skip.tmp.rs":           "fn s() {}\n",
		".gitignore":            "gen/\n*.tmp.rs\n",
		"src/.gitignore":        "local.ts\n",
		"src/local.ts":          "const l = 1;\n",
		"extra/more.py":         "Y = 2\n",
	})

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "defaults",
			cfg:  Config{},
			want: []string{"app.py", "extra/more.py", "main.rs", "src/lib.ts", "src/ui/deep/util.js", "src/ui/view.tsx"},
		},
		{
			name: "ext_filter",
			cfg:  Config{Ext: []string{"ts", ".tsx"}},
			want: []string{"src/lib.ts", "src/ui/view.tsx"},
		},
		{
			name: "depth_zero",
			cfg:  Config{Depth: intPtr(0)},
			want: []string{"app.py", "main.rs"},
		},
		{
			name: "depth_one",
			cfg:  Config{Depth: intPtr(1)},
			want: []string{"app.py", "extra/more.py", "main.rs", "src/lib.ts"},
		},
		{
			name: "extra_ignore_dirs",
			cfg:  Config{IgnoreDirs: []string{"ui", "extra"}},
			want: []string{"app.py", "main.rs", "src/lib.ts"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.Root = root
			jobs, err := New(cfg).Collect()
			require.NoError(t, err)
			require.Equal(t, tc.want, displayPaths(jobs))

			for _, j := range jobs {
				require.True(t, filepath.IsAbs(j.AbsPath))
			}
		})
	}
}

func TestCollectMaxBytes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.rs": "fn a() {}\n",
		"large.rs": "fn b() {}\n" + strings.Repeat("// padding\n", 100),
	})

	jobs, err := New(Config{Root: root, MaxBytes: 64}).Collect()
	require.NoError(t, err)
	require.Equal(t, []string{"small.rs"}, displayPaths(jobs))

	jobs, err = New(Config{Root: root}).Collect()
	require.NoError(t, err)
	require.Equal(t, []string{"large.rs", "small.rs"}, displayPaths(jobs))
}

func TestCollectErrors(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rs": "fn a() {}\n"})

	_, err := New(Config{Root: filepath.Join(root, "a.rs")}).Collect()
	require.ErrorContains(t, err, "not a directory")

	_, err = New(Config{Root: filepath.Join(root, "missing")}).Collect()
	require.ErrorContains(t, err, "path not found")
}

func TestCollectSingle(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rs": "fn a() {}\n"})
	path := filepath.Join(root, "a.rs")

	job, err := New(Config{}).CollectSingle(path)
	require.NoError(t, err)
	require.Equal(t, path, job.AbsPath)
	require.Equal(t, path, job.DisplayPath)
}
