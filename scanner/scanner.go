// Package scanner discovers source files for processing.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/arjunmahishi/codeview/lang"
	"github.com/arjunmahishi/codeview/types"
)

// DefaultIgnoreDirs returns the default list of directories to ignore.
func DefaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":          {},
		".hg":           {},
		".svn":          {},
		".jj":           {},
		"node_modules":  {},
		"vendor":        {},
		"dist":          {},
		"build":         {},
		"target":        {},
		".venv":         {},
		"__pycache__":   {},
		".mypy_cache":   {},
		".pytest_cache": {},
		".next":         {},
		".cache":        {},
		".turbo":        {},
		"coverage":      {},
	}
}

// Config holds scanner configuration.
type Config struct {
	Root string

	// Depth limits how far below Root the walk descends. Nil means
	// unlimited; 0 keeps only files directly in Root.
	Depth *int

	// Ext restricts results to these extensions (without the dot). Empty
	// means every supported language.
	Ext []string

	// IgnoreDirs are skipped in addition to DefaultIgnoreDirs.
	IgnoreDirs []string

	// MaxBytes skips files larger than this when positive.
	MaxBytes int64
}

// Scanner discovers files for processing.
type Scanner struct {
	cfg        Config
	ignoreDirs map[string]struct{}
	ext        map[string]struct{}
}

// New creates a new Scanner with the given configuration.
func New(cfg Config) *Scanner {
	dirs := DefaultIgnoreDirs()
	for _, d := range cfg.IgnoreDirs {
		dirs[d] = struct{}{}
	}
	ext := make(map[string]struct{}, len(cfg.Ext))
	for _, e := range cfg.Ext {
		ext[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}
	return &Scanner{cfg: cfg, ignoreDirs: dirs, ext: ext}
}

// Collect walks Root and returns the matching files sorted by display path.
func (s *Scanner) Collect() ([]types.FileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", s.cfg.Root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", s.cfg.Root)
	}

	rules := gitignores{}
	rules.load(absRoot)

	var jobs []types.FileJob
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			// Unreadable entries are skipped.
			return nil
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		name := d.Name()

		if d.IsDir() {
			if s.shouldIgnoreDir(name) || rules.matches(absRoot, path, true) {
				return filepath.SkipDir
			}
			if s.cfg.Depth != nil && depthOf(rel) > *s.cfg.Depth {
				return filepath.SkipDir
			}
			rules.load(path)
			return nil
		}

		if strings.HasPrefix(name, ".") || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !s.isSupportedFile(name) || rules.matches(absRoot, path, false) {
			return nil
		}

		if s.cfg.MaxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.MaxBytes {
				return nil
			}
		}

		jobs = append(jobs, types.FileJob{
			AbsPath:     path,
			DisplayPath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].DisplayPath < jobs[j].DisplayPath })
	return jobs, nil
}

// CollectSingle returns a single file as a FileJob.
func (s *Scanner) CollectSingle(filePath string) (types.FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return types.FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	return types.FileJob{
		AbsPath:     absPath,
		DisplayPath: filePath,
	}, nil
}

func (s *Scanner) shouldIgnoreDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := s.ignoreDirs[name]
	return ok
}

func (s *Scanner) isSupportedFile(name string) bool {
	if !lang.IsSupported(name) {
		return false
	}
	if len(s.ext) == 0 {
		return true
	}
	_, ok := s.ext[strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))]
	return ok
}

// depthOf returns how many directories separate rel from the root: a
// directory directly in the root has depth 1.
func depthOf(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// gitignores holds the compiled .gitignore of every visited directory.
type gitignores map[string]*ignore.GitIgnore

func (g gitignores) load(dir string) {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return
	}
	g[dir] = gi
}

// matches checks path against the .gitignore of each directory between the
// root and the path's parent, relative to that directory.
func (g gitignores) matches(root, path string, isDir bool) bool {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if gi, ok := g[dir]; ok {
			rel, err := filepath.Rel(dir, path)
			if err == nil {
				rel = filepath.ToSlash(rel)
				if gi.MatchesPath(rel) || (isDir && gi.MatchesPath(rel+"/")) {
					return true
				}
			}
		}
		if dir == root || dir == filepath.Dir(dir) {
			return false
		}
	}
}
