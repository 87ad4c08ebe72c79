// Package discover finds Go source files to process under a root directory.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Options selects files. Patterns are doublestar globs matched against
// slash-separated paths relative to the root.
type Options struct {
	Include          []string
	Exclude          []string
	RespectGitignore bool
}

var skipDirs = map[string]struct{}{
	"vendor":       {},
	"testdata":     {},
	"node_modules": {},
}

// Files returns the matching .go files under root, relative to root and sorted.
func Files(root string, opts Options) ([]string, error) {
	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	var results []string

	err := walk(root, gi, func(rel string, d fs.DirEntry) {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".go") {
			return
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return
		}
		if !selected(filepath.ToSlash(rel), opts) {
			return
		}
		results = append(results, rel)
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)

	return results, nil
}

// Dirs returns root and every directory under it that Files would descend into.
func Dirs(root string, opts Options) ([]string, error) {
	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	dirs := []string{root}

	err := walk(root, gi, func(rel string, d fs.DirEntry) {
		if d.IsDir() {
			dirs = append(dirs, filepath.Join(root, rel))
		}
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

// Match reports whether a single path, relative to root, would be selected.
func Match(rel string, opts Options) bool {
	if !strings.HasSuffix(rel, ".go") {
		return false
	}

	return selected(filepath.ToSlash(rel), opts)
}

func walk(root string, gi *ignore.GitIgnore, visit func(rel string, d fs.DirEntry)) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable entries
		}

		if path == root {
			return nil
		}

		name := d.Name()

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			visit(rel, d)
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		visit(rel, d)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}

	return nil
}

func selected(rel string, opts Options) bool {
	included := len(opts.Include) == 0
	for _, p := range opts.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, p := range opts.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}

	return true
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	return gi
}
