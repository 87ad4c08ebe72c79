// Package rewrite applies the encapsulation to whole Go files.
package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/mpyw/purefunc/internal/diag"
	"github.com/mpyw/purefunc/internal/directive"
	"github.com/mpyw/purefunc/internal/expand"
	"github.com/mpyw/purefunc/internal/parse"
	"github.com/mpyw/purefunc/internal/synth"
)

// Failure is a rejected directive.
type Failure struct {
	Position   token.Position
	Func       string // empty when the directive is not on a function
	Diagnostic *diag.Diagnostic
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s", f.Position, f.Diagnostic.Message)
}

// FileResult is the outcome for one file. Output always holds the
// complete file content; it equals the input unless a function was expanded.
type FileResult struct {
	Path     string
	Input    []byte
	Output   []byte
	Changed  bool
	Expanded []string // names of the functions that were rewritten
	Failures []Failure
}

type edit struct {
	start, end int
	text       []byte
}

// File rewrites every annotated function in src that is not encapsulated yet.
// Only the rewritten declarations change; other code keeps its formatting.
// Rejected directives are collected in Failures and leave their declaration
// untouched. A non-nil error means src is not valid Go.
func File(path string, src []byte) (*FileResult, error) {
	res := &FileResult{Path: path, Input: src, Output: src}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if ast.IsGenerated(file) {
		return res, nil
	}

	dirs := directive.Build(fset, file)
	if len(dirs) == 0 {
		return res, nil
	}

	var edits []edit

	for _, d := range file.Decls {
		dir := dirs.Attached(fset, d)
		if dir == nil {
			continue
		}

		switch d := d.(type) {
		case *ast.GenDecl:
			res.fail(fset, dir, "", parse.NonFunction(dir.Args, d))
		case *ast.FuncDecl:
			r := expand.ExpandDecl(fset, src, dir.Args, d)
			if !r.OK() {
				res.fail(fset, dir, d.Name.Name, r.Diagnostic)
				continue
			}
			if synth.IsEncapsulated(r.Func, r.Facts) {
				continue
			}
			edits = append(edits, edit{
				start: fset.Position(d.Pos()).Offset,
				end:   fset.Position(d.End()).Offset,
				text:  bytes.TrimRight(r.Output, "\n"),
			})
			res.Expanded = append(res.Expanded, d.Name.Name)
		}
	}

	for _, d := range dirs.Unused() {
		res.fail(fset, d, "", diag.Detached())
	}

	sort.Slice(res.Failures, func(i, j int) bool {
		return res.Failures[i].Position.Offset < res.Failures[j].Position.Offset
	})

	if len(edits) == 0 {
		return res, nil
	}

	// Replacements are gofmt-formatted already; the rest of the file is kept as is.
	out := apply(src, edits)

	res.Output = out
	res.Changed = xxhash.Sum64(out) != xxhash.Sum64(src)

	return res, nil
}

func (r *FileResult) fail(fset *token.FileSet, dir *directive.Directive, name string, d *diag.Diagnostic) {
	r.Failures = append(r.Failures, Failure{
		Position:   fset.Position(dir.Pos),
		Func:       name,
		Diagnostic: d,
	})
}

// Diff returns a unified diff from Input to Output, empty when unchanged.
func (r *FileResult) Diff() (string, error) {
	if !r.Changed {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(r.Input)),
		B:        difflib.SplitLines(string(r.Output)),
		FromFile: r.Path,
		ToFile:   r.Path,
		Context:  3,
	})
}

// apply splices edits into src. Edits must not overlap.
func apply(src []byte, edits []edit) []byte {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	out := src
	for _, e := range edits {
		var buf bytes.Buffer
		buf.Grow(len(out) - (e.end - e.start) + len(e.text))
		buf.Write(out[:e.start])
		buf.Write(e.text)
		buf.Write(out[e.end:])
		out = buf.Bytes()
	}

	return out
}

// Options control Run.
type Options struct {
	Root   string // paths are joined to Root
	Jobs   int    // at most Jobs files at once; <= 0 means unlimited
	Write  bool   // write changed files back
	Logger *slog.Logger
}

// Summary collects the results of Run, sorted by path.
type Summary struct {
	Results []*FileResult
}

// Changed returns the results whose output differs from the input.
func (s *Summary) Changed() []*FileResult {
	var changed []*FileResult
	for _, r := range s.Results {
		if r.Changed {
			changed = append(changed, r)
		}
	}

	return changed
}

// Failures returns all rejected directives in path order.
func (s *Summary) Failures() []Failure {
	var failures []Failure
	for _, r := range s.Results {
		failures = append(failures, r.Failures...)
	}

	return failures
}

// Run rewrites paths concurrently. The first read, parse or write error
// cancels the remaining work and is returned.
func Run(ctx context.Context, paths []string, opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}

	var (
		mu      sync.Mutex
		results = make([]*FileResult, 0, len(paths))
	)

	for _, p := range paths {
		path := p
		if opts.Root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(opts.Root, path)
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := processFile(path, opts.Write, logger)
			if err != nil {
				return err
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return &Summary{Results: results}, nil
}

func processFile(path string, write bool, logger *slog.Logger) (*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := File(path, src)
	if err != nil {
		return nil, err
	}

	logger.Debug("processed file",
		"path", path,
		"expanded", len(res.Expanded),
		"failures", len(res.Failures),
	)

	if !write || !res.Changed {
		return res, nil
	}

	if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("rewrote file", "path", path, "functions", res.Expanded)

	return res, nil
}
