package purefunc

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/purefunc/internal/diag"
	"github.com/mpyw/purefunc/internal/directive"
	"github.com/mpyw/purefunc/internal/expand"
	"github.com/mpyw/purefunc/internal/parse"
	"github.com/mpyw/purefunc/internal/synth"
)

// Flags for the analyzer.
var (
	encapsulate bool
	reportTypos bool
)

func init() {
	Analyzer.Flags.BoolVar(&encapsulate, "encapsulate", true,
		"report accepted functions whose body is not encapsulated yet, with a suggested fix")
	Analyzer.Flags.BoolVar(&reportTypos, "typos", true,
		"report comments that look like a misspelled //purefunc:pure directive")
}

// Analyzer is the main analyzer for purefunc.
var Analyzer = &analysis.Analyzer{
	Name:     "purefunc",
	Doc:      "checks that functions marked //purefunc:pure have a pure interface and encapsulates their bodies",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

// Diagnostic categories that are not a diag.Kind.
const (
	categoryEncapsulate = "encapsulate"
	categoryTypo        = "typo"
)

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build directive maps for each file (excluding skipped files)
	directiveMaps := buildDirectiveMaps(pass, skipFiles)

	sources := make(map[string][]byte)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.GenDecl)(nil),
	}

	var readErr error

	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push || readErr != nil {
			return false
		}

		// Only top-level declarations carry directives
		if len(stack) < 2 {
			return false
		}
		if _, ok := stack[len(stack)-2].(*ast.File); !ok {
			return false
		}

		filename := pass.Fset.Position(n.Pos()).Filename
		dirs, ok := directiveMaps[filename]
		if !ok {
			return false
		}

		dir := dirs.Attached(pass.Fset, n.(ast.Decl))
		if dir == nil {
			return false
		}

		switch decl := n.(type) {
		case *ast.GenDecl:
			reportDiagnostic(pass, dir, parse.NonFunction(dir.Args, decl))
		case *ast.FuncDecl:
			src, err := readSource(pass, sources, filename)
			if err != nil {
				readErr = err
				return false
			}
			checkFunc(pass, dir, src, decl)
		}

		return false
	})

	if readErr != nil {
		return nil, readErr
	}

	// Report directives attached to nothing
	reportDetached(pass, directiveMaps)

	if reportTypos {
		checkTypos(pass, skipFiles)
	}

	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildDirectiveMaps creates directive maps for each file in the pass.
func buildDirectiveMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]directive.Map {
	maps := make(map[string]directive.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		maps[filename] = directive.Build(pass.Fset, file)
	}

	return maps
}

func readSource(pass *analysis.Pass, cache map[string][]byte, filename string) ([]byte, error) {
	if src, ok := cache[filename]; ok {
		return src, nil
	}

	src, err := pass.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	cache[filename] = src

	return src, nil
}

// checkFunc runs the pipeline on one annotated function.
func checkFunc(pass *analysis.Pass, dir *directive.Directive, src []byte, decl *ast.FuncDecl) {
	res := expand.ExpandDecl(pass.Fset, src, dir.Args, decl)
	if !res.OK() {
		reportDiagnostic(pass, dir, res.Diagnostic)
		return
	}

	if !encapsulate || synth.IsEncapsulated(res.Func, res.Facts) {
		return
	}

	pass.Report(analysis.Diagnostic{
		Pos:      dir.Pos,
		Category: categoryEncapsulate,
		Message:  fmt.Sprintf("%s%s is not encapsulated", diag.Prefix, decl.Name.Name),
		SuggestedFixes: []analysis.SuggestedFix{{
			Message: fmt.Sprintf("Encapsulate %s", decl.Name.Name),
			TextEdits: []analysis.TextEdit{{
				Pos:     decl.Pos(),
				End:     decl.End(),
				NewText: bytes.TrimRight(res.Output, "\n"),
			}},
		}},
	})
}

func reportDiagnostic(pass *analysis.Pass, dir *directive.Directive, d *diag.Diagnostic) {
	pass.Report(analysis.Diagnostic{
		Pos:      dir.Pos,
		Category: string(d.Kind),
		Message:  d.Message,
	})
}

// reportDetached reports directives that no declaration claimed.
func reportDetached(pass *analysis.Pass, directiveMaps map[string]directive.Map) {
	for _, dirs := range directiveMaps {
		for _, d := range dirs.Unused() {
			reportDiagnostic(pass, d, diag.Detached())
		}
	}
}

// checkTypos reports comments that look like misspelled directives.
func checkTypos(pass *analysis.Pass, skipFiles map[string]bool) {
	for _, file := range pass.Files {
		if skipFiles[pass.Fset.Position(file.Pos()).Filename] {
			continue
		}

		for _, typo := range directive.Typos(file) {
			pass.Report(analysis.Diagnostic{
				Pos:      typo.Pos,
				Category: categoryTypo,
				Message:  fmt.Sprintf("%s%q looks like a misspelled //%s directive", diag.Prefix, typo.Word, directive.Name),
			})
		}
	}
}
