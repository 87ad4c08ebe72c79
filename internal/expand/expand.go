// Package expand runs the parse, analyze and synthesize stages for one
// annotated declaration.
package expand

import (
	"bytes"
	"go/ast"
	"go/token"

	"github.com/mpyw/purefunc/internal/analyze"
	"github.com/mpyw/purefunc/internal/decl"
	"github.com/mpyw/purefunc/internal/diag"
	"github.com/mpyw/purefunc/internal/parse"
	"github.com/mpyw/purefunc/internal/synth"
)

// State is the pipeline position an expansion stopped at.
type State int

const (
	Start State = iota
	Parsed
	Analyzed
	Synthesized
	Failed
)

func (s State) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Analyzed:
		return "analyzed"
	case Synthesized:
		return "synthesized"
	case Failed:
		return "failed"
	default:
		return "start"
	}
}

// Result is the outcome of one expansion. On failure Output is the
// original declaration, unmodified, and Diagnostic says why.
type Result struct {
	State      State
	Output     []byte
	Diagnostic *diag.Diagnostic

	Func  *decl.Func
	Facts *analyze.Facts
}

// Err returns the diagnostic as an error, or nil on success.
func (r Result) Err() error {
	if r.Diagnostic == nil {
		return nil
	}

	return r.Diagnostic
}

// OK reports whether the declaration was synthesized.
func (r Result) OK() bool {
	return r.State == Synthesized
}

// Expand parses item as a declaration and rewrites it. Text in front of the
// declaration, such as its doc comment and the directive, is kept.
func Expand(args string, item []byte) Result {
	fn, err := parse.Parse(args, item)
	if err != nil {
		return fail(item, err)
	}

	res := run(fn, item)
	if !res.OK() {
		return res
	}

	if lead := leading(fn, item); len(lead) > 0 {
		res.Output = append(lead, res.Output...)
	}

	return res
}

// leading returns a copy of the item text before the func keyword.
func leading(fn *decl.Func, item []byte) []byte {
	file := fn.Fset.File(fn.Decl.Pos())
	if file == nil {
		return nil
	}

	// item is the tail of the parsed source
	start := file.Offset(fn.Decl.Pos()) - (file.Size() - len(item))
	if start <= 0 || start > len(item) {
		return nil
	}

	return bytes.Clone(item[:start])
}

// ExpandDecl rewrites a declaration taken from a parsed file.
// src is the full file content.
func ExpandDecl(fset *token.FileSet, src []byte, args string, fd *ast.FuncDecl) Result {
	original := []byte(sourceOf(fset, src, fd))

	if err := parse.Args(args); err != nil {
		return fail(original, err)
	}

	fn, err := parse.FromAST(fset, src, fd)
	if err != nil {
		return fail(original, err)
	}

	return run(fn, original)
}

func run(fn *decl.Func, original []byte) Result {
	res := Result{State: Parsed, Func: fn}

	facts, err := analyze.Analyze(fn)
	if err != nil {
		res = fail(original, err)
		res.Func = fn
		return res
	}

	res.State = Analyzed
	res.Facts = facts

	out, err := synth.Synthesize(fn, facts)
	if err != nil {
		res = fail(original, diag.Syntax(err))
		res.Func = fn
		return res
	}

	res.State = Synthesized
	res.Output = out

	return res
}

func fail(original []byte, err error) Result {
	d, ok := diag.As(err)
	if !ok {
		d = diag.Syntax(err)
	}

	return Result{State: Failed, Output: original, Diagnostic: d}
}

func sourceOf(fset *token.FileSet, src []byte, n ast.Node) string {
	start := fset.Position(n.Pos()).Offset
	end := fset.Position(n.End()).Offset

	if start < 0 || end > len(src) || start > end {
		return ""
	}

	return string(src[start:end])
}
