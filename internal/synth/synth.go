// Package synth rewrites an accepted declaration into a forwarding shim
// around a private closure that holds the original body.
package synth

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mpyw/purefunc/internal/analyze"
	"github.com/mpyw/purefunc/internal/decl"
)

// Synthesize returns the gofmt-formatted replacement for fn:
//
//	func Add(a, b int) int {
//		add := func(a, b int) int {
//			return a + b
//		}
//		return add(a, b)
//	}
//
// The outer signature is copied byte for byte.
func Synthesize(fn *decl.Func, facts *analyze.Facts) ([]byte, error) {
	fd := fn.Decl
	inner := InnerName(fn)

	var b strings.Builder

	b.WriteString(fn.Text(fd.Pos(), fd.Body.Lbrace))
	b.WriteString("{\n")
	b.WriteString(inner)
	b.WriteString(" := func")
	b.WriteString(fn.Text(fd.Type.Params.Pos(), fd.Type.End()))
	b.WriteString(" {")
	b.WriteString(fn.Text(fd.Body.Lbrace+1, fd.Body.Rbrace))
	b.WriteString("}\n")

	if len(fn.Results) > 0 {
		b.WriteString("return ")
	}

	b.WriteString(Call(inner, facts))
	b.WriteString("\n}\n")

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", fn.Name, err)
	}

	return out, nil
}

// Call renders the forwarding call to the closure.
func Call(inner string, facts *analyze.Facts) string {
	args := strings.Join(facts.ParamNames, ", ")
	if facts.Variadic && len(facts.ParamNames) > 0 {
		args += "..."
	}

	return inner + "(" + args + ")"
}

// InnerName picks the closure name: the unexported form of the function
// name, distinct from every name already declared in the signature.
func InnerName(fn *decl.Func) string {
	taken := signatureNames(fn.Decl)
	base := unexport(fn.Name)

	name := base
	if token.IsKeyword(name) || taken[name] {
		name = base + "Impl"
	}

	for i := 2; token.IsKeyword(name) || taken[name]; i++ {
		name = fmt.Sprintf("%sImpl%d", base, i)
	}

	return name
}

// IsEncapsulated reports whether fn already has the shape Synthesize produces.
func IsEncapsulated(fn *decl.Func, facts *analyze.Facts) bool {
	body := fn.Decl.Body.List
	if len(body) != 2 {
		return false
	}

	inner := InnerName(fn)

	assign, ok := body[0].(*ast.AssignStmt)
	if !ok || assign.Tok != token.DEFINE || len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
		return false
	}

	if id, ok := assign.Lhs[0].(*ast.Ident); !ok || id.Name != inner {
		return false
	}

	if _, ok := assign.Rhs[0].(*ast.FuncLit); !ok {
		return false
	}

	var call ast.Expr

	switch s := body[1].(type) {
	case *ast.ReturnStmt:
		if len(fn.Results) == 0 || len(s.Results) != 1 {
			return false
		}
		call = s.Results[0]
	case *ast.ExprStmt:
		if len(fn.Results) > 0 {
			return false
		}
		call = s.X
	default:
		return false
	}

	return forwards(call, inner, facts)
}

func forwards(expr ast.Expr, inner string, facts *analyze.Facts) bool {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return false
	}

	if id, ok := call.Fun.(*ast.Ident); !ok || id.Name != inner {
		return false
	}

	if len(call.Args) != len(facts.ParamNames) {
		return false
	}

	for i, arg := range call.Args {
		id, ok := arg.(*ast.Ident)
		if !ok || id.Name != facts.ParamNames[i] {
			return false
		}
	}

	return call.Ellipsis.IsValid() == (facts.Variadic && len(facts.ParamNames) > 0)
}

func signatureNames(fd *ast.FuncDecl) map[string]bool {
	taken := map[string]bool{}

	for _, fl := range []*ast.FieldList{fd.Recv, fd.Type.TypeParams, fd.Type.Params, fd.Type.Results} {
		if fl == nil {
			continue
		}

		for _, field := range fl.List {
			for _, n := range field.Names {
				taken[n.Name] = true
			}
		}
	}

	return taken
}

// unexport lowers the leading upper-case run of name: Add -> add,
// HTTPGet -> httpGet, ID -> id.
func unexport(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || r == '_' {
		return "impl" + name
	}

	runes := []rune(name)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}

	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
