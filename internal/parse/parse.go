// Package parse turns source text or an AST node into a decl.Func.
package parse

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/mpyw/purefunc/internal/decl"
	"github.com/mpyw/purefunc/internal/diag"
)

const header = "package p\n\n"

// Parse parses a single annotated declaration. args are the directive
// arguments, which must be empty.
func Parse(args string, item []byte) (*decl.Func, error) {
	if err := Args(args); err != nil {
		return nil, err
	}

	src := append([]byte(header), item...)
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "item.go", src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, diag.Syntax(err)
	}

	if len(file.Decls) != 1 {
		return nil, diag.NotFunction(fmt.Sprintf("%d declarations", len(file.Decls)))
	}

	fd, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		return nil, diag.NotFunction(Describe(file.Decls[0]))
	}

	return FromAST(fset, src, fd)
}

// Args validates directive arguments: there must be none.
func Args(args string) error {
	if a := strings.TrimSpace(args); a != "" {
		return diag.Arguments(a)
	}

	return nil
}

// FromAST builds a decl.Func from a declaration parsed elsewhere.
// src must be the full content of the file fd belongs to.
func FromAST(fset *token.FileSet, src []byte, fd *ast.FuncDecl) (*decl.Func, error) {
	if fd.Body == nil {
		return nil, diag.NotFunction("function without body")
	}

	fn := decl.New(fset, src, 0, fd)
	fn.Name = fd.Name.Name
	fn.Exported = ast.IsExported(fd.Name.Name)

	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		field := fd.Recv.List[0]
		fn.Params = append(fn.Params, &decl.Receiver{
			Name: fieldName(field, 0),
			Type: typeDesc(fn, field.Type),
		})
	}

	index := 0
	for _, field := range fd.Type.Params.List {
		_, variadic := field.Type.(*ast.Ellipsis)

		for i := 0; i < max(1, len(field.Names)); i++ {
			fn.Params = append(fn.Params, &decl.Named{
				Name:     fieldName(field, i),
				Type:     typeDesc(fn, field.Type),
				Variadic: variadic,
				Index:    index,
			})
			index++
		}
	}

	if fd.Type.Results != nil {
		for _, field := range fd.Type.Results.List {
			for i := 0; i < max(1, len(field.Names)); i++ {
				td := typeDesc(fn, field.Type)
				fn.Results = append(fn.Results, td)
				fn.Async = fn.Async || td.Chan
			}
		}
	}

	for _, stmt := range fd.Body.List {
		fn.Body = append(fn.Body, classify(stmt))
	}

	return fn, nil
}

// NonFunction rejects a directive attached to a declaration that is not a
// function. Arguments are reported first, as for Parse.
func NonFunction(args string, d ast.Decl) *diag.Diagnostic {
	if err := Args(args); err != nil {
		if dg, ok := diag.As(err); ok {
			return dg
		}
	}

	return diag.NotFunction(Describe(d))
}

// Describe names a non-function declaration for diagnostics.
func Describe(d ast.Decl) string {
	switch d := d.(type) {
	case *ast.GenDecl:
		return d.Tok.String() + " declaration"
	case *ast.FuncDecl:
		return "function declaration"
	default:
		return "invalid declaration"
	}
}

// fieldName returns the i-th name of a field, or "" when the field is
// unnamed or the name is blank.
func fieldName(field *ast.Field, i int) string {
	if i >= len(field.Names) {
		return ""
	}

	if name := field.Names[i].Name; name != "_" {
		return name
	}

	return ""
}

func typeDesc(fn *decl.Func, expr ast.Expr) decl.TypeDesc {
	td := decl.TypeDesc{Text: fn.NodeText(expr), Expr: expr}

	t := unparen(expr)
	if ell, ok := t.(*ast.Ellipsis); ok {
		t = unparen(ell.Elt)
	}

	switch t.(type) {
	case *ast.StarExpr:
		td.Mode = decl.ByPointer
	case *ast.ChanType:
		td.Chan = true
	}

	return td
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.X
	}
}

func classify(stmt ast.Stmt) decl.Stmt {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if s.Tok == token.DEFINE {
			return &decl.LocalBinding{Stmt: s, Kind: decl.Define, Names: identNames(s.Lhs)}
		}
	case *ast.DeclStmt:
		if gd, ok := s.Decl.(*ast.GenDecl); ok && (gd.Tok == token.VAR || gd.Tok == token.CONST) {
			kind := decl.Var
			if gd.Tok == token.CONST {
				kind = decl.Const
			}

			var names []string
			for _, spec := range gd.Specs {
				if vs, ok := spec.(*ast.ValueSpec); ok {
					for _, n := range vs.Names {
						names = append(names, n.Name)
					}
				}
			}

			return &decl.LocalBinding{Stmt: s, Kind: kind, Names: names}
		}
	case *ast.ExprStmt:
		return &decl.ExprStmt{Stmt: s}
	}

	return &decl.OtherStmt{Stmt: stmt}
}

func identNames(exprs []ast.Expr) []string {
	names := make([]string, 0, len(exprs))

	for _, e := range exprs {
		if id, ok := e.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
	}

	return names
}
