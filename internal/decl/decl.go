// Package decl holds the structured form of an annotated function declaration.
package decl

import (
	"go/ast"
	"go/token"
)

// Mode is how a value reaches the function.
type Mode int

const (
	// ByValue copies the value.
	ByValue Mode = iota
	// ByPointer shares the value and lets the callee mutate it.
	ByPointer
)

func (m Mode) String() string {
	if m == ByPointer {
		return "pointer"
	}

	return "value"
}

// TypeDesc describes a parameter or result type.
type TypeDesc struct {
	Text string // verbatim source
	Mode Mode
	Chan bool // channel type of any direction
	Expr ast.Expr
}

// Param is either *Receiver or *Named.
type Param interface {
	param()
}

// Receiver is the method receiver.
type Receiver struct {
	Name string // empty when omitted or "_"
	Type TypeDesc
}

// Named is an ordinary parameter. A field declaring several names
// ("a, b int") yields one Named per name.
type Named struct {
	Name     string // empty when unnamed or "_"
	Type     TypeDesc
	Variadic bool
	Index    int // position among named parameters
}

func (*Receiver) param() {}
func (*Named) param()    {}

// Mode returns the receiver mode.
func (r *Receiver) Mode() Mode { return r.Type.Mode }

// BindingKind tells how a local name was introduced.
type BindingKind int

const (
	Define BindingKind = iota // x := ...
	Var                       // var x ...
	Const                     // const x ...
)

func (k BindingKind) String() string {
	switch k {
	case Var:
		return "var"
	case Const:
		return "const"
	default:
		return "define"
	}
}

// Stmt is one of *LocalBinding, *ExprStmt or *OtherStmt.
type Stmt interface {
	Node() ast.Stmt
	stmt()
}

// LocalBinding introduces local names.
type LocalBinding struct {
	Stmt  ast.Stmt
	Kind  BindingKind
	Names []string
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	Stmt *ast.ExprStmt
}

// OtherStmt is any other statement.
type OtherStmt struct {
	Stmt ast.Stmt
}

func (s *LocalBinding) Node() ast.Stmt { return s.Stmt }
func (s *ExprStmt) Node() ast.Stmt     { return s.Stmt }
func (s *OtherStmt) Node() ast.Stmt    { return s.Stmt }

func (*LocalBinding) stmt() {}
func (*ExprStmt) stmt()     {}
func (*OtherStmt) stmt()    {}

// Func is a parsed function declaration together with the source it came from.
type Func struct {
	Name     string
	Exported bool
	Params   []Param // receiver first, if any
	Results  []TypeDesc
	Async    bool
	Body     []Stmt

	Decl *ast.FuncDecl
	Fset *token.FileSet
	src  []byte
	base int // file offset of src[0]
}

// New wraps a declaration. src holds the file content starting at file offset base.
func New(fset *token.FileSet, src []byte, base int, fd *ast.FuncDecl) *Func {
	return &Func{Decl: fd, Fset: fset, src: src, base: base}
}

// Text returns the verbatim source between two positions.
func (f *Func) Text(from, to token.Pos) string {
	start := f.Fset.Position(from).Offset - f.base
	end := f.Fset.Position(to).Offset - f.base

	if start < 0 || end > len(f.src) || start > end {
		return ""
	}

	return string(f.src[start:end])
}

// NodeText returns the verbatim source of a node.
func (f *Func) NodeText(n ast.Node) string {
	return f.Text(n.Pos(), n.End())
}

// Source returns the whole declaration as written, without its doc comment.
func (f *Func) Source() string {
	return f.NodeText(f.Decl)
}

// Receiver returns the receiver, or nil for a plain function.
func (f *Func) Receiver() *Receiver {
	for _, p := range f.Params {
		if r, ok := p.(*Receiver); ok {
			return r
		}
	}

	return nil
}

// Named returns the non-receiver parameters in declaration order.
func (f *Func) Named() []*Named {
	var named []*Named

	for _, p := range f.Params {
		if n, ok := p.(*Named); ok {
			named = append(named, n)
		}
	}

	return named
}
