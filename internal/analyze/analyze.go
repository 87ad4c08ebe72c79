// Package analyze derives structural facts from a declaration and applies
// the purity policy to them.
package analyze

import (
	"github.com/mpyw/purefunc/internal/decl"
	"github.com/mpyw/purefunc/internal/diag"
)

// Facts is a read-only summary of a declaration's shape.
type Facts struct {
	HasReceiver                  bool
	HasMutableReferenceParameter bool
	IsAsynchronous               bool

	// ParamNames lists named parameters in declaration order.
	ParamNames []string
	// Variadic is true when the last parameter is variadic.
	Variadic bool
	// Unsupported holds indexes of parameters that are not a single identifier.
	Unsupported []int

	Statements int
	Locals     []*decl.LocalBinding
}

// Extract computes the facts of fn without judging them.
func Extract(fn *decl.Func) *Facts {
	f := &Facts{
		IsAsynchronous: fn.Async,
		Statements:     len(fn.Body),
	}

	for _, p := range fn.Params {
		switch p := p.(type) {
		case *decl.Receiver:
			f.HasReceiver = true
			if p.Mode() == decl.ByPointer {
				f.HasMutableReferenceParameter = true
			}
		case *decl.Named:
			if p.Type.Mode == decl.ByPointer {
				f.HasMutableReferenceParameter = true
			}
			if p.Name == "" {
				f.Unsupported = append(f.Unsupported, p.Index)
				continue
			}
			f.ParamNames = append(f.ParamNames, p.Name)
			f.Variadic = p.Variadic
		}
	}

	for _, s := range fn.Body {
		if lb, ok := s.(*decl.LocalBinding); ok {
			f.Locals = append(f.Locals, lb)
		}
	}

	return f
}

// Analyze applies the purity policy. The first violated rule wins.
func Analyze(fn *decl.Func) (*Facts, error) {
	f := Extract(fn)

	switch {
	case f.HasMutableReferenceParameter:
		return nil, diag.MutableArgument()
	case f.HasReceiver:
		return nil, diag.Receiver()
	case f.IsAsynchronous:
		return nil, diag.Async()
	case len(f.Unsupported) > 0:
		return nil, diag.Parameter(f.Unsupported[0])
	}

	return f, nil
}

// LocalNames flattens the names bound by top-level local bindings.
func (f *Facts) LocalNames() []string {
	var names []string

	for _, lb := range f.Locals {
		names = append(names, lb.Names...)
	}

	return names
}
