// Package diag defines the diagnostics reported when a function cannot be
// made pure.
package diag

import (
	"errors"
	"fmt"
)

// Kind identifies why a declaration was rejected.
type Kind string

// Diagnostic kinds.
const (
	UnexpectedArguments       Kind = "unexpected_arguments"
	NotAFunction              Kind = "not_a_function"
	MutableArgumentNotAllowed Kind = "mutable_argument_not_allowed"
	ReceiverNotAllowed        Kind = "receiver_not_allowed"
	AsyncNotAllowed           Kind = "async_not_allowed"
	UnsupportedParameter      Kind = "unsupported_parameter"
)

// Sentinels for errors.Is.
var (
	ErrUnexpectedArguments       = &Diagnostic{Kind: UnexpectedArguments}
	ErrNotAFunction              = &Diagnostic{Kind: NotAFunction}
	ErrMutableArgumentNotAllowed = &Diagnostic{Kind: MutableArgumentNotAllowed}
	ErrReceiverNotAllowed        = &Diagnostic{Kind: ReceiverNotAllowed}
	ErrAsyncNotAllowed           = &Diagnostic{Kind: AsyncNotAllowed}
	ErrUnsupportedParameter      = &Diagnostic{Kind: UnsupportedParameter}
)

// Prefix starts every diagnostic message.
const Prefix = "purefunc: "

// Diagnostic is a rejection of the annotated declaration as a whole.
// It carries no position; callers anchor it at the directive.
type Diagnostic struct {
	Kind    Kind
	Message string
}

// New creates a diagnostic with a formatted message.
func New(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: Prefix + fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Message == "" {
		return Prefix + string(d.Kind)
	}

	return d.Message
}

// Is matches any diagnostic of the same kind.
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	if !ok {
		return false
	}

	return t.Kind == d.Kind
}

// As extracts a *Diagnostic from err.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}

	return nil, false
}

// Constructors for each kind, holding the message texts in one place.

func Arguments(args string) *Diagnostic {
	return New(UnexpectedArguments, "directive takes no arguments, found %q", args)
}

func NotFunction(what string) *Diagnostic {
	return New(NotAFunction, "directive must be attached to a function declaration, found %s", what)
}

func Detached() *Diagnostic {
	return New(NotAFunction, "directive is not attached to a declaration")
}

func Syntax(err error) *Diagnostic {
	return New(NotAFunction, "cannot parse declaration: %v", err)
}

func MutableArgument() *Diagnostic {
	return New(MutableArgumentNotAllowed, "function with mutable arguments is not supported")
}

func Receiver() *Diagnostic {
	return New(ReceiverNotAllowed, "function with receiver is not supported")
}

func Async() *Diagnostic {
	return New(AsyncNotAllowed, "function returning a channel is not supported")
}

func Parameter(index int) *Diagnostic {
	return New(UnsupportedParameter, "parameter %d must be a single named identifier", index+1)
}
