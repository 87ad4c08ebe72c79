package expand

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/purefunc/internal/diag"
)

func TestExpandAccepted(t *testing.T) {
	res := Expand("", []byte("func test(i1 uint32) uint32 {\n\treturn i1 + 1\n}"))

	require.NoError(t, res.Err())
	assert.True(t, res.OK())
	assert.Equal(t, Synthesized, res.State)
	assert.Nil(t, res.Diagnostic)
	assert.Equal(t, []string{"i1"}, res.Facts.ParamNames)
	assert.Equal(t, `func test(i1 uint32) uint32 {
	test := func(i1 uint32) uint32 {
		return i1 + 1
	}
	return test(i1)
}
`, string(res.Output))
}

func TestExpandKeepsLeadingComments(t *testing.T) {
	src := "// Add adds two ints.\n//\n//purefunc:pure\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"

	res := Expand("", []byte(src))

	require.True(t, res.OK())
	assert.Equal(t, `// Add adds two ints.
//
//purefunc:pure
func Add(a, b int) int {
	add := func(a, b int) int {
		return a + b
	}
	return add(a, b)
}
`, string(res.Output))
}

func TestExpandFailures(t *testing.T) {
	tests := []struct {
		name string
		args string
		src  string
		want *diag.Diagnostic
	}{
		{
			name: "immutable receiver",
			src:  "func (t Test) test() uint32 {\n\treturn t.i1 + 1\n}",
			want: diag.ErrReceiverNotAllowed,
		},
		{
			name: "mutable receiver",
			src:  "func (t *Test) test() uint32 {\n\treturn t.i1 + 1\n}",
			want: diag.ErrMutableArgumentNotAllowed,
		},
		{
			name: "mutable argument",
			src:  "func test(i1 *string) {\n\t*i1 += \"!\"\n}",
			want: diag.ErrMutableArgumentNotAllowed,
		},
		{
			name: "async",
			src:  "func test() <-chan int {\n\treturn nil\n}",
			want: diag.ErrAsyncNotAllowed,
		},
		{
			name: "arguments",
			args: "foo",
			src:  "func test(i1 uint32) uint32 {\n\treturn i1\n}",
			want: diag.ErrUnexpectedArguments,
		},
		{
			name: "not a function",
			src:  "type Test struct{ i1 uint32 }",
			want: diag.ErrNotAFunction,
		},
		{
			name: "unsupported parameter",
			src:  "func test(_ uint32) {}",
			want: diag.ErrUnsupportedParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Expand(tt.args, []byte(tt.src))

			assert.Equal(t, Failed, res.State)
			assert.False(t, res.OK())
			require.ErrorIs(t, res.Err(), tt.want)
			assert.Equal(t, tt.src, string(res.Output), "original must be kept unmodified")
		})
	}
}

func TestExpandArgumentsCheckedFirst(t *testing.T) {
	res := Expand("foo", []byte("func (t *Test) test() {}"))
	assert.ErrorIs(t, res.Err(), diag.ErrUnexpectedArguments)

	res = Expand("foo", []byte("type T struct{}"))
	assert.ErrorIs(t, res.Err(), diag.ErrUnexpectedArguments)
}

func TestExpandDecl(t *testing.T) {
	src := []byte(`package p

// Add adds.
func Add(a, b int) int {
	return a + b
}

func (t T) Bad() {}
`)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	add := file.Decls[0].(*ast.FuncDecl)
	bad := file.Decls[1].(*ast.FuncDecl)

	res := ExpandDecl(fset, src, "", add)
	require.True(t, res.OK())
	assert.Contains(t, string(res.Output), "return add(a, b)")
	assert.NotContains(t, string(res.Output), "// Add adds.", "doc comment stays outside the replaced range")

	res = ExpandDecl(fset, src, "", bad)
	require.ErrorIs(t, res.Err(), diag.ErrReceiverNotAllowed)
	assert.Equal(t, "func (t T) Bad() {}", string(res.Output))

	res = ExpandDecl(fset, src, "x", add)
	require.ErrorIs(t, res.Err(), diag.ErrUnexpectedArguments)
	assert.Equal(t, Failed, res.State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "start", Start.String())
	assert.Equal(t, "parsed", Parsed.String())
	assert.Equal(t, "analyzed", Analyzed.String())
	assert.Equal(t, "synthesized", Synthesized.String())
	assert.Equal(t, "failed", Failed.String())
}
