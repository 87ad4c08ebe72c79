package directive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantArgs string
		wantOk   bool
	}{
		{
			name:   "basic",
			text:   "//purefunc:pure",
			wantOk: true,
		},
		{
			name:   "leading space",
			text:   "// purefunc:pure",
			wantOk: true,
		},
		{
			name:   "comment dash",
			text:   "//purefunc:pure - keeps pricing deterministic",
			wantOk: true,
		},
		{
			name:   "dash only",
			text:   "//purefunc:pure -",
			wantOk: true,
		},
		{
			name:   "inline comment",
			text:   "//purefunc:pure // see pricing.md",
			wantOk: true,
		},
		{
			name:     "arguments",
			text:     "//purefunc:pure foo",
			wantArgs: "foo",
			wantOk:   true,
		},
		{
			name:     "arguments with comment",
			text:     "//purefunc:pure foo, bar - why",
			wantArgs: "foo, bar",
			wantOk:   true,
		},
		{
			name:   "longer keyword",
			text:   "//purefunc:purely",
			wantOk: false,
		},
		{
			name:   "block comment",
			text:   "/*purefunc:pure*/",
			wantOk: false,
		},
		{
			name:   "regular comment",
			text:   "// regular comment",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, ok := Parse(tt.text)
			if ok != tt.wantOk {
				t.Errorf("Parse() ok = %v, want %v", ok, tt.wantOk)
			}
			if args != tt.wantArgs {
				t.Errorf("Parse() args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestIsTypo(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"//purefunc:pur", true},
		{"//purefunc:puer", true},
		{"//Purefunc:Pure", true},
		{"//purfunc:pure", true},
		{"//purefunc:purely", true},
		{"//purefunc:pure", false},
		{"// purefunc:pure", false},
		{"//go:generate stringer", false},
		{"//nolint:errcheck", false},
		{"// purefunc is the name of this tool", false},
		{"//", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsTypo(tt.text); got != tt.want {
				t.Errorf("IsTypo(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

const src = `package p

//purefunc:pure
func A() {}

//purefunc:pure

func B() {}

//purefunc:pure
type T struct{}

func C() {
	//purefunc:pure
	_ = 1
}
`

func TestBuildAndAttach(t *testing.T) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	m := Build(fset, file)
	if len(m) != 4 {
		t.Fatalf("Build() found %d directives, want 4", len(m))
	}

	var attached []string

	for _, d := range file.Decls {
		if m.Attached(fset, d) == nil {
			continue
		}

		switch d := d.(type) {
		case *ast.FuncDecl:
			attached = append(attached, d.Name.Name)
		case *ast.GenDecl:
			attached = append(attached, d.Tok.String())
		}
	}

	if len(attached) != 2 || attached[0] != "A" || attached[1] != "type" {
		t.Errorf("attached = %v, want [A type]", attached)
	}

	unused := m.Unused()
	if len(unused) != 2 {
		t.Fatalf("Unused() = %d directives, want 2", len(unused))
	}

	if unused[0].Line != 6 || unused[1].Line != 14 {
		t.Errorf("Unused() lines = %d, %d, want 6, 14", unused[0].Line, unused[1].Line)
	}
}

func TestTypos(t *testing.T) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "p.go", "package p\n\n//purefunc:pur\nfunc A() {}\n", parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	typos := Typos(file)
	if len(typos) != 1 || typos[0].Word != "purefunc:pur" {
		t.Errorf("Typos() = %+v, want one typo for purefunc:pur", typos)
	}
}
