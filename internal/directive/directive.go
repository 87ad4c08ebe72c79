package directive

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Name is the directive keyword, written as //purefunc:pure.
const Name = "purefunc:pure"

// maxTypoDistance bounds the edit distance at which a comment is taken
// for a misspelled directive.
const maxTypoDistance = 2

// Directive is one //purefunc:pure comment.
type Directive struct {
	Pos  token.Pos
	Line int
	Args string
	used bool
}

// Map tracks directives by line number.
type Map map[int]*Directive

// Typo is a comment that looks like a misspelled directive.
type Typo struct {
	Pos  token.Pos
	Word string // the misspelled keyword
}

// Build scans a file for directives.
func Build(fset *token.FileSet, file *ast.File) Map {
	m := make(Map)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if args, ok := Parse(c.Text); ok {
				line := fset.Position(c.Pos()).Line
				m[line] = &Directive{Pos: c.Pos(), Line: line, Args: args}
			}
		}
	}

	return m
}

// Parse parses a directive comment and returns its arguments.
// Returns false if text is not a directive.
//
// Supported formats:
//   - //purefunc:pure
//   - //purefunc:pure - reason       -> no arguments, human comment
//   - //purefunc:pure // comment     -> no arguments, human comment
//   - //purefunc:pure foo            -> arguments "foo" (rejected later)
func Parse(text string) (string, bool) {
	if !strings.HasPrefix(text, "//") {
		return "", false
	}

	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))

	if !strings.HasPrefix(text, Name) {
		return "", false
	}

	rest := strings.TrimPrefix(text, Name)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false // e.g. //purefunc:purely
	}

	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "- ") || rest == "-" {
		return "", true
	}

	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}

	return strings.TrimSpace(rest), true
}

// Attached returns the directive on the line directly above d and marks it
// used. Returns nil if there is none.
func (m Map) Attached(fset *token.FileSet, d ast.Decl) *Directive {
	line := fset.Position(d.Pos()).Line

	dir, ok := m[line-1]
	if !ok {
		return nil
	}

	dir.used = true

	return dir
}

// Unused returns directives not attached to any declaration, in source order.
func (m Map) Unused() []*Directive {
	var unused []*Directive

	for _, d := range m {
		if !d.used {
			unused = append(unused, d)
		}
	}

	sort.Slice(unused, func(i, j int) bool {
		return unused[i].Pos < unused[j].Pos
	})

	return unused
}

// Typos finds comments that are probably misspelled directives.
func Typos(file *ast.File) []Typo {
	var typos []Typo

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if IsTypo(c.Text) {
				word := strings.Fields(strings.TrimPrefix(c.Text, "//"))[0]
				typos = append(typos, Typo{Pos: c.Pos(), Word: word})
			}
		}
	}

	return typos
}

// IsTypo reports whether a comment is close to, but not, a directive.
func IsTypo(text string) bool {
	if _, ok := Parse(text); ok {
		return false
	}

	if !strings.HasPrefix(text, "//") {
		return false
	}

	fields := strings.Fields(strings.TrimPrefix(text, "//"))
	if len(fields) == 0 {
		return false
	}

	word := fields[0]
	if !strings.Contains(word, ":") {
		return false
	}

	lower := strings.ToLower(word)
	if lower == Name {
		return true
	}

	distance := edlib.LevenshteinDistance(lower, Name)

	return distance > 0 && distance <= maxTypoDistance
}
