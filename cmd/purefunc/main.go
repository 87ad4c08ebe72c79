// Command purefunc is a linter that checks functions marked //purefunc:pure
// and, with -fix, encapsulates their bodies.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/purefunc"
)

func main() {
	singlechecker.Main(purefunc.Analyzer)
}
