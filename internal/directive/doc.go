// Package directive finds //purefunc:pure directives.
//
// # Overview
//
// A directive marks the declaration on the line directly below it:
//
//	//purefunc:pure
//	func Add(a, b int) int {
//	    return a + b
//	}
//
// The directive takes no arguments. Text after " - " or " //" is a human
// comment and is not an argument:
//
//	//purefunc:pure - keeps pricing deterministic
//	//purefunc:pure // see pricing.md
//
// # Attachment
//
// [Map.Attached] looks up the directive for a declaration and marks it
// used. A directive left unused after all declarations were visited is
// attached to nothing (a blank line, a statement inside a body, the end of
// the file) and is reported by the analyzer.
//
// # Typos
//
// [IsTypo] flags comments within a small edit distance of the directive
// keyword, such as //purefunc:pur or //Purefunc:pure, which would otherwise
// be silently ignored.
package directive
