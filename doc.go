// Package purefunc provides a go/analysis based analyzer that checks
// functions marked //purefunc:pure against a purity policy and
// encapsulates their bodies behind a forwarding shim.
//
// # Architecture Overview
//
//	                    +------------------+      +--------------------+
//	                    |   analyzer.go    |      | cmd/purefuncgen    |
//	                    | (go/analysis)    |      | (expand/check/     |
//	                    +--------+---------+      |  rewrite/watch)    |
//	                             |                +---------+----------+
//	                             |                          |
//	                             |                +---------v----------+
//	                             |                |  internal/rewrite  |  whole files
//	                             |                +---------+----------+
//	                             |                          |
//	                    +--------v--------------------------v+
//	                    |          internal/expand          |  Start -> Parsed ->
//	                    +--------+-------------+------------+   Analyzed -> Synthesized
//	                             |             |            |
//	                      +------v---+  +------v----+  +----v-----+
//	                      |  parse   |  |  analyze  |  |  synth   |
//	                      +------+---+  +------+----+  +----+-----+
//	                             |             |            |
//	                             +------+------+------------+
//	                                    |
//	                          +---------v---------+
//	                          |  decl  /  diag    |  shared model and errors
//	                          +-------------------+
//
// # Policy
//
// A marked function is rejected when, checked in this order:
//
//  1. a parameter or the receiver is a pointer (MutableArgumentNotAllowed)
//  2. it has a receiver at all (ReceiverNotAllowed)
//  3. it returns a channel (AsyncNotAllowed)
//  4. a parameter is blank or unnamed (UnsupportedParameter)
//
// The directive itself takes no arguments (UnexpectedArguments) and must sit
// on the line directly above a function declaration (NotAFunction).
//
// # Encapsulation
//
// An accepted function keeps its signature, and its body moves into a local
// closure that the function forwards to:
//
//	//purefunc:pure
//	func Add(a, b int) int {
//		add := func(a, b int) int {
//			return a + b
//		}
//		return add(a, b)
//	}
//
// The analyzer reports functions that do not have this shape yet and offers
// the rewrite as a suggested fix; purefuncgen applies it to files directly.
package purefunc
