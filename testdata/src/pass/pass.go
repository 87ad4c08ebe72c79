package pass

const Global = 1

//purefunc:pure // want "purefunc: add is not encapsulated"
func add(i1 uint32) uint32 {
	return i1 + 1
}

// WithGlobal reads a package constant, which the policy does not look at.
//
//purefunc:pure // want "purefunc: WithGlobal is not encapsulated"
func WithGlobal(i1 uint32) uint32 {
	return i1 + Global
}

//purefunc:pure // want "purefunc: Concat is not encapsulated"
func Concat(sep string, parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p // keep order
	}
	return out
}

//purefunc:pure // want "purefunc: Noop is not encapsulated"
func Noop(x int) {
	_ = x
}

//purefunc:pure // want "purefunc: Swap is not encapsulated"
func Swap(a, b string) (string, string) {
	return b, a
}

//purefunc:pure // want "purefunc: Map is not encapsulated"
func Map[T, U any](xs []T, f func(T) U) []U {
	ys := make([]U, 0, len(xs))
	for _, x := range xs {
		ys = append(ys, f(x))
	}
	return ys
}

// Sub is already encapsulated.
//
//purefunc:pure
func Sub(a, b int) int {
	sub := func(a, b int) int {
		return a - b
	}
	return sub(a, b)
}

func plain(p *int) {
	*p++
}
