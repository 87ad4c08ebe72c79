package fail

type Test struct {
	i1 uint32
}

//purefunc:pure // want "purefunc: function with receiver is not supported"
func (t Test) Value() uint32 {
	return t.i1 + 1
}

//purefunc:pure // want "purefunc: function with mutable arguments is not supported"
func (t *Test) Bump() uint32 {
	t.i1++
	return t.i1
}

//purefunc:pure // want "purefunc: function with mutable arguments is not supported"
func Exclaim(s *string) {
	*s += "!"
}

//purefunc:pure // want "purefunc: function with mutable arguments is not supported"
func Reset(counts ...*int) {
	for _, c := range counts {
		*c = 0
	}
}

//purefunc:pure // want "purefunc: function returning a channel is not supported"
func Later(x int) <-chan int {
	ch := make(chan int, 1)
	ch <- x
	return ch
}

//purefunc:pure foo // want `purefunc: directive takes no arguments, found "foo"`
func WithArgs(x int) int {
	return x
}

//purefunc:pure // want "purefunc: parameter 1 must be a single named identifier"
func Blank(_ int, y int) int {
	return y
}

//purefunc:pure // want "purefunc: directive must be attached to a function declaration, found type declaration"
type Config struct{}

//purefunc:pure // want "purefunc: directive must be attached to a function declaration, found var declaration"
var Default = Config{}

//purefunc:pure bar // want `purefunc: directive takes no arguments, found "bar"`
const Limit = 10
