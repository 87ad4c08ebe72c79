package detached

//purefunc:pure // want "purefunc: directive is not attached to a declaration"

func Spaced(x int) int {
	return x
}

func Inside(x int) int {
	//purefunc:pure // want "purefunc: directive is not attached to a declaration"
	y := x
	return y
}
