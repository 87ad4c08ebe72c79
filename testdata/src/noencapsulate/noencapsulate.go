package noencapsulate

//purefunc:pure
func Add(a, b int) int {
	return a + b
}

//purefunc:pure // want "purefunc: function with mutable arguments is not supported"
func Inc(p *int) int {
	*p++
	return *p
}
