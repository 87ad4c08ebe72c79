package filefilter

type T struct{}

//purefunc:pure // want "purefunc: function with receiver is not supported"
func (T) Bad() int {
	return 1
}
