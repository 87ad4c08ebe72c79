package main

import "fmt"

func main() {
	n := 1
	bump(&n)
	fmt.Println(n)
}

//purefunc:pure
func bump(n *int) {
	*n++
}
