package main

import "fmt"

func main() {
	fmt.Println(Add(1, 2))
}

//purefunc:pure
func Add(a, b int) int {
	add := func(a, b int) int {
		return a + b
	}
	return add(a, b)
}
