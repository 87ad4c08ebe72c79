package typo

//purefunc:pur // want `"purefunc:pur" looks like a misspelled //purefunc:pure directive`
func A(x int) int { return x }

//Purefunc:Pure // want `"Purefunc:Pure" looks like a misspelled //purefunc:pure directive`
func B(x int) int { return x }

//purefunc:purely // want `"purefunc:purely" looks like a misspelled //purefunc:pure directive`
func C(x int) int { return x }

// purefunc is a nice name, not a directive.
func D(x int) int { return x }

//go:noinline
func E(x int) int { return x }
