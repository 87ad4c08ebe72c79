package typooff

//purefunc:pur
func A(x int) int { return x }

//Purefunc:Pure
func B(x int) int { return x }
