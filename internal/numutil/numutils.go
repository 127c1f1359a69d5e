package numutil

func FirstAboveZero[N ~int | ~int8 | ~int16 | ~int32 | ~int64](nums ...N) N {
	for _, num := range nums {
		if num > 0 {
			return num
		}
	}
	return N(0)
}

// Clamp limits num to the closed interval [lo, hi]. When hi is below lo,
// lo wins.
func Clamp[N ~int | ~int8 | ~int16 | ~int32 | ~int64](num, lo, hi N) N {
	if num > hi {
		num = hi
	}
	if num < lo {
		num = lo
	}
	return num
}
