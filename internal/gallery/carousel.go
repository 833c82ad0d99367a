package gallery

// NextIndex returns the index after i in a ring of n items.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PrevIndex returns the index before i in a ring of n items.
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// ClampIndex bounds i to [0, n-1]; it returns 0 for an empty ring.
func ClampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
