package common

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Take returns at most n leading elements of the slice.
func Take[S ~[]E, E any](s S, n int) S {
	if n < 0 || len(s) <= n {
		return s
	}

	return s[:n]
}
