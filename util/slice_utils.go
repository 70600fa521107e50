package util

func Pop[T any](slice *[]T) {
	*slice = (*slice)[:len(*slice)-1]
}

// Last returns the last element, the slice must not be empty.
func Last[T any](slice []T) T {
	return slice[len(slice)-1]
}
