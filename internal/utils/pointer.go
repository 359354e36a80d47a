package utils

// Ptr returns a pointer to the passed value.
func Ptr[T any](t T) *T {
	return &t
}

// Deref returns the pointed-to value, or the zero value for a nil pointer.
func Deref[T any](t *T) T {
	if t == nil {
		var v T
		return v
	}
	return *t
}
