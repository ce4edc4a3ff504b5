package ptr

// Of returns a pointer to a copy of v.
func Of[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for the empty string so optional wire fields stay absent.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
