package domain

// Optional is a patch value: Set marks the key as supplied and a nil Value means null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a supplied, non-null value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a supplied null value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
