package entities

import "encoding/json"

// Null holds a value that may be absent. The zero value is null.
type Null[T any] struct {
	V     T
	Valid bool
}

// Some wraps v as a present value.
func Some[T any](v T) Null[T] {
	return Null[T]{V: v, Valid: true}
}

// Get returns the value and whether it is present.
func (n Null[T]) Get() (T, bool) {
	return n.V, n.Valid
}

func (n Null[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.V)
}
