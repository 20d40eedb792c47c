// Package patch models optional fields in partial-update request bodies.
//
// A Field distinguishes three states that a plain pointer cannot: the key was
// absent from the body, the key was present with a JSON null, or the key was
// present with a value.
package patch

import "encoding/json"

// Field is a single optional value in a partial update.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a present, non-null Field.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a present Field carrying an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Present reports whether the field was supplied with a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// UnmarshalJSON only runs when the key exists in the body, which is what
// marks the field as set.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders absent and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
