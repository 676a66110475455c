// Package optional provides a JSON field wrapper that tells apart a missing
// key, an explicit null and a value, for partial updates.
package optional

import "encoding/json"

type Value[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Value: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// UnmarshalJSON only runs when the key is present in the payload.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports whether the key was present with a non-null value.
func (o Value[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr returns nil for an explicit null and a pointer to the value otherwise.
func (o Value[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// IsSet reports whether the key was present, null or not.
func (o Value[T]) IsSet() bool {
	return o.Set
}

// IsNull reports an explicit null.
func (o Value[T]) IsNull() bool {
	return o.Set && o.Null
}

// Any returns the wrapped value as an interface, for reflection-based callers.
func (o Value[T]) Any() interface{} {
	return o.Value
}
