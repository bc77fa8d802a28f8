package shared

import (
	"encoding/json"
)

// Optional distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present; Null is true when its value
// was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. encoding/json only calls it
// for keys present in the input, so an untouched Optional means "absent".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
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

// Ptr returns a pointer to the value when it was provided and non-null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
