package dss

import (
	"encoding/json"
	"math"
)

// Value is a criterion value. Non-finite values (a listing without coordinates
// has an infinite distance) encode as JSON null.
type Value float64

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON maps null back to +Inf
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}
