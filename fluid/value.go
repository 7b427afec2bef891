package fluid

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// NotAvailable is the marker reported for a property with no value at the
// query point.
const NotAvailable = "n/a"

// Value is a property result: either a number or NotAvailable.
type Value struct {
	v  float64
	ok bool
}

// Number returns an available value.
func Number(v float64) Value {
	return Value{v: v, ok: true}
}

// NA returns the not-available value.
func NA() Value {
	return Value{v: math.NaN()}
}

// Float returns the number and whether it is available.
func (v Value) Float() (float64, bool) {
	return v.v, v.ok
}

// Available reports whether v holds a number.
func (v Value) Available() bool {
	return v.ok
}

func (v Value) String() string {
	if !v.ok {
		return NotAvailable
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes available values as numbers and the rest as "n/a".
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts a number or the "n/a" marker.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == NotAvailable {
		*v = NA()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Number(f)
	return nil
}

// Result maps property keys to values.
type Result map[string]Value

// Keys returns the result's properties in sorted order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
