// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package vartype provides optional value wrappers for forecast fields that the
// API does not deliver for every sample.
package vartype

import (
	"encoding/json"
	"fmt"
)

// VarFloat64 is an optional float64, used for fields like the probability of precipitation.
type VarFloat64 = Variable[float64]

// Variable holds a value and tracks whether it was ever set.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable returns a Variable that is set to value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// Value returns the stored value, or the zero value of T if unset.
func (v Variable[T]) Value() T {
	return v.value
}

// ValueOr returns the stored value if set, otherwise fallback.
func (v Variable[T]) ValueOr(fallback T) T {
	if !v.isset {
		return fallback
	}
	return v.value
}

// Set assigns val and marks the Variable as set.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// Reset clears the value and marks the Variable as unset.
func (v *Variable[T]) Reset() {
	var zero T
	v.value = zero
	v.isset = false
}

func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String returns "n/a" for unset variables.
func (v Variable[T]) String() string {
	if !v.isset {
		return "n/a"
	}
	return fmt.Sprint(v.value)
}

// MarshalJSON encodes an unset Variable as null.
func (v Variable[T]) MarshalJSON() ([]byte, error) {
	if !v.isset {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON treats null as unset.
func (v *Variable[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.Reset()
		return nil
	}
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return fmt.Errorf("failed to unmarshal optional value: %w", err)
	}
	v.Set(val)
	return nil
}
