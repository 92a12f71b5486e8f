// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package patch provides the optional-field primitive for sparse updates.
//
// # Overview
//
// A JSON PATCH body must distinguish three states per field: omitted (leave
// the stored value untouched), explicitly null (clear a nullable column),
// and set (write the new value). Plain Go pointers collapse the first two,
// so update payloads declare their fields as [Field] values instead.
//
// The zero Field is "omitted". Unmarshaling marks the field set; a JSON
// null additionally marks it null. Storage layers build their UPDATE SET
// clauses from set fields only, which keeps a sparse update a single
// statement and therefore atomic with respect to concurrent patches of
// disjoint fields.
package patch

import "encoding/json"

// Field wraps a value of type T with set/null state tracked from JSON input.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a Field carrying the given value. Intended for tests and
// internal callers that build patches programmatically.
func Set[T any](value T) Field[T] {
	return Field[T]{value: value, set: true}
}

// Null returns a Field that clears the target column.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was explicitly null in the payload.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Value returns the decoded value and whether it carries one
// (set and not null).
func (f Field[T]) Value() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Ptr returns the value as a pointer suitable for a nullable SQL parameter:
// nil when the field is null (or unset), the decoded value otherwise.
func (f Field[T]) Ptr() *T {
	if !f.set || f.null {
		return nil
	}
	v := f.value
	return &v
}

// UnmarshalJSON implements [json.Unmarshaler]. It is only invoked for keys
// present in the payload, so an absent key leaves the zero (unset) Field.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if string(data) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.value)
}
