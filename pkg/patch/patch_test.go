// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package patch_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longboxhq/longbox/pkg/patch"
)

type payload struct {
	Title patch.Field[string] `json:"title"`
	Year  patch.Field[int64]  `json:"year"`
}

/*
TestField_ThreeStates decodes the same struct from payloads where a field is
omitted, null, and set, and checks each state is distinguishable.
*/
func TestField_ThreeStates(t *testing.T) {
	t.Run("omitted", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

		assert.False(t, p.Title.IsSet())
		assert.False(t, p.Title.IsNull())
		_, ok := p.Title.Value()
		assert.False(t, ok)
		assert.Nil(t, p.Title.Ptr())
	})

	t.Run("explicit_null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title": null}`), &p))

		assert.True(t, p.Title.IsSet())
		assert.True(t, p.Title.IsNull())
		_, ok := p.Title.Value()
		assert.False(t, ok)
		assert.Nil(t, p.Title.Ptr())
	})

	t.Run("set", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title": "Saga", "year": 2012}`), &p))

		assert.True(t, p.Title.IsSet())
		assert.False(t, p.Title.IsNull())

		title, ok := p.Title.Value()
		require.True(t, ok)
		assert.Equal(t, "Saga", title)

		require.NotNil(t, p.Year.Ptr())
		assert.Equal(t, int64(2012), *p.Year.Ptr())
	})

	t.Run("empty_string_is_a_value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title": ""}`), &p))

		title, ok := p.Title.Value()
		require.True(t, ok)
		assert.Equal(t, "", title)
	})
}

/*
TestField_TypeMismatch verifies that a wrongly typed value fails decoding
instead of being coerced.
*/
func TestField_TypeMismatch(t *testing.T) {
	var p payload
	err := json.Unmarshal([]byte(`{"year": "twenty"}`), &p)
	assert.Error(t, err)
}

/*
TestConstructors covers the programmatic Set and Null helpers used by
service-level tests.
*/
func TestConstructors(t *testing.T) {
	set := patch.Set("x")
	assert.True(t, set.IsSet())
	assert.False(t, set.IsNull())

	null := patch.Null[string]()
	assert.True(t, null.IsSet())
	assert.True(t, null.IsNull())
	assert.Nil(t, null.Ptr())

	var zero patch.Field[string]
	assert.False(t, zero.IsSet())
}
