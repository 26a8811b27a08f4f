// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertRange(t *testing.T) {
	t.Run("empty_range", func(t *testing.T) {
		rb := New()
		rb.InsertRange(10, 10) // half-open, lo == hi
		assert.Equal(t, 0, rb.Count())

		rb.InsertRange(10, 5) // lo > hi
		assert.Equal(t, 0, rb.Count())
	})

	t.Run("single_container_array", func(t *testing.T) {
		rb := New()
		rb.InsertRange(5, 10) // [5, 10)
		assert.Equal(t, 5, rb.Count())
		for v := uint32(5); v < 10; v++ {
			assert.True(t, rb.Contains(v))
		}
		assert.False(t, rb.Contains(4))
		assert.False(t, rb.Contains(10))
	})

	t.Run("splice_over_existing_values", func(t *testing.T) {
		rb := New()
		rb.Set(0)
		rb.Set(3)
		rb.Set(20)
		rb.InsertRange(1, 10) // [1, 10)

		assert.True(t, rb.Contains(0))
		for v := uint32(1); v < 10; v++ {
			assert.True(t, rb.Contains(v))
		}
		assert.True(t, rb.Contains(20))
		assert.Equal(t, 12, rb.Count())
	})

	t.Run("idempotent_on_dense_range", func(t *testing.T) {
		rb := New()
		rb.InsertRange(100, 200)
		before := rb.Count()
		rb.InsertRange(100, 200)
		assert.Equal(t, before, rb.Count())
	})

	t.Run("across_container_boundary", func(t *testing.T) {
		rb := New()
		rb.InsertRange(65530, 65540)
		for v := uint32(65530); v < 65540; v++ {
			assert.True(t, rb.Contains(v))
		}
		assert.Equal(t, 10, rb.Count())
	})

	// Scenario 2 from the concrete end-to-end set: insert_range(0..=65536)
	// on an empty bitmap produces a full Bitmap container (key 0) plus a
	// one-value Array container (key 1).
	t.Run("full_container_then_one_extra", func(t *testing.T) {
		rb := New()
		rb.InsertRange(0, 65537) // inclusive 0..=65536
		assert.Equal(t, 65537, rb.Count())

		min, ok := rb.Min()
		assert.True(t, ok)
		assert.Equal(t, uint32(0), min)

		max, ok := rb.Max()
		assert.True(t, ok)
		assert.Equal(t, uint32(65536), max)

		assert.Equal(t, 2, len(rb.containers))
		assert.Equal(t, uint16(0), rb.index[0])
		assert.Equal(t, typeBitmap, rb.containers[0].Type)
		assert.Equal(t, uint32(65536), rb.containers[0].Size)
		assert.Equal(t, uint16(1), rb.index[1])
		assert.Equal(t, typeArray, rb.containers[1].Type)
		assert.Equal(t, uint32(1), rb.containers[1].Size)
	})

	t.Run("large_range_creates_bitmap", func(t *testing.T) {
		rb := New()
		rb.InsertRange(0, 5000)
		assert.Equal(t, typeBitmap, rb.containers[0].Type)
		assert.Equal(t, 5000, rb.Count())
	})
}

func TestRemoveRange(t *testing.T) {
	t.Run("empty_range", func(t *testing.T) {
		rb := New()
		rb.InsertRange(0, 100)
		before := rb.Count()
		rb.RemoveRange(50, 50)
		assert.Equal(t, before, rb.Count())
	})

	t.Run("removes_subrange", func(t *testing.T) {
		rb := New()
		rb.InsertRange(0, 100)
		rb.RemoveRange(20, 40) // [20, 40)
		for v := uint32(0); v < 20; v++ {
			assert.True(t, rb.Contains(v))
		}
		for v := uint32(20); v < 40; v++ {
			assert.False(t, rb.Contains(v))
		}
		for v := uint32(40); v < 100; v++ {
			assert.True(t, rb.Contains(v))
		}
		assert.Equal(t, 80, rb.Count())
	})

	t.Run("removes_entire_container_and_drops_it", func(t *testing.T) {
		rb := New()
		rb.Set(5)
		rb.Set(70000)
		rb.RemoveRange(0, 65536) // whole first container's key-space
		assert.False(t, rb.Contains(5))
		assert.True(t, rb.Contains(70000))
		assert.Equal(t, 1, len(rb.containers))
	})

	t.Run("demotes_bitmap_to_array", func(t *testing.T) {
		rb := New()
		rb.InsertRange(0, 5000)
		assert.Equal(t, typeBitmap, rb.containers[0].Type)

		rb.RemoveRange(10, 5000)
		assert.Equal(t, typeArray, rb.containers[0].Type)
		assert.Equal(t, 10, rb.Count())
	})

	t.Run("across_container_boundary", func(t *testing.T) {
		rb := New()
		rb.InsertRange(65530, 65540)
		rb.RemoveRange(65533, 65537)
		assert.True(t, rb.Contains(65530))
		assert.True(t, rb.Contains(65531))
		assert.True(t, rb.Contains(65532))
		assert.False(t, rb.Contains(65533))
		assert.False(t, rb.Contains(65536))
		assert.True(t, rb.Contains(65537))
		assert.True(t, rb.Contains(65539))
	})
}

func TestContainsRange(t *testing.T) {
	rb := New()
	rb.InsertRange(10, 20) // [10, 20)

	assert.True(t, rb.ContainsRange(10, 20))
	assert.True(t, rb.ContainsRange(12, 18))
	assert.True(t, rb.ContainsRange(10, 10)) // empty range, vacuously true
	assert.False(t, rb.ContainsRange(5, 20))
	assert.False(t, rb.ContainsRange(10, 25))
	assert.False(t, rb.ContainsRange(100, 200))

	t.Run("across_container_boundary", func(t *testing.T) {
		rb := New()
		rb.InsertRange(65530, 65540)
		assert.True(t, rb.ContainsRange(65530, 65540))
		assert.False(t, rb.ContainsRange(65530, 65541))
	})
}

func TestRangeCardinality(t *testing.T) {
	rb := New()
	rb.InsertRange(0, 100)

	assert.Equal(t, 100, rb.RangeCardinality(0, 100))
	assert.Equal(t, 50, rb.RangeCardinality(0, 50))
	assert.Equal(t, 0, rb.RangeCardinality(50, 50))
	assert.Equal(t, 0, rb.RangeCardinality(200, 300))

	t.Run("across_container_boundary", func(t *testing.T) {
		rb := New()
		rb.InsertRange(65530, 65540)
		assert.Equal(t, 10, rb.RangeCardinality(65530, 65540))
		assert.Equal(t, 3, rb.RangeCardinality(65530, 65533))
		assert.Equal(t, 2, rb.RangeCardinality(65538, 65540))
	})

	t.Run("sparse_values_in_range", func(t *testing.T) {
		rb := New()
		rb.Set(1)
		rb.Set(50)
		rb.Set(99)
		rb.Set(150)
		assert.Equal(t, 3, rb.RangeCardinality(0, 100))
	})
}
