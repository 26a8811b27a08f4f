// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// entry64 pairs a high-32-bit key with the Bitmap32 holding its low bits.
type entry64 struct {
	key uint32
	bmp *Bitmap
}

// Bitmap64 represents a roaring bitmap over the full uint64 domain by
// mapping each value's high 32 bits to a Bitmap32 keyed on the low 32 bits.
type Bitmap64 struct {
	entries []entry64 // Sorted ascending by key
}

// NewBitmap64 creates a new empty 64-bit roaring bitmap.
func NewBitmap64() *Bitmap64 {
	return &Bitmap64{}
}

func (b *Bitmap64) find(key uint32) (int, bool) {
	lo, hi := 0, len(b.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case b.entries[mid].key < key:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, lo < len(b.entries) && b.entries[lo].key == key
}

func (b *Bitmap64) ensure(key uint32) *Bitmap {
	idx, exists := b.find(key)
	if exists {
		return b.entries[idx].bmp
	}

	b.entries = append(b.entries, entry64{})
	copy(b.entries[idx+1:], b.entries[idx:])
	b.entries[idx] = entry64{key: key, bmp: New()}
	return b.entries[idx].bmp
}

// Set64 sets the bit x in the 64-bit bitmap.
func (b *Bitmap64) Set64(x uint64) {
	b.ensure(uint32(x >> 32)).Set(uint32(x))
}

// Remove64 removes the bit x from the 64-bit bitmap.
func (b *Bitmap64) Remove64(x uint64) {
	idx, exists := b.find(uint32(x >> 32))
	if !exists {
		return
	}

	inner := b.entries[idx].bmp
	inner.Remove(uint32(x))
	if inner.IsEmpty() {
		copy(b.entries[idx:], b.entries[idx+1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
}

// Contains64 checks whether x is present in the 64-bit bitmap.
func (b *Bitmap64) Contains64(x uint64) bool {
	idx, exists := b.find(uint32(x >> 32))
	return exists && b.entries[idx].bmp.Contains(uint32(x))
}

// Count64 returns the total number of bits set across the whole 64-bit range.
func (b *Bitmap64) Count64() int {
	total := 0
	for _, e := range b.entries {
		total += e.bmp.Count()
	}
	return total
}

// binaryOp64 applies a two-Bitmap32 operation to every matching pair of
// high-key buckets, mirroring the merge-by-key shape used at the 32-bit
// level. When keepOtherOnly is true, buckets present only in other are cloned
// into the result (Or64, Xor64); otherwise they are dropped (And64, AndNot64).
// Buckets present only in b always survive unless dropMissing is set
// (And64 is the only operation where they don't).
func (b *Bitmap64) binaryOp64(other *Bitmap64, onBoth func(a, c *Bitmap), dropMissing, keepOtherOnly bool) {
	i, j := 0, 0
	var kept []entry64

	for i < len(b.entries) || j < len(other.entries) {
		switch {
		case j >= len(other.entries) || (i < len(b.entries) && b.entries[i].key < other.entries[j].key):
			if !dropMissing {
				kept = append(kept, b.entries[i])
			}
			i++
		case i >= len(b.entries) || other.entries[j].key < b.entries[i].key:
			if keepOtherOnly {
				kept = append(kept, entry64{key: other.entries[j].key, bmp: other.entries[j].bmp.Clone(nil)})
			}
			j++
		default:
			onBoth(b.entries[i].bmp, other.entries[j].bmp)
			if !b.entries[i].bmp.IsEmpty() {
				kept = append(kept, b.entries[i])
			}
			i++
			j++
		}
	}

	b.entries = kept
}

// And64 intersects this bitmap with other in place.
func (b *Bitmap64) And64(other *Bitmap64) {
	b.binaryOp64(other, func(a, c *Bitmap) { a.And(c) }, true, false)
}

// Or64 unions this bitmap with other in place.
func (b *Bitmap64) Or64(other *Bitmap64) {
	b.binaryOp64(other, func(a, c *Bitmap) { a.Or(c) }, false, true)
}

// Xor64 symmetric-differences this bitmap with other in place.
func (b *Bitmap64) Xor64(other *Bitmap64) {
	b.binaryOp64(other, func(a, c *Bitmap) { a.Xor(c) }, false, true)
}

// AndNot64 removes from this bitmap every value also present in other.
func (b *Bitmap64) AndNot64(other *Bitmap64) {
	b.binaryOp64(other, func(a, c *Bitmap) { a.AndNot(c) }, false, false)
}
