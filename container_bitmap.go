// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"math/bits"

	"github.com/kelindar/bitmap"
)

// bmp reinterprets the container's backing array as a 65536-bit word array.
func (c *container) bmp() bitmap.Bitmap {
	return asBitmap(c.Data)
}

// bmpSet sets a value in a bitmap container
func (c *container) bmpSet(value uint16) bool {
	dst := c.bmp()
	if dst.Contains(uint32(value)) {
		return false
	}

	dst.Set(uint32(value))
	c.Size++
	return true
}

// bmpDel removes a value from a bitmap container
func (c *container) bmpDel(value uint16) bool {
	dst := c.bmp()
	if !dst.Contains(uint32(value)) {
		return false
	}

	dst.Remove(uint32(value))
	c.Size--
	return true
}

// bmpHas checks if a value exists in a bitmap container
func (c *container) bmpHas(value uint16) bool {
	return c.bmp().Contains(uint32(value))
}

// bmpRange calls fn for every set value in the container, in ascending order,
// stopping early if fn returns false.
func (c *container) bmpRange(fn func(value uint32) bool) {
	src := c.bmp()
	for i, word := range src {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			if !fn(uint32(i*64 + bit)) {
				return
			}
			word &= word - 1
		}
	}
}

// bmpOptimize demotes a sparse bitmap back down to an array container
func (c *container) bmpOptimize() {
	if c.Size <= arrMinSize {
		c.bmpToArr()
	}
}

// bmpToArr converts this container from bitmap to array
func (c *container) bmpToArr() {
	out := make([]uint16, 0, c.Size)
	src := c.bmp()
	src.Range(func(x uint32) {
		out = append(out, uint16(x))
	})

	release(src)
	c.Data = out
	c.Type = typeArray
}

// bmpMin returns the smallest value in a bitmap container
func (c *container) bmpMin() (uint16, bool) {
	src := c.bmp()
	for i, word := range src {
		if word != 0 {
			return uint16(i*64 + bits.TrailingZeros64(word)), true
		}
	}
	return 0, false
}

// bmpMax returns the largest value in a bitmap container
func (c *container) bmpMax() (uint16, bool) {
	src := c.bmp()
	for i := len(src) - 1; i >= 0; i-- {
		if word := src[i]; word != 0 {
			return uint16(i*64 + 63 - bits.LeadingZeros64(word)), true
		}
	}
	return 0, false
}

// bmpMinZero returns the smallest unset value in a bitmap container
func (c *container) bmpMinZero() (uint16, bool) {
	src := c.bmp()
	for i, word := range src {
		if word != ^uint64(0) {
			return uint16(i*64 + bits.TrailingZeros64(^word)), true
		}
	}
	return 0, false
}

// bmpMaxZero returns the largest unset value in a bitmap container
func (c *container) bmpMaxZero() (uint16, bool) {
	src := c.bmp()
	for i := len(src) - 1; i >= 0; i-- {
		if word := src[i]; word != ^uint64(0) {
			return uint16(i*64 + 63 - bits.LeadingZeros64(^word)), true
		}
	}
	return 0, false
}

// bmpRank counts how many values in the container are ≤ value
func (c *container) bmpRank(value uint16) uint32 {
	src := c.bmp()
	word, bit := int(value)/64, uint(value)%64
	count := 0
	for i := 0; i < word; i++ {
		count += bits.OnesCount64(src[i])
	}
	if word < len(src) {
		mask := ^uint64(0)
		if bit < 63 {
			mask = (uint64(1) << (bit + 1)) - 1
		}
		count += bits.OnesCount64(src[word] & mask)
	}
	return uint32(count)
}

// bmpSelect returns the n-th (0-based) set value in the container
func (c *container) bmpSelect(n uint32) (uint16, bool) {
	if n >= c.Size {
		return 0, false
	}

	src := c.bmp()
	remaining := n
	for i, word := range src {
		cnt := uint32(bits.OnesCount64(word))
		if remaining < cnt {
			for bit := 0; bit < 64; bit++ {
				if word&(uint64(1)<<uint(bit)) == 0 {
					continue
				}
				if remaining == 0 {
					return uint16(i*64 + bit), true
				}
				remaining--
			}
		}
		remaining -= cnt
	}
	return 0, false
}

// wordMask returns a uint64 with bits [lo, hi] (inclusive, 0-63) set.
func wordMask(lo, hi uint) uint64 {
	return (^uint64(0) << lo) & (^uint64(0) >> (63 - hi))
}

// bmpInsertRange sets every value in [lo, hi] (inclusive) within the
// container. The first and last touched words are updated via a partial
// bit mask, and any whole words in between are filled in one store, instead
// of looping bit-by-bit.
func (c *container) bmpInsertRange(lo, hi uint16) {
	dst := c.bmp()
	wordLo, bitLo := int(lo)/64, uint(lo)%64
	wordHi, bitHi := int(hi)/64, uint(hi)%64

	added := 0
	if wordLo == wordHi {
		mask := wordMask(bitLo, bitHi)
		added += bits.OnesCount64(mask &^ dst[wordLo])
		dst[wordLo] |= mask
	} else {
		loMask := wordMask(bitLo, 63)
		added += bits.OnesCount64(loMask &^ dst[wordLo])
		dst[wordLo] |= loMask

		for w := wordLo + 1; w < wordHi; w++ {
			added += 64 - bits.OnesCount64(dst[w])
			dst[w] = ^uint64(0)
		}

		hiMask := wordMask(0, bitHi)
		added += bits.OnesCount64(hiMask &^ dst[wordHi])
		dst[wordHi] |= hiMask
	}

	c.Size += uint32(added)
}

// bmpRemoveRange clears every value in [lo, hi] (inclusive) within the
// container, using the same partial-word-mask/whole-word-fill shape as
// bmpInsertRange.
func (c *container) bmpRemoveRange(lo, hi uint16) {
	dst := c.bmp()
	wordLo, bitLo := int(lo)/64, uint(lo)%64
	wordHi, bitHi := int(hi)/64, uint(hi)%64

	removed := 0
	if wordLo == wordHi {
		mask := wordMask(bitLo, bitHi)
		removed += bits.OnesCount64(mask & dst[wordLo])
		dst[wordLo] &^= mask
	} else {
		loMask := wordMask(bitLo, 63)
		removed += bits.OnesCount64(loMask & dst[wordLo])
		dst[wordLo] &^= loMask

		for w := wordLo + 1; w < wordHi; w++ {
			removed += bits.OnesCount64(dst[w])
			dst[w] = 0
		}

		hiMask := wordMask(0, bitHi)
		removed += bits.OnesCount64(hiMask & dst[wordHi])
		dst[wordHi] &^= hiMask
	}

	c.Size -= uint32(removed)
}
