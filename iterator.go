// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Iterator walks the values of a Bitmap in ascending order. It is
// double-ended: Next and NextBack can both be driven on the same cursor,
// and they meet in the middle once the forward and backward positions cross.
type Iterator struct {
	rb       *Bitmap
	fwdCtr   int // index into rb.containers for the forward cursor
	fwdLocal []uint32
	fwdPos   int

	bwdCtr   int // index into rb.containers for the backward cursor
	bwdLocal []uint32
	bwdPos   int

	remaining int
	done      bool
}

// Iterator returns a forward iterator positioned before the first value.
func (rb *Bitmap) Iterator() *Iterator {
	it := &Iterator{rb: rb, bwdCtr: len(rb.containers) - 1, remaining: rb.Count()}
	it.done = it.remaining == 0
	return it
}

// ReverseIterator returns an iterator whose Next walks values in descending order.
func (rb *Bitmap) ReverseIterator() *reverseIterator {
	return &reverseIterator{it: rb.Iterator()}
}

func valuesOfContainer(rb *Bitmap, ctr int) []uint32 {
	c := &rb.containers[ctr]
	base := uint32(rb.index[ctr]) << 16
	out := make([]uint32, 0, c.Size)
	switch c.Type {
	case typeArray:
		for _, v := range c.Data {
			out = append(out, base|uint32(v))
		}
	case typeBitmap:
		c.bmpRange(func(v uint32) bool {
			out = append(out, base|v)
			return true
		})
	case typeRun:
		for i := 0; i+1 < len(c.Data); i += 2 {
			start, end := uint32(c.Data[i]), uint32(c.Data[i+1])
			for v := start; ; v++ {
				out = append(out, base|v)
				if v == end {
					break
				}
			}
		}
	}
	return out
}

// HasNext reports whether a forward value remains.
func (it *Iterator) HasNext() bool {
	return it.remaining > 0
}

// Next returns the next value in ascending order.
func (it *Iterator) Next() (uint32, bool) {
	if it.remaining <= 0 {
		return 0, false
	}

	for it.fwdPos >= len(it.fwdLocal) {
		if it.fwdCtr > it.bwdCtr {
			// The back cursor has loaded the container still holding values.
			if len(it.bwdLocal) == 0 {
				return 0, false
			}
			it.fwdLocal, it.fwdPos = it.bwdLocal, 0
			break
		}
		it.fwdLocal = valuesOfContainer(it.rb, it.fwdCtr)
		it.fwdPos = 0
		it.fwdCtr++
	}

	v := it.fwdLocal[it.fwdPos]
	it.fwdPos++
	it.remaining--
	return v, true
}

// NextBack returns the next value in descending order, from a shared cursor
// with Next — the two meet in the middle.
func (it *Iterator) NextBack() (uint32, bool) {
	if it.remaining <= 0 {
		return 0, false
	}

	for it.bwdPos <= 0 || it.bwdLocal == nil {
		if it.bwdCtr < it.fwdCtr {
			// The forward cursor has loaded the container still holding values.
			if len(it.fwdLocal) == 0 {
				return 0, false
			}
			it.bwdLocal, it.bwdPos = it.fwdLocal, len(it.fwdLocal)
			break
		}
		it.bwdLocal = valuesOfContainer(it.rb, it.bwdCtr)
		it.bwdPos = len(it.bwdLocal)
		it.bwdCtr--
		if it.bwdPos > 0 {
			break
		}
	}

	it.bwdPos--
	v := it.bwdLocal[it.bwdPos]
	it.remaining--
	return v, true
}

// AdvanceTo skips values strictly less than x; the next call to Next returns
// the first remaining value ≥ x, or false if none remain.
func (it *Iterator) AdvanceTo(x uint32) {
	for it.remaining > 0 {
		for it.remaining > 0 && it.fwdPos < len(it.fwdLocal) && it.fwdLocal[it.fwdPos] < x {
			it.fwdPos++
			it.remaining--
		}
		if it.fwdPos < len(it.fwdLocal) {
			return
		}
		if it.fwdCtr > it.bwdCtr {
			if len(it.bwdLocal) == 0 {
				return
			}
			it.fwdLocal, it.fwdPos = it.bwdLocal, 0
			continue
		}
		it.fwdLocal = valuesOfContainer(it.rb, it.fwdCtr)
		it.fwdPos = 0
		it.fwdCtr++
	}
}

// AdvanceBackTo skips values strictly greater than x from the back cursor.
func (it *Iterator) AdvanceBackTo(x uint32) {
	for it.remaining > 0 {
		if it.bwdLocal != nil {
			for it.remaining > 0 && it.bwdPos > 0 && it.bwdLocal[it.bwdPos-1] > x {
				it.bwdPos--
				it.remaining--
			}
			if it.bwdPos > 0 {
				return
			}
		}
		if it.bwdCtr < it.fwdCtr {
			if len(it.fwdLocal) == 0 {
				return
			}
			it.bwdLocal, it.bwdPos = it.fwdLocal, len(it.fwdLocal)
			continue
		}
		it.bwdLocal = valuesOfContainer(it.rb, it.bwdCtr)
		it.bwdPos = len(it.bwdLocal)
		it.bwdCtr--
	}
}

// NextMany fills buf with up to len(buf) ascending values and returns how many were written.
func (it *Iterator) NextMany(buf []uint32) int {
	n := 0
	for n < len(buf) {
		v, ok := it.Next()
		if !ok {
			break
		}
		buf[n] = v
		n++
	}
	return n
}

// NextRange returns the next maximal run of consecutive values as [start, end]
// inclusive, consuming them from the forward cursor.
func (it *Iterator) NextRange() (start, end uint32, ok bool) {
	v, has := it.Next()
	if !has {
		return 0, 0, false
	}

	start, end = v, v
	for it.remaining > 0 {
		peekPos, peekLocal, peekCtr := it.fwdPos, it.fwdLocal, it.fwdCtr
		next, has := it.Next()
		if !has {
			break
		}
		if next != end+1 {
			// Not contiguous: undo by restoring cursor state
			it.fwdPos, it.fwdLocal, it.fwdCtr = peekPos, peekLocal, peekCtr
			it.remaining++
			break
		}
		end = next
	}
	return start, end, true
}

// SizeHint returns the exact number of values remaining.
func (it *Iterator) SizeHint() int {
	return it.remaining
}

// reverseIterator adapts Iterator so that Next walks in descending order.
type reverseIterator struct {
	it *Iterator
}

// Next returns the next value in descending order.
func (r *reverseIterator) Next() (uint32, bool) {
	return r.it.NextBack()
}

// HasNext reports whether a value remains.
func (r *reverseIterator) HasNext() bool {
	return r.it.HasNext()
}

// SizeHint returns the exact number of values remaining.
func (r *reverseIterator) SizeHint() int {
	return r.it.SizeHint()
}
