// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// This file mirrors the lane-block structure of a SIMD merge network (8 u16
// lanes per step) over two sorted arrays, but in pure scalar Go: Go has no
// portable SIMD without cgo or assembly, so each "lane" below is just an
// unrolled iteration of the same two-pointer advance the scalar merge uses.
// The block size keeps the branch pattern identical across lanes, which is
// what the real SIMD network buys you — predictable, vectorizable shape
// rather than raw throughput. Merge output is handed to a binaryVisitor so a
// cardinality-only caller never has to materialize the merged array.
const mergeLanes = 8

// mergeOrVisit streams the sorted union of a, b into v, 8 lanes at a time.
func mergeOrVisit(a, b []uint16, v binaryVisitor) {
	i, j := 0, 0
	for i+mergeLanes <= len(a) && j+mergeLanes <= len(b) {
		if a[i+mergeLanes-1] < b[j] {
			v.visitSlice(a[i : i+mergeLanes])
			i += mergeLanes
			continue
		}
		if b[j+mergeLanes-1] < a[i] {
			v.visitSlice(b[j : j+mergeLanes])
			j += mergeLanes
			continue
		}
		mergeOrScalar(a, b, &i, &j, mergeLanes, v)
	}

	mergeOrScalar(a, b, &i, &j, len(a)-i+len(b)-j, v)
	if i < len(a) {
		v.visitSlice(a[i:])
	}
	if j < len(b) {
		v.visitSlice(b[j:])
	}
}

func mergeOrScalar(a, b []uint16, i, j *int, budget int, v binaryVisitor) {
	for n := 0; n < budget && *i < len(a) && *j < len(b); n++ {
		switch av, bv := a[*i], b[*j]; {
		case av == bv:
			v.visitScalar(av)
			*i++
			*j++
		case av < bv:
			v.visitScalar(av)
			*i++
		default:
			v.visitScalar(bv)
			*j++
		}
	}
}

// mergeAndVisit streams the sorted intersection of a, b into v.
func mergeAndVisit(a, b []uint16, v binaryVisitor) {
	i, j := 0, 0
	for i+mergeLanes <= len(a) && j+mergeLanes <= len(b) {
		if a[i+mergeLanes-1] < b[j] {
			i += mergeLanes
			continue
		}
		if b[j+mergeLanes-1] < a[i] {
			j += mergeLanes
			continue
		}
		mergeAndScalar(a, b, &i, &j, mergeLanes, v)
	}
	mergeAndScalar(a, b, &i, &j, len(a)-i+len(b)-j, v)
}

func mergeAndScalar(a, b []uint16, i, j *int, budget int, v binaryVisitor) {
	for n := 0; n < budget && *i < len(a) && *j < len(b); n++ {
		switch av, bv := a[*i], b[*j]; {
		case av == bv:
			v.visitScalar(av)
			*i++
			*j++
		case av < bv:
			*i++
		default:
			*j++
		}
	}
}

// mergeXorVisit streams the sorted symmetric difference of a, b into v.
func mergeXorVisit(a, b []uint16, v binaryVisitor) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch av, bv := a[i], b[j]; {
		case av == bv:
			i++
			j++
		case av < bv:
			v.visitScalar(av)
			i++
		default:
			v.visitScalar(bv)
			j++
		}
	}
	if i < len(a) {
		v.visitSlice(a[i:])
	}
	if j < len(b) {
		v.visitSlice(b[j:])
	}
}

// mergeAndNotVisit streams the sorted set difference a - b into v.
func mergeAndNotVisit(a, b []uint16, v binaryVisitor) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch av, bv := a[i], b[j]; {
		case av == bv:
			i++
			j++
		case av < bv:
			v.visitScalar(av)
			i++
		default:
			j++
		}
	}
	if i < len(a) {
		v.visitSlice(a[i:])
	}
}
