// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
)

const (
	serialCookie              = 12347 // SERIAL_COOKIE: at least one Run container present
	serialCookieNoRunContainer = 12346 // SERIAL_COOKIE_NO_RUNCONTAINER
	noOffsetThreshold          = 4
	cookieHeaderSize           = 8
	maxContainers              = 65536
)

// ToBytes converts the bitmap to a byte slice using the standard Roaring
// binary format.
func (rb *Bitmap) ToBytes() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteTo(&buf); err != nil {
		panic(err)
	}

	return buf.Bytes()
}

func (rb *Bitmap) hasRunContainer() bool {
	for i := range rb.containers {
		if rb.containers[i].Type == typeRun {
			return true
		}
	}
	return false
}

// WriteTo writes the bitmap to w in the standard Roaring binary format.
func (rb *Bitmap) WriteTo(w io.Writer) (int64, error) {
	size := len(rb.containers)
	hasRun := rb.hasRunContainer()
	var n int64

	switch {
	case hasRun:
		cookie := uint32(serialCookie) | uint32(size-1)<<16
		if err := binary.Write(w, binary.LittleEndian, cookie); err != nil {
			return n, err
		}
		n += 4

		runBitmap := make([]byte, (size+7)/8)
		for i := range rb.containers {
			if rb.containers[i].Type == typeRun {
				runBitmap[i/8] |= 1 << uint(i%8)
			}
		}
		if _, err := w.Write(runBitmap); err != nil {
			return n, err
		}
		n += int64(len(runBitmap))

	default:
		if err := binary.Write(w, binary.LittleEndian, uint32(serialCookieNoRunContainer)); err != nil {
			return n, err
		}
		n += 4
		if err := binary.Write(w, binary.LittleEndian, uint32(size)); err != nil {
			return n, err
		}
		n += 4
	}

	// Descriptive header: size × (key, cardinality-1)
	for i := range rb.containers {
		c := &rb.containers[i]
		if err := binary.Write(w, binary.LittleEndian, rb.index[i]); err != nil {
			return n, err
		}
		n += 2
		if err := binary.Write(w, binary.LittleEndian, uint16(c.Size-1)); err != nil {
			return n, err
		}
		n += 2
	}

	// Offset table: always present for the no-run-container cookie; present
	// only when size ≥ NO_OFFSET_THRESHOLD for the run-container cookie.
	if !hasRun || size >= noOffsetThreshold {
		offset := uint32(n) + uint32(size)*4
		for i := range rb.containers {
			if err := binary.Write(w, binary.LittleEndian, offset); err != nil {
				return n, err
			}
			n += 4
			offset += containerPayloadSize(&rb.containers[i])
		}
	}

	// Container payloads
	for i := range rb.containers {
		written, err := writeContainerPayload(w, &rb.containers[i])
		n += written
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func containerPayloadSize(c *container) uint32 {
	switch c.Type {
	case typeRun:
		return 2 + uint32(len(c.Data))*2
	case typeArray:
		return c.Size * 2
	case typeBitmap:
		return 8192
	}
	return 0
}

func writeContainerPayload(w io.Writer, c *container) (int64, error) {
	var n int64
	switch c.Type {
	case typeRun:
		numRuns := uint16(len(c.Data) / 2)
		if err := binary.Write(w, binary.LittleEndian, numRuns); err != nil {
			return n, err
		}
		n += 2

		for i := 0; i < len(c.Data); i += 2 {
			start, end := c.Data[i], c.Data[i+1]
			if err := binary.Write(w, binary.LittleEndian, start); err != nil {
				return n, err
			}
			n += 2
			if err := binary.Write(w, binary.LittleEndian, end-start); err != nil {
				return n, err
			}
			n += 2
		}

	case typeArray:
		written, err := writeUint16s(w, isLittleEndian, c.Data)
		n += written
		return n, err

	case typeBitmap:
		written, err := writeUint16s(w, isLittleEndian, c.Data[:4096])
		n += written
		return n, err
	}
	return n, nil
}

// ReadFrom reads a bitmap previously written by WriteTo, validating the
// stream's structural invariants (cookie, size bound, run-interval bounds).
// On any error the bitmap is left empty.
func (rb *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()
	var n int64

	var cookie uint32
	if err := binary.Read(r, binary.LittleEndian, &cookie); err != nil {
		return n, wrapTruncated(err)
	}
	n += 4

	var size int
	var hasRun bool
	var runBitmap []byte

	switch {
	case cookie == serialCookieNoRunContainer:
		var sz uint32
		if err := binary.Read(r, binary.LittleEndian, &sz); err != nil {
			return n, wrapTruncated(err)
		}
		n += 4
		size = int(sz)

	case uint16(cookie) == serialCookie:
		size = int(cookie>>16) + 1
		hasRun = true

		runBitmap = make([]byte, (size+7)/8)
		read, err := io.ReadFull(r, runBitmap)
		n += int64(read)
		if err != nil {
			return n, wrapTruncated(err)
		}

	default:
		return n, ErrInvalidCookie
	}

	if size > maxContainers {
		return n, ErrSizeTooLarge
	}

	type descriptor struct {
		key  uint16
		card uint32
	}
	descriptors := make([]descriptor, size)
	for i := 0; i < size; i++ {
		var key, cardMinus1 uint16
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return n, wrapTruncated(err)
		}
		n += 2
		if err := binary.Read(r, binary.LittleEndian, &cardMinus1); err != nil {
			return n, wrapTruncated(err)
		}
		n += 2
		descriptors[i] = descriptor{key: key, card: uint32(cardMinus1) + 1}
	}

	if !hasRun || size >= noOffsetThreshold {
		skip := make([]byte, 4*size)
		read, err := io.ReadFull(r, skip)
		n += int64(read)
		if err != nil {
			return n, wrapTruncated(err)
		}
	}

	for i := 0; i < size; i++ {
		isRun := hasRun && runBitmap[i/8]&(1<<uint(i%8)) != 0
		d := descriptors[i]

		var c *container
		var err error
		switch {
		case isRun:
			c, err = readRunPayload(r, &n, i)
		case d.card > arrMinSize:
			c, err = readBitmapPayload(r, &n, d.card)
		default:
			c, err = readArrayPayload(r, &n, d.card, i)
		}
		if err != nil {
			rb.Clear()
			return n, err
		}

		rb.ctrAdd(d.key, len(rb.containers), c)
	}
	return n, nil
}

func wrapTruncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

// readRunPayload reads a Run container's payload and validates I5: runs
// must appear in ascending order of start, non-overlapping, and
// non-adjacent (adjacent runs should have been merged before serialization).
func readRunPayload(r io.Reader, n *int64, idx int) (*container, error) {
	var numRuns uint16
	if err := binary.Read(r, binary.LittleEndian, &numRuns); err != nil {
		return nil, wrapTruncated(err)
	}
	*n += 2

	data := make([]uint16, 0, int(numRuns)*2)
	size := uint32(0)
	prevEnd, havePrev := 0, false
	for i := uint16(0); i < numRuns; i++ {
		var start, lengthMinus1 uint16
		if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
			return nil, wrapTruncated(err)
		}
		*n += 2
		if err := binary.Read(r, binary.LittleEndian, &lengthMinus1); err != nil {
			return nil, wrapTruncated(err)
		}
		*n += 2

		if uint32(start)+uint32(lengthMinus1) > 0xFFFF {
			return nil, ErrRunOverflow
		}

		if havePrev && int(start) <= prevEnd+1 {
			return nil, &InvariantError{Container: idx, Reason: "run intervals are not strictly ascending, overlapping, or adjacent"}
		}

		end := start + lengthMinus1
		data = append(data, start, end)
		size += uint32(lengthMinus1) + 1
		prevEnd, havePrev = int(end), true
	}

	return &container{Type: typeRun, Data: data, Size: size}, nil
}

// readArrayPayload reads an Array container's payload and validates I3: the
// values must be strictly increasing and unique.
func readArrayPayload(r io.Reader, n *int64, card uint32, idx int) (*container, error) {
	data, err := readUint16s(r, isLittleEndian, int(card)*2)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	*n += int64(card) * 2

	for i := 1; i < len(data); i++ {
		if data[i] <= data[i-1] {
			return nil, &InvariantError{Container: idx, Reason: "array values are not strictly increasing"}
		}
	}

	return &container{Type: typeArray, Data: data, Size: card}, nil
}

func readBitmapPayload(r io.Reader, n *int64, card uint32) (*container, error) {
	data, err := readUint16s(r, isLittleEndian, 8192)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	*n += 8192

	// Trust the descriptor's cardinality unless it disagrees with the
	// actual popcount, which would indicate a corrupt stream.
	actual := uint32(0)
	words := asBitmap(data)
	for _, w := range words {
		actual += uint32(bits.OnesCount64(w))
	}
	if actual != card {
		return nil, ErrCardinality
	}

	return &container{Type: typeBitmap, Data: data, Size: card}, nil
}

// FromBytes creates a roaring bitmap from a byte buffer.
func FromBytes(buffer []byte) *Bitmap {
	rb := New()
	_, err := rb.ReadFrom(bytes.NewReader(buffer))
	if err != nil && err != io.EOF {
		panic(err)
	}
	return rb
}

// ReadFrom reads a roaring bitmap from an io.Reader.
func ReadFrom(r io.Reader) (*Bitmap, error) {
	rb := New()
	_, err := rb.ReadFrom(r)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return rb, nil
}

// SerializedSize returns the exact number of bytes WriteTo would produce.
func (rb *Bitmap) SerializedSize() int {
	size := len(rb.containers)
	hasRun := rb.hasRunContainer()

	total := cookieHeaderSize
	if hasRun {
		total = 4 + (size+7)/8
	}

	total += size * 4 // descriptive header
	if !hasRun || size >= noOffsetThreshold {
		total += size * 4 // offset table
	}

	for i := range rb.containers {
		total += int(containerPayloadSize(&rb.containers[i]))
	}
	return total
}

var isLittleEndian = binary.LittleEndian.Uint16([]byte{1, 0}) == 1

// writeUint16s writes a slice of uint16s to a writer, converting it to []byte
// without a copy when the machine is little endian.
func writeUint16s(w io.Writer, isLittleEndian bool, data []uint16) (int64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	switch isLittleEndian {
	case true:
		buf := uint16sToBytes(data)
		written, err := w.Write(buf)
		return int64(written), err
	default:
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			return 0, err
		}
		return int64(len(data)) * 2, nil
	}
}

// readUint16s reads a slice of uint16s from a reader.
func readUint16s(r io.Reader, isLittleEndian bool, sizeBytes int) ([]uint16, error) {
	if sizeBytes == 0 {
		return nil, nil
	}

	count := sizeBytes / 2
	switch isLittleEndian {
	case true:
		out := make([]byte, sizeBytes)
		if _, err := io.ReadFull(r, out); err != nil {
			return nil, err
		}
		return bytesToUint16s(out), nil
	default:
		out := make([]uint16, count)
		err := binary.Read(r, binary.LittleEndian, out)
		return out, err
	}
}
