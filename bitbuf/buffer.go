// Package bitbuf implements the codec's bit-level I/O primitives: an
// append-only Buffer that packs bits MSB-first into bytes, and a forward-only
// Iterator that reads them back out.
//
// The reference implementation this package is grounded on keeps its
// complete bytes in a doubly linked list; a growable byte slice gives the
// same FIFO-append/bulk-drain contract with far less overhead, so that is
// what Buffer uses instead.
package bitbuf

// Buffer is an ordered sequence of bits, held as a queue of complete bytes
// plus a trailing partial byte. Bits are packed MSB-first: the first bit
// appended becomes the most significant bit of the first byte.
type Buffer struct {
	fullBytes  []byte
	current    byte
	currentIdx uint
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append inserts a single bit at the end of the buffer.
func (b *Buffer) Append(bit bool) {
	if bit {
		b.current |= 1 << (7 - b.currentIdx)
	}
	b.currentIdx++

	if b.currentIdx >= 8 {
		b.saveCurrent()
	}
}

// AppendRepeated inserts n copies of bit at the end of the buffer in
// O(1 + n/8): it tops off the current partial byte, pushes whole bytes of
// 0x00 or 0xFF, and leaves any remaining tail bits in a fresh partial byte.
func (b *Buffer) AppendRepeated(bit bool, n int) {
	if n <= 0 {
		return
	}

	// If the run doesn't even fill out the current partial byte, there is
	// no whole byte to spill: append one at a time.
	if b.currentIdx+uint(n) < 8 {
		for ; n > 0; n-- {
			b.Append(bit)
		}
		return
	}

	// Top off and save the current partial byte first.
	if b.currentIdx > 0 {
		remaining := int(8 - b.currentIdx)
		for ; remaining > 0; remaining-- {
			b.Append(bit)
			n--
		}
	}

	// currentIdx is now 0: spill whole bytes directly.
	fill := byte(0x00)
	if bit {
		fill = 0xFF
	}
	for ; n >= 8; n -= 8 {
		b.fullBytes = append(b.fullBytes, fill)
	}

	// Write the remaining tail bits into a fresh partial byte.
	for ; n > 0; n-- {
		b.Append(bit)
	}
}

// saveCurrent pushes the current byte onto fullBytes and resets the partial
// byte state.
func (b *Buffer) saveCurrent() {
	b.fullBytes = append(b.fullBytes, b.current)
	b.current = 0
	b.currentIdx = 0
}

// Len returns the number of bits currently held in the buffer.
func (b *Buffer) Len() int {
	return 8*len(b.fullBytes) + int(b.currentIdx)
}

// TakeCompleteBytes detaches and returns every complete byte accumulated so
// far, leaving the partial byte untouched. The returned slice is owned by
// the caller.
func (b *Buffer) TakeCompleteBytes() []byte {
	if len(b.fullBytes) == 0 {
		return nil
	}
	out := b.fullBytes
	b.fullBytes = nil
	return out
}

// TakeLeftoverPadded returns the trailing partial byte zero-padded on the
// low-order side, and true, if there is one. It returns false if the buffer
// currently has no partial byte. It does not consume the partial byte.
func (b *Buffer) TakeLeftoverPadded() ([]byte, bool) {
	if b.currentIdx == 0 {
		return nil, false
	}
	return []byte{b.current}, true
}
