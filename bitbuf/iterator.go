package bitbuf

// Iterator yields the bits of a Buffer, or of a raw byte slice, in insertion
// order: every complete byte MSB-first, followed (for a Buffer source) by
// the partial byte's first currentIdx bits.
type Iterator struct {
	bytes      []byte
	pos        int  // index of the next byte in bytes
	bitInByte  uint // next bit to read from bytes[pos], 0 == MSB
	tailByte   byte
	tailBits   uint // number of valid bits remaining in tailByte
	haveTail   bool
}

// NewIteratorFromBuffer builds an Iterator over a Buffer's full bytes
// followed by its partial byte, without mutating the buffer.
func NewIteratorFromBuffer(b *Buffer) *Iterator {
	it := &Iterator{bytes: b.fullBytes}
	if b.currentIdx > 0 {
		it.tailByte = b.current
		it.tailBits = b.currentIdx
		it.haveTail = true
	}
	return it
}

// NewIteratorFromBytes builds an Iterator over a raw byte slice, where every
// byte is a complete 8-bit unit.
func NewIteratorFromBytes(data []byte) *Iterator {
	return &Iterator{bytes: data}
}

// Next returns the next bit in the sequence and true, or false once the
// iterator is exhausted.
func (it *Iterator) Next() (bool, bool) {
	if it.pos < len(it.bytes) {
		bit := (it.bytes[it.pos]>>(7-it.bitInByte))&1 == 1
		it.bitInByte++
		if it.bitInByte == 8 {
			it.bitInByte = 0
			it.pos++
		}
		return bit, true
	}

	if it.haveTail && it.bitInByte < it.tailBits {
		bit := (it.tailByte>>(7-it.bitInByte))&1 == 1
		it.bitInByte++
		if it.bitInByte >= it.tailBits {
			it.haveTail = false
		}
		return bit, true
	}

	return false, false
}
