package bitbuf

import "testing"

func drain(it *Iterator) []bool {
	var bits []bool
	for {
		bit, ok := it.Next()
		if !ok {
			break
		}
		bits = append(bits, bit)
	}
	return bits
}

func TestIteratorFromBufferYieldsFullBytesThenPartial(t *testing.T) {
	b := NewBuffer()
	for _, bit := range []bool{true, false, true, true, false, true, true, true} {
		b.Append(bit)
	}
	b.Append(true)
	b.Append(false)
	b.Append(true)

	it := NewIteratorFromBuffer(b)
	got := drain(it)

	want := []bool{true, false, true, true, false, true, true, true, true, false, true}
	if len(got) != len(want) {
		t.Fatalf("expected %d bits, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bit %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIteratorFromEmptyBuffer(t *testing.T) {
	it := NewIteratorFromBuffer(NewBuffer())
	if _, ok := it.Next(); ok {
		t.Fatalf("expected empty iterator from empty buffer")
	}
}

func TestIteratorDoesNotConsumeBuffer(t *testing.T) {
	b := NewBuffer()
	b.AppendRepeated(true, 10)

	it := NewIteratorFromBuffer(b)
	drain(it)

	// The buffer itself must be unaffected by iteration.
	if b.Len() != 10 {
		t.Fatalf("buffer length changed after iteration: got %d, want 10", b.Len())
	}
}
