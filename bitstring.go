package radixhash

import (
	"fmt"
	"math/bits"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Bit-level plumbing: messages become explicit-length bit sequences, which are zero-padded and cut
// into 772-bit blocks before anything arithmetic happens to them.

const (
	BlockBits   = 772
	DigestBytes = (BlockBits + 7) >> 3
)

// A BitString is an ordered sequence of bits whose length need not be a multiple of 8. Bits are
// packed most-significant first: bit 0 is the top bit of words[0]. Bits past n are always zero.
type BitString struct {
	words []uint64
	n     int
}

func newBitString(n int) BitString {
	return BitString{words: make([]uint64, (n+63)>>6), n: n}
}

// Encode expands every byte of data into 8 bits, most-significant bit first, in input order.
func Encode(data []byte) BitString {
	b := newBitString(len(data) << 3)
	for i, v := range data {
		b.words[i>>3] |= uint64(v) << (56 - (i&7)<<3)
	}
	return b
}

// ParseBits reads a string of '0' and '1' characters.
func ParseBits(s string) (BitString, error) {
	b := newBitString(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			b.set(i)
		default:
			return BitString{}, fmt.Errorf("radixhash: invalid bit %q at offset %d", s[i], i)
		}
	}
	return b, nil
}

func (b BitString) Len() int { return b.n }

// Bit returns the i-th bit as 0 or 1. It panics if i is outside [0, Len()).
func (b BitString) Bit(i int) uint {
	if uint(i) >= uint(b.n) {
		panic(fmt.Sprintf("radixhash: bit index %d out of range [0, %d)", i, b.n))
	}
	return uint(b.words[i>>6]>>(63-i&63)) & 1
}

func (b BitString) set(i int) { b.words[i>>6] |= 1 << (63 - i&63) }

// OnesCount returns the number of set bits.
func (b BitString) OnesCount() (count int) {
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

func (b BitString) Equal(o BitString) bool {
	if b.n != o.n {
		return false
	}
	for i := range b.words {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// String renders b as '0' and '1' characters.
func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + byte(b.Bit(i)))
	}
	return sb.String()
}

// Bytes packs b back into bytes; a partial final byte is zero-filled on the right.
func (b BitString) Bytes() []byte {
	out := make([]byte, (b.n+7)>>3)
	for i := range out {
		out[i] = byte(b.words[i>>3] >> (56 - (i&7)<<3))
	}
	return out
}

// Pad appends zero bits until the length is a multiple of width. A length that already is one,
// zero included, is left alone.
func (b BitString) Pad(width int) BitString {
	rem := b.n % width
	if rem == 0 {
		return b
	}
	p := newBitString(b.n + width - rem)
	copy(p.words, b.words)
	return p
}

// Chunks splits b into consecutive width-bit pieces; a short tail, if any, becomes the last piece.
func (b BitString) Chunks(width int) []BitString {
	chunks := make([]BitString, 0, (b.n+width-1)/width)
	for off := 0; off < b.n; off += width {
		end := off + width
		if end > b.n {
			end = b.n
		}
		chunks = append(chunks, b.Slice(off, end))
	}
	return chunks
}

// Slice copies out bits [from, to).
func (b BitString) Slice(from, to int) BitString {
	s := newBitString(to - from)
	s.copyFrom(0, b, from, to-from)
	return s
}

// copyFrom overwrites n bits of b starting at dst with bits of src starting at off. b's bits in
// that range must be zero beforehand.
func (b BitString) copyFrom(dst int, src BitString, off, n int) {
	for n > 0 {
		/* Moves up to one word at a time, bounded by both cursors' word edges. */
		take := 64 - off&63
		if room := 64 - dst&63; room < take {
			take = room
		}
		if n < take {
			take = n
		}
		chunk := src.words[off>>6] << (off & 63) >> (64 - take)
		b.words[dst>>6] |= chunk << (64 - take - dst&63)
		dst, off, n = dst+take, off+take, n-take
	}
}

// Xor returns the bitwise XOR of two equal-length BitStrings.
func (b BitString) Xor(o BitString) BitString {
	x := newBitString(b.n)
	for i := range x.words {
		x.words[i] = b.words[i] ^ o.words[i]
	}
	return x
}

// Not returns the bitwise complement of b.
func (b BitString) Not() BitString {
	x := newBitString(b.n)
	for i := range x.words {
		x.words[i] = ^b.words[i]
	}
	x.clearTail()
	return x
}

// Reverse returns b with its bit order reversed.
func (b BitString) Reverse() BitString {
	x := newBitString(b.n)
	for i := range b.words {
		/* Word i lands, reversed, right-aligned against the end of the first len(words)*64 bits. */
		x.words[len(b.words)-1-i] = bits.Reverse64(b.words[i])
	}
	if shift := len(x.words)<<6 - b.n; shift > 0 {
		/* Left-aligns the result by the amount of slack in the final word. */
		for i := range x.words {
			x.words[i] <<= shift
			if i+1 < len(x.words) {
				x.words[i] |= x.words[i+1] >> (64 - shift)
			}
		}
	}
	return x
}

func (b BitString) clearTail() {
	if rem := b.n & 63; rem != 0 {
		b.words[len(b.words)-1] &= ^uint64(0) << (64 - rem)
	}
}

// EncodeBlocks encodes data, pads it to a multiple of BlockBits, and splits it into blocks. Empty
// input yields no blocks at all.
func EncodeBlocks(data []byte) []BitString {
	return Encode(data).Pad(BlockBits).Chunks(BlockBits)
}
