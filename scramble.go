package radixhash

import "fmt"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Scramble diffuses bit positions within a block before compression. The block's halves are XORed
// into x; x's complement, reversed, becomes y. Then, run by run through x's runs of equal bits,
// the run's bits of x and the same number of y's bits are interleaved into the output. Both x and
// y are consumed sequentially, so the output is exactly as long as the input.
//
// Scramble makes no claim of invertibility. Odd-length input cannot be halved and is rejected with
// ErrInvalidBlockSize.
func Scramble(b BitString) (BitString, error) {
	if b.n&1 != 0 {
		return BitString{}, fmt.Errorf("scramble %d bits: %w", b.n, ErrInvalidBlockSize)
	}
	half := b.n >> 1
	x := b.Slice(0, half).Xor(b.Slice(half, b.n))
	y := x.Not().Reverse()

	out, pos, dst := newBitString(b.n), 0, 0
	for _, run := range runLengths(x) {
		out.copyFrom(dst, x, pos, run)
		out.copyFrom(dst+run, y, pos, run)
		pos, dst = pos+run, dst+run<<1
	}
	return out, nil
}

// runLengths returns the lengths of the maximal runs of equal bits in b, in order. Only lengths are
// kept; they always sum to b.Len().
func runLengths(b BitString) []int {
	if b.n == 0 {
		return nil
	}
	runs, count, prev := []int{}, 1, b.Bit(0)
	for i := 1; i < b.n; i++ {
		if bit := b.Bit(i); bit == prev {
			count++
		} else {
			runs = append(runs, count)
			count, prev = 1, bit
		}
	}
	return append(runs, count)
}
