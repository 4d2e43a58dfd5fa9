package radixhash

import (
	"fmt"
	"math/big"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// A Digest is a 772-bit Radix-Hash value stored big-endian; its top 4 bits are always zero.
type Digest [DigestBytes]byte

/* 97 bytes hold 776 bits; the digest's bit i lives at bit i+pad of the array. */
const pad = DigestBytes<<3 - BlockBits

func digestOf(n *big.Int) (d Digest) {
	n.FillBytes(d[:])
	return d
}

func (d Digest) bit(i int) byte { return d[(i+pad)>>3] >> (7 - (i+pad)&7) & 1 }

// Int returns the digest as a non-negative integer below 2^772.
func (d Digest) Int() *big.Int { return new(big.Int).SetBytes(d[:]) }

// String returns the canonical rendering: exactly 772 '0' and '1' characters, most significant bit
// first, zero-padded on the left.
func (d Digest) String() string { return d.Binary() }

func (d Digest) Binary() string {
	var sb strings.Builder
	sb.Grow(BlockBits)
	for i := 0; i < BlockBits; i++ {
		sb.WriteByte('0' + d.bit(i))
	}
	return sb.String()
}

// Hex returns the digest's value in lowercase hexadecimal with no fixed width; leading zero nibbles
// are dropped and the zero digest is "0".
func (d Digest) Hex() string { return d.Int().Text(16) }

func (d Digest) IsZero() bool { return d == Digest{} }

// ParseDigest parses either rendering of a digest: the 772-character binary form produced by
// Digest.String, or the hexadecimal form produced by Digest.Hex. A hex value must fit in 772 bits.
// No hex rendering is 772 characters long, so the two never overlap.
func ParseDigest(s string) (Digest, error) {
	if len(s) != BlockBits {
		return parseHex(s)
	}
	var d Digest
	for i := 0; i < BlockBits; i++ {
		switch s[i] {
		case '0':
		case '1':
			d[(i+pad)>>3] |= 1 << (7 - (i+pad)&7)
		default:
			return Digest{}, fmt.Errorf("%w: invalid bit %q at offset %d", ErrInvalidDigest, s[i], i)
		}
	}
	return d, nil
}

func parseHex(s string) (Digest, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return Digest{}, fmt.Errorf("%w: %q is neither binary nor hexadecimal", ErrInvalidDigest, s)
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return Digest{}, fmt.Errorf("%w: %q is neither binary nor hexadecimal", ErrInvalidDigest, s)
	}
	if n.BitLen() > BlockBits {
		return Digest{}, fmt.Errorf("%w: %d-bit value, want at most %d", ErrInvalidDigest, n.BitLen(), BlockBits)
	}
	return digestOf(n), nil
}
