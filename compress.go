package radixhash

import (
	"fmt"
	"math/big"
)

// N.B.: This project is currently InDev.
// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The following collection of functions backend the reference Go implementation of the Radix-Hash
// compression function: each scrambled block is read as a base-3 numeral, its hexadecimal digits are
// folded pairwise by modular exponentiation, and the residue is normalized away from small values.

const (
	modExp        = 486
	modBits       = 771 /* 2^770 < 3^486 < 2^771 */
	digitsPerWord = 40
	/* 3^40 is the largest power of three below 2^64; base-3 digits are batched into uint64s of this
	many digits before being shifted into the big.Int, 20 multiprecision steps per 772-bit block. */
	pow3Word uint64 = 12157665459056928801
)

var (
	one     = big.NewInt(1)
	modulus = new(big.Int).Exp(big.NewInt(3), big.NewInt(modExp), nil)
	twiceM  = new(big.Int).Lsh(modulus, 1)
	/* Every exponentiation the fold performs has a base and exponent in [2,17], so all 256 of them
	are computed once here. Entries are shared and must never be written to. */
	powers = powerTable()
)

func powerTable() (t [16][16]*big.Int) {
	for a := range t {
		for b := range t[a] {
			t[a][b] = new(big.Int).Exp(big.NewInt(int64(a+2)), big.NewInt(int64(b+2)), modulus)
		}
	}
	return t
}

// Modulus returns a copy of M = 3^486, the arithmetic domain of every per-block fold.
func Modulus() *big.Int { return new(big.Int).Set(modulus) }

// Fold selects how pairs of digit values are folded into a block's running total.
type Fold int

const (
	// FoldCarry adds each pair's power into a term carried across pairs, then multiplies that term
	// into the total. This is the canonical fold used by Sum.
	FoldCarry Fold = iota
	// FoldDoubled multiplies a freshly doubled power into the total with no carry. An older
	// diagnostic build of Radix-Hash used it; it yields different digests and is kept only so those
	// traces can be reproduced.
	FoldDoubled
)

func (f Fold) String() string {
	switch f {
	case FoldCarry:
		return "carry"
	case FoldDoubled:
		return "doubled"
	}
	return fmt.Sprintf("Fold(%d)", int(f))
}

// ParseFold is the inverse of Fold.String.
func ParseFold(s string) (Fold, error) {
	switch s {
	case "carry":
		return FoldCarry, nil
	case "doubled":
		return FoldDoubled, nil
	}
	return 0, fmt.Errorf("radixhash: unknown fold %q", s)
}

// Compress maps a scrambled block to its normalized residue, rendered as lowercase hexadecimal
// without leading zeroes.
func Compress(b BitString) string { return CompressWith(b, FoldCarry) }

// CompressWith is Compress with an explicit fold variant.
func CompressWith(b BitString, f Fold) string { return residue(b, f).Text(16) }

func residue(b BitString, f Fold) *big.Int {
	return normalize(fold(digitValues(base3(b)), f))
}

// base3 reads b most-significant bit first as a base-3 numeral in which a 0 bit is the digit 1 and
// a 1 bit is the digit 2. The digit 0 never occurs.
func base3(b BitString) *big.Int {
	n, word := new(big.Int), new(big.Int)
	acc, scale := uint64(0), uint64(1)
	for i := 0; i < b.n; i++ {
		acc = acc*3 + 1 + uint64(b.Bit(i))
		scale *= 3
		if scale == pow3Word || i == b.n-1 {
			n.Mul(n, word.SetUint64(scale))
			n.Add(n, word.SetUint64(acc))
			acc, scale = 0, 1
		}
	}
	return n
}

// digitValues returns every hexadecimal digit of n, most significant first, each plus 2.
func digitValues(n *big.Int) []byte {
	vals := []byte(n.Text(16))
	for i, c := range vals {
		if c <= '9' {
			vals[i] = c - '0' + 2
		} else {
			vals[i] = c - 'a' + 12
		}
	}
	return vals
}

// fold reduces digit values, two at a time, into a total modulo M. An unpaired final value is
// cubed and added rather than multiplied in.
func fold(vals []byte, f Fold) *big.Int {
	total, term := big.NewInt(2), new(big.Int)
	i := 0
	for ; i+1 < len(vals); i += 2 {
		p := powers[vals[i]-2][vals[i+1]-2]
		if f == FoldDoubled {
			term.Lsh(p, 1).Mod(term, modulus)
		} else {
			term.Add(term, p).Mod(term, modulus)
		}
		total.Mul(total, term).Mod(total, modulus)
	}
	if i < len(vals) {
		total.Add(total, powers[vals[i]-2][3-2]).Mod(total, modulus)
	}
	return total
}

// normalize pushes totals shorter than M's bit length up to 2M - total and nudges totals of exactly
// that length up by one, so XOR-combined blocks do not drift toward small magnitudes.
func normalize(total *big.Int) *big.Int {
	switch bl := total.BitLen(); {
	case bl < modBits:
		total.Sub(twiceM, total)
	case bl == modBits:
		total.Add(total, one)
	}
	return total
}
