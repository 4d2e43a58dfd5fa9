package radixhash

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scrambleString is a deliberately naive character-level rendition of Scramble used as an oracle.
func scrambleString(s string) string {
	half := len(s) / 2
	x := make([]byte, half)
	for i := range x {
		x[i] = '0'
		if s[i] != s[half+i] {
			x[i] = '1'
		}
	}
	y := reverseString(notString(string(x)))

	var out strings.Builder
	pos := 0
	for pos < half {
		run := 1
		for pos+run < half && x[pos+run] == x[pos] {
			run++
		}
		out.Write(x[pos : pos+run])
		out.WriteString(y[pos : pos+run])
		pos += run
	}
	return out.String()
}

func randomBits(r *rand.Rand, n int) BitString {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte('0' + byte(r.Intn(2)))
	}
	b, _ := ParseBits(sb.String())
	return b
}

func TestScrambleMatchesOracle(t *testing.T) {
	r := rand.New(rand.NewSource(772))
	for _, n := range []int{0, 2, 10, 128, 130, 386, BlockBits} {
		for i := 0; i < 20; i++ {
			b := randomBits(r, n)
			got, err := Scramble(b)
			if err != nil {
				t.Fatalf("Scramble(%d bits): %v", n, err)
			}
			if diff := cmp.Diff(scrambleString(b.String()), got.String()); diff != "" {
				t.Fatalf("Scramble(%d bits) mismatch (-want +got):\n%s", n, diff)
			}
		}
	}
}

func TestScramblePreservesLength(t *testing.T) {
	for _, b := range append(EncodeBlocks([]byte("a")), EncodeBlocks(make([]byte, 400))...) {
		s, err := Scramble(b)
		if err != nil {
			t.Fatalf("Scramble: %v", err)
		}
		if s.Len() != BlockBits {
			t.Fatalf("scrambled length = %d, want %d", s.Len(), BlockBits)
		}
	}
}

func TestScrambleRunsReconstructX(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	b := randomBits(r, BlockBits)
	x := b.Slice(0, BlockBits/2).Xor(b.Slice(BlockBits/2, BlockBits))
	s, _ := Scramble(b)

	/* The first half of every (x-run, y-run) pair in the output is a run of x, in order. */
	var rebuilt strings.Builder
	out, dst := s.String(), 0
	for _, run := range runLengths(x) {
		rebuilt.WriteString(out[dst : dst+run])
		dst += run << 1
	}
	if rebuilt.String() != x.String() {
		t.Fatal("consumed run segments do not reconstruct x")
	}
}

func TestRunLengths(t *testing.T) {
	b, _ := ParseBits("0001101111")
	if diff := cmp.Diff([]int{3, 2, 1, 4}, runLengths(b)); diff != "" {
		t.Fatalf("runLengths mismatch (-want +got):\n%s", diff)
	}
	if runs := runLengths(BitString{}); len(runs) != 0 {
		t.Fatalf("runLengths(empty) = %v, want none", runs)
	}
}

func TestScrambleRejectsOddWidths(t *testing.T) {
	b, _ := ParseBits("10101")
	if _, err := Scramble(b); !errors.Is(err, ErrInvalidBlockSize) {
		t.Fatalf("Scramble(5 bits) error = %v, want ErrInvalidBlockSize", err)
	}
}
