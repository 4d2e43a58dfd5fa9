package radixhash

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeMSBFirst(t *testing.T) {
	got := Encode([]byte("a\x01\xff")).String()
	want := "01100001" + "00000001" + "11111111"
	if got != want {
		t.Fatalf("Encode = %s, want %s", got, want)
	}
	if n := Encode(nil).Len(); n != 0 {
		t.Fatalf("Encode(nil).Len() = %d, want 0", n)
	}
}

func TestPadAndChunks(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		padded int
		blocks int
	}{
		{"empty", 0, 0, 0},
		{"one byte", 1, BlockBits, 1},
		{"96 bytes", 96, BlockBits, 1},
		{"97 bytes", 97, 2 * BlockBits, 2},
		{"exactly two blocks", 193, 2 * BlockBits, 2},
		{"1000 bytes", 1000, 11 * BlockBits, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := make([]byte, tt.size)
			for i := range msg {
				msg[i] = byte(i*7 + 3)
			}
			padded := Encode(msg).Pad(BlockBits)
			if padded.Len() != tt.padded {
				t.Fatalf("padded length = %d, want %d", padded.Len(), tt.padded)
			}
			blocks := EncodeBlocks(msg)
			if len(blocks) != tt.blocks {
				t.Fatalf("got %d blocks, want %d", len(blocks), tt.blocks)
			}
			var joined strings.Builder
			for i, b := range blocks {
				if b.Len() != BlockBits {
					t.Fatalf("block %d has %d bits", i, b.Len())
				}
				joined.WriteString(b.String())
			}
			if joined.String() != padded.String() {
				t.Fatal("blocks do not reassemble into the padded message")
			}
			if tail := padded.String()[tt.size*8:]; strings.Contains(tail, "1") {
				t.Fatal("padding contains a set bit")
			}
		})
	}
}

func TestBitStringOps(t *testing.T) {
	for _, s := range []string{
		"",
		"1",
		"0110",
		strings.Repeat("10011", 13),
		strings.Repeat("1", 64),
		strings.Repeat("0111010", 55), /* 385 bits, spans seven words */
		strings.Repeat("1100", 193),   /* 772 bits */
	} {
		b, err := ParseBits(s)
		if err != nil {
			t.Fatalf("ParseBits: %v", err)
		}
		if b.String() != s {
			t.Fatalf("String() = %q, want %q", b.String(), s)
		}
		if diff := cmp.Diff(reverseString(notString(s)), b.Not().Reverse().String()); diff != "" {
			t.Errorf("Not().Reverse() mismatch for %d bits (-want +got):\n%s", len(s), diff)
		}
		if got, want := b.OnesCount(), strings.Count(s, "1"); got != want {
			t.Errorf("OnesCount = %d, want %d", got, want)
		}
		for from := 0; from <= len(s); from += 37 {
			if got := b.Slice(from, len(s)).String(); got != s[from:] {
				t.Errorf("Slice(%d, %d) = %q, want %q", from, len(s), got, s[from:])
			}
		}
	}
}

func TestXor(t *testing.T) {
	a, _ := ParseBits("1100101")
	b, _ := ParseBits("1010011")
	if got := a.Xor(b).String(); got != "0110110" {
		t.Fatalf("Xor = %s, want 0110110", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	msg := []byte("the quick brown fox")
	if got := Encode(msg).Bytes(); string(got) != string(msg) {
		t.Fatalf("Bytes() = %q, want %q", got, msg)
	}
	b, _ := ParseBits("1011")
	if got := b.Bytes(); len(got) != 1 || got[0] != 0xb0 {
		t.Fatalf("Bytes() = %x, want b0", got)
	}
}

func TestParseBitsRejectsGarbage(t *testing.T) {
	if _, err := ParseBits("0102"); err == nil {
		t.Fatal("ParseBits accepted a '2'")
	}
}

func TestBitOutOfRange(t *testing.T) {
	b, _ := ParseBits("101") /* one word backs 64 bits, only 3 are live */
	for _, i := range []int{-1, 3, 63, 64} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Bit(%d) on a 3-bit string did not panic", i)
				}
			}()
			b.Bit(i)
		}()
	}
	if b.Bit(2) != 1 {
		t.Fatal("Bit(2) of 101 != 1")
	}
}

func notString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '0' {
			return '1'
		}
		return '0'
	}, s)
}

func reverseString(s string) string {
	r := []byte(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
