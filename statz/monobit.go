package main

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/aead/chacha20/chacha"
	"github.com/p7r0x7/radixhash"
	"golang.org/x/sync/errgroup"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const padBits = radixhash.DigestBytes*8 - radixhash.BlockBits

var streamKey = [32]byte{'r', 'a', 'd', 'i', 'x', 's', 't', 'a', 't', 'z'}

// integerInput is the big-endian encoding of i.
func integerInput(i int) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(i))
	return b
}

// randomInput is 1 KiB of ChaCha keystream whose nonce is i, so every run sees the same payloads.
func randomInput(i int) []byte {
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(i))
	c, err := chacha.NewCipher(nonce[:], streamKey[:], 20)
	if err != nil {
		panic(err)
	}
	b := make([]byte, 1024)
	c.XORKeyStream(b, b)
	return b
}

// monobit hashes input(0) through input(count-1) concurrently and returns the mean absolute
// deviation of each digest bit's frequency from one half, as a percentage of one half.
func monobit(count int, input func(int) []byte) (float64, error) {
	if count < 1 {
		return 0, nil
	}
	var tally [radixhash.BlockBits]int
	mut := &sync.Mutex{}

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	workers := runtime.NumCPU()
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local [radixhash.BlockBits]int
			for i := w; i < count; i += workers {
				countOnes(&local, radixhash.Sum(input(i)))
			}
			mut.Lock()
			for j, v := range local {
				tally[j] += v
			}
			mut.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return bias(tally[:], count), nil
}

func countOnes(tally *[radixhash.BlockBits]int, d radixhash.Digest) {
	for j := range tally {
		k := j + padBits
		tally[j] += int(d[k>>3]>>(7-k&7)) & 1
	}
}

func bias(tally []int, count int) float64 {
	half := float64(count) / 2
	var total float64
	for _, ones := range tally {
		dev := float64(ones) - half
		if dev < 0 {
			dev = -dev
		}
		total += dev
	}
	return total / float64(len(tally)) / half * 100
}
