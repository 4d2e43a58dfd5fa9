package radixhash

import (
	"math/big"
	"runtime"
	"sync"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the Go API: Sum and its tracing variants drive every block of a message through
// Scramble and the compression function and XOR-fold the residues into one 772-bit Digest.

type block struct {
	dex  int
	bits BitString
}

type residual struct {
	dex int
	sum *big.Int
}

type chain struct {
	fold    Fold
	to      chan block
	from    chan residual
	summing sync.WaitGroup
	folded  chan struct{}
	final   *big.Int
	trace   []string
}

var threads = runtime.NumCPU()
var mask = new(big.Int).Sub(new(big.Int).Lsh(one, BlockBits), one)

// Sum returns the Radix-Hash digest of msg. The empty message hashes to the zero Digest.
//
// Blocks are independent of one another and are compressed in parallel; because they are combined
// by XOR, reordering whole blocks of a message does not change its digest.
func Sum(msg []byte) Digest {
	d, _ := sum(msg, FoldCarry, false)
	return d
}

// SumTrace is Sum, but also returns each block's residue as hexadecimal, in block order.
func SumTrace(msg []byte) (Digest, []string) { return sum(msg, FoldCarry, true) }

// SumTraceWith is SumTrace with an explicit fold variant. Only FoldCarry produces real digests.
func SumTraceWith(msg []byte, f Fold) (Digest, []string) { return sum(msg, f, true) }

func sum(msg []byte, f Fold, trace bool) (Digest, []string) {
	blocks := EncodeBlocks(msg)
	c := &chain{fold: f, final: new(big.Int)}
	if trace {
		c.trace = make([]string, len(blocks))
	}

	switch len(blocks) {
	case 0:
	case 1:
		/* Not worth a goroutine. */
		c.collect(residual{0, c.consume(blocks[0])})
	default:
		workers := threads
		if len(blocks) < workers {
			workers = len(blocks)
		}
		c.initFolder()
		c.initWorkers(workers)
		for i, b := range blocks {
			c.to <- block{i, b}
		}
		close(c.to)
		c.summing.Wait() /* All residues have been sent. */
		close(c.from)
		<-c.folded
	}

	c.final.And(c.final, mask)
	return digestOf(c.final), c.trace
}

func (c *chain) consume(b BitString) *big.Int {
	scrambled, err := Scramble(b)
	if err != nil {
		/* EncodeBlocks only emits BlockBits-long blocks, which is even. */
		panic(err)
	}
	return residue(scrambled, c.fold)
}

func (c *chain) collect(r residual) {
	c.final.Xor(c.final, r.sum)
	if c.trace != nil {
		c.trace[r.dex] = r.sum.Text(16)
	}
}

func (c *chain) initWorkers(n int) {
	c.to = make(chan block, n)
	c.summing.Add(n)
	for i := n; i > 0; i-- {
		go func() {
			for b := range c.to {
				c.from <- residual{b.dex, c.consume(b.bits)}
			}
			c.summing.Done()
		}()
	}
}

// initFolder starts the only goroutine that touches c.final and c.trace while workers run.
func (c *chain) initFolder() {
	c.from = make(chan residual, threads)
	c.folded = make(chan struct{})
	go func() {
		for r := range c.from {
			c.collect(r)
		}
		close(c.folded)
	}()
}
