package main

import (
	. "fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dterei/gotsc"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var calltime = gotsc.TSCOverhead()

// throughput prints alg's speed, estimated cycles per byte, and allocations per call at every size.
func throughput(alg algorithm, sizes []int) {
	s := len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		payload := make([]byte, v)

		totalHz, polls, mut := uint64(0), uint64(0), &sync.Mutex{}
		done := make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					select {
					case <-done:
						return
					case <-time.After(time.Millisecond * 9):
					}
				}
			}()
		}
		r := testing.Benchmark(func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := b.N; i > 0; i-- {
				alg.sum(payload)
			}
		})
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		mut.Unlock()
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}

	Println(alg.name)
	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

// sizeHeader labels the throughput columns to line up with fmtFloats.
func sizeHeader(sizes []int) string {
	var b strings.Builder
	b.WriteString("      ")
	for _, v := range sizes {
		b.WriteString("  " + Sprintf("%8s", sizeLabel(v)))
	}
	return b.String()
}

func sizeLabel(n int) string {
	switch {
	case n >= 1<<30 && n%(1<<30) == 0:
		return Sprint(n>>30, "G")
	case n >= 1<<20 && n%(1<<20) == 0:
		return Sprint(n>>20, "M")
	case n >= 1<<10 && n%(1<<10) == 0:
		return Sprint(n>>10, "K")
	}
	return Sprint(n, "B")
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}
