package main

import (
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/radixhash"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The comparative suite: every algorithm hashes every input of every category, one timed sample per
// input, and the samples are reduced to the statistics written to the JSON results file.

type algorithm struct {
	name string
	sum  func([]byte)
}

var algorithms = []algorithm{
	{"Radix-Hash", func(b []byte) { radixhash.Sum(b) }},
	{"SHA-256", func(b []byte) { sha256.Sum256(b) }},
	{"SHA3-256", func(b []byte) { sha3.Sum256(b) }},
	{"SHA3-512", func(b []byte) { sha3.Sum512(b) }},
	{"BLAKE2b", func(b []byte) { blake2b.Sum512(b) }},
	{"BLAKE3", func(b []byte) { blake3.Sum256(b) }},
	{"XXH3", func(b []byte) { xxh3.Hash(b) }},
}

type sample struct {
	seconds float64 /* per call */
	memory  float64 /* bytes allocated per call */
	size    int
}

// Stats summarizes one algorithm over one category. Times are in seconds, memory in bytes.
type Stats struct {
	Algorithm    string  `json:"algorithm"`
	Category     string  `json:"category"`
	AvgTime      float64 `json:"avg_time"`
	MinTime      float64 `json:"min_time"`
	MaxTime      float64 `json:"max_time"`
	MedianTime   float64 `json:"median_time"`
	AvgMemory    float64 `json:"avg_memory"`
	MaxMemory    float64 `json:"max_memory"`
	AvgInputSize float64 `json:"avg_input_size"`
	Throughput   float64 `json:"throughput_mb_s"`
	Samples      int     `json:"samples"`
}

// Results holds every Stats of a run, keyed by algorithm then category, plus the order both were
// run in.
type Results struct {
	Algorithms []string
	Categories []string
	Stats      map[string]map[string]Stats
}

func (r Results) get(alg, cat string) (Stats, bool) {
	s, ok := r.Stats[alg][cat]
	return s, ok
}

func measure(sum func([]byte), data []byte, repeat int) sample {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	for i := repeat; i > 0; i-- {
		sum(data)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)
	return sample{
		seconds: elapsed.Seconds() / float64(repeat),
		memory:  float64(after.TotalAlloc-before.TotalAlloc) / float64(repeat),
		size:    len(data),
	}
}

func summarize(alg, cat string, samples []sample) Stats {
	s := Stats{Algorithm: alg, Category: cat, Samples: len(samples), MinTime: math.Inf(1)}
	if len(samples) == 0 {
		s.MinTime = 0
		return s
	}
	times := make([]float64, len(samples))
	var rates []float64
	for i, v := range samples {
		times[i] = v.seconds
		s.AvgTime += v.seconds
		s.AvgMemory += v.memory
		s.AvgInputSize += float64(v.size)
		s.MinTime = math.Min(s.MinTime, v.seconds)
		s.MaxTime = math.Max(s.MaxTime, v.seconds)
		s.MaxMemory = math.Max(s.MaxMemory, v.memory)
		if v.seconds > 0 {
			rates = append(rates, float64(v.size)/v.seconds/1024/1024)
		}
	}
	count := float64(len(samples))
	s.AvgTime /= count
	s.AvgMemory /= count
	s.AvgInputSize /= count
	s.MedianTime = median(times)
	for _, r := range rates {
		s.Throughput += r
	}
	if len(rates) > 0 {
		s.Throughput /= float64(len(rates))
	}
	return s
}

func median(v []float64) float64 {
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	mid := len(sorted) >> 1
	if len(sorted)&1 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// runSuite benchmarks algs over every category of cfg.
func runSuite(cfg Config, algs []algorithm) Results {
	r := Results{Stats: map[string]map[string]Stats{}}
	for _, cat := range cfg.Categories {
		r.Categories = append(r.Categories, cat.Name)
	}
	for _, alg := range algs {
		log.Infof("Testing %s...", alg.name)
		r.Algorithms = append(r.Algorithms, alg.name)
		r.Stats[alg.name] = map[string]Stats{}
		for _, cat := range cfg.Categories {
			log.Debugf("  - %s inputs...", cat.Name)
			samples := make([]sample, 0, len(cat.Inputs))
			for _, in := range cat.Inputs {
				samples = append(samples, measure(alg.sum, in.Bytes(), cfg.Repeat))
			}
			r.Stats[alg.name][cat.Name] = summarize(alg.name, cat.Name, samples)
		}
	}
	return r
}
