package main

import (
	"encoding/json"
	. "fmt"
	"os"
	"runtime"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const baseline, subject = "SHA-256", "Radix-Hash"

func formatReport(r Results) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	Fprintln(&b, rule)
	Fprintln(&b, "RADIX-HASH PERFORMANCE BENCHMARK REPORT")
	Fprintln(&b, rule)
	Fprintln(&b)
	Fprintln(&b, "System Information:")
	Fprintf(&b, "- CPU: %d cores\n", runtime.NumCPU())
	Fprintf(&b, "- Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	Fprintf(&b, "- Go: %s\n", runtime.Version())
	Fprintln(&b)

	Fprintln(&b, "PERFORMANCE COMPARISON (Average Values)")
	Fprintln(&b, strings.Repeat("-", 80))
	Fprintf(&b, "%-15s %-10s %-12s %-12s %-15s\n", "Algorithm", "Category", "Time (ms)", "Memory (KB)", "Throughput (MB/s)")
	Fprintln(&b, strings.Repeat("-", 80))
	for _, alg := range r.Algorithms {
		for _, cat := range r.Categories {
			s, ok := r.get(alg, cat)
			if !ok {
				continue
			}
			Fprintf(&b, "%-15s %-10s %-12.3f %-12.1f %-15.2f\n", alg, cat, s.AvgTime*1000, s.AvgMemory/1024, s.Throughput)
		}
	}

	for _, alg := range r.Algorithms {
		Fprintf(&b, "\n%s - DETAILED ANALYSIS\n", alg)
		Fprintln(&b, strings.Repeat("-", 40))
		for _, cat := range r.Categories {
			s, ok := r.get(alg, cat)
			if !ok {
				continue
			}
			Fprintf(&b, "\n%s INPUTS:\n", strings.ToUpper(cat))
			Fprintf(&b, "  Average time: %.3f ms\n", s.AvgTime*1000)
			Fprintf(&b, "  Min time: %.3f ms\n", s.MinTime*1000)
			Fprintf(&b, "  Max time: %.3f ms\n", s.MaxTime*1000)
			Fprintf(&b, "  Median time: %.3f ms\n", s.MedianTime*1000)
			Fprintf(&b, "  Average memory: %.1f KB\n", s.AvgMemory/1024)
			Fprintf(&b, "  Max memory: %.1f KB\n", s.MaxMemory/1024)
			Fprintf(&b, "  Throughput: %.2f MB/s\n", s.Throughput)
			Fprintf(&b, "  Samples: %d\n", s.Samples)
		}
	}

	if _, ok := r.Stats[subject]; ok {
		if _, ok := r.Stats[baseline]; ok {
			writeComparison(&b, r)
		}
	}
	return b.String()
}

// writeComparison relates Radix-Hash's average time and memory to SHA-256's, category by category.
// A ratio whose denominator is zero is reported as unmeasurable rather than divided by.
func writeComparison(b *strings.Builder, r Results) {
	rule := strings.Repeat("=", 50)
	Fprintf(b, "\n%s\nRADIX-HASH vs SHA-256 COMPARISON\n%s\n", rule, rule)
	for _, cat := range r.Categories {
		x, ok1 := r.get(subject, cat)
		y, ok2 := r.get(baseline, cat)
		if !ok1 || !ok2 {
			continue
		}
		Fprintf(b, "\n%s Category:\n", strings.ToUpper(cat))
		switch speed := ratio(y.AvgTime, x.AvgTime); {
		case speed == 0:
			Fprintln(b, "  Speed: too fast to compare")
		case speed > 1:
			Fprintf(b, "  Radix-Hash is %.2fx FASTER than SHA-256\n", speed)
		default:
			Fprintf(b, "  SHA-256 is %.2fx faster than Radix-Hash\n", 1/speed)
		}
		switch mem := ratio(x.AvgMemory, y.AvgMemory); {
		case mem == 0:
			Fprintln(b, "  Memory: no allocations to compare")
		case mem > 1:
			Fprintf(b, "  Radix-Hash uses %.2fx MORE memory than SHA-256\n", mem)
		default:
			Fprintf(b, "  Radix-Hash uses %.2fx LESS memory than SHA-256\n", 1/mem)
		}
	}
}

func ratio(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return a / b
}

// save writes the raw statistics and the rendered report next to each other, returning their paths.
func save(r Results, report, prefix string) (string, string, error) {
	data, err := json.MarshalIndent(r.Stats, "", "  ")
	if err != nil {
		return "", "", Errorf("encoding results: %w", err)
	}
	jsonPath, textPath := prefix+"_results.json", prefix+"_report.txt"
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", Errorf("writing results: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(report), 0o644); err != nil {
		return "", "", Errorf("writing report: %w", err)
	}
	return jsonPath, textPath, nil
}
