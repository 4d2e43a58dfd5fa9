package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Config controls one statz run. Every field has a default; a YAML file given with --config
// replaces whichever top-level fields it sets.
type Config struct {
	// Prefix names the output files: <prefix>_results.json and <prefix>_report.txt.
	Prefix string `yaml:"prefix"`

	// Repeat is how many times each input is hashed per sample; the sample's time and memory are
	// per-call averages.
	Repeat int `yaml:"repeat"`

	// Monobit is the number of digests per Monobit series. Zero skips the test.
	Monobit int `yaml:"monobit"`

	// Sizes are the input sizes, in bytes, of the throughput table.
	Sizes []int `yaml:"sizes"`

	Categories []Category `yaml:"categories"`
}

// Category is a named group of benchmark inputs.
type Category struct {
	Name   string  `yaml:"name"`
	Inputs []Input `yaml:"inputs"`
}

// Input is Text repeated Count times.
type Input struct {
	Text  string `yaml:"text"`
	Count int    `yaml:"count"`
}

func (in Input) Bytes() []byte {
	if in.Count < 1 {
		return []byte(in.Text)
	}
	return []byte(strings.Repeat(in.Text, in.Count))
}

func defaultConfig() Config {
	return Config{
		Prefix:  "radix_hash_benchmark",
		Repeat:  1,
		Monobit: 10000,
		Sizes:   []int{64, 4 << 10, 512 << 10},
		Categories: []Category{
			{"small", []Input{
				{"hello", 1},
				{"test", 1},
				{"a", 1},
				{"123", 1},
				{"Hello World!", 1},
			}},
			{"medium", []Input{
				{"This is a medium length test string for performance evaluation.", 10},
				{"Lorem ipsum dolor sit amet, consectetur adipiscing elit.", 20},
				{"Performance testing with various input sizes and patterns.", 15},
				{"A", 1000},
				{"0123456789", 100},
			}},
			{"large", []Input{
				{"Large text data for comprehensive performance analysis.", 1000},
				{"X", 10000},
				{"The quick brown fox jumps over the lazy dog.", 2000},
				{"Lorem ipsum ", 5000},
				{"Performance benchmark data ", 3000},
			}},
			{"patterns", []Input{
				{"a", 10000},
				{"ab", 5000},
				{"0123456789", 1000},
				{"AbCdEfGhIjKlMnOpQrStUvWxYz", 400},
				{"\x00\x01\x02\x03", 2500},
			}},
		},
	}
}

// loadConfig returns the defaults overlaid with the YAML file at path, if any.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Prefix == "" {
		return errors.New("prefix is empty")
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat is %d, must be at least 1", c.Repeat)
	}
	if c.Monobit < 0 {
		return fmt.Errorf("monobit is %d, must not be negative", c.Monobit)
	}
	for _, size := range c.Sizes {
		if size < 1 {
			return fmt.Errorf("throughput size %d is not positive", size)
		}
	}
	if len(c.Categories) == 0 {
		return errors.New("no categories")
	}
	seen := map[string]bool{}
	for _, cat := range c.Categories {
		switch {
		case cat.Name == "":
			return errors.New("category without a name")
		case seen[cat.Name]:
			return fmt.Errorf("category %q defined twice", cat.Name)
		case len(cat.Inputs) == 0:
			return fmt.Errorf("category %q has no inputs", cat.Name)
		}
		seen[cat.Name] = true
	}
	return nil
}
