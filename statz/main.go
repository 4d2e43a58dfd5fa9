package main

import (
	"errors"
	. "fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var log = logrus.New()

type options struct {
	config, output            string
	noMonobit, noThroughput   bool
	noSuite, verbose, noCodes bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("statz", pflag.ContinueOnError)
	fs.StringVarP(&o.config, "config", "f", "", "YAML file overriding the default datasets and settings")
	fs.StringVarP(&o.output, "output", "o", "", "prefix of the results and report files (overrides the config)")
	fs.BoolVar(&o.noMonobit, "no-monobit", false, "skip the Monobit test")
	fs.BoolVar(&o.noThroughput, "no-throughput", false, "skip the throughput table")
	fs.BoolVar(&o.noSuite, "no-suite", false, "skip the comparative suite and its report files")
	fs.BoolVar(&o.noCodes, "no-codes", false, "log without formatting codes")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log each category as it is measured")
	fs.SortFlags = false
	return o, fs.Parse(args)
}

func main() { os.Exit(program(os.Args[1:])) }

func program(args []string) int {
	o, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		log.Error(err)
		return 2
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: o.noCodes, DisableTimestamp: true})
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(o.config)
	if err != nil {
		log.Error(err)
		return 2
	}
	if o.output != "" {
		cfg.Prefix = o.output
	}
	if o.noMonobit {
		cfg.Monobit = 0
	}

	Printf("Running Statz on %d CPUs!\n%s/%s\n\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	if cfg.Monobit > 0 {
		for _, series := range []struct {
			name  string
			input func(int) []byte
		}{{"Integer", integerInput}, {"Random", randomInput}} {
			pct, err := monobit(cfg.Monobit, series.input)
			if err != nil {
				log.Error(err)
				return 1
			}
			Printf("%-8s input Monobit test:  %6.3f%%\n", series.name, pct)
		}
		Println(" ============================================= ")
	}

	if !o.noThroughput && len(cfg.Sizes) > 0 {
		Println(sizeHeader(cfg.Sizes))
		for _, alg := range algorithms {
			throughput(alg, cfg.Sizes)
		}
	}

	if !o.noSuite {
		results := runSuite(cfg, algorithms)
		report := formatReport(results)
		Println(report)
		jsonPath, textPath, err := save(results, report, cfg.Prefix)
		if err != nil {
			log.Error(err)
			return 1
		}
		Printf("\nResults saved:\n- %s\n- %s\n", jsonPath, textPath)
	}

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
	return 0
}
