package main

import (
	"bufio"
	"encoding/base64"
	"errors"
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/hashicorp/go-multierror"
	"github.com/p7r0x7/radixhash"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var fold = radixhash.FoldCarry
var warnings *multierror.Error

func main() { os.Exit(program(os.Args[1:])) }

// help prints a usage menu and quietly exits if no non-flag arguments are given. To consistently
// correctly render this menu in most terminal windows, its content should be no wider than 80
// columns.
func help(flags *FlagSet) {
	origin, err := os.Executable()
	if err != nil {
		origin = "radixsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(stderr, yell, "The 772-bit Radix-Hash digest, for experimentation only.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bBt] [--trace] [--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-bBt] [--trace] [--quiet|no-codes] [--strict] -s STRING..."+n,
		spaces, "[-bBt] [--trace] [--quiet|no-codes] [--strict] -p"+n,
		spaces, "[--quiet|no-codes] [--strict] -c FILE..."+n+n+
			"Options:"+n)
	flags.PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// This program is a command-line interface for radixhash: It handles various flags and an unlimited
// number of arguments, hashing files, strings, or prompted text as required by the command-line
// operator.
func program(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		log.Error(err)
		return invalid
	}
	warnings = nil
	if pDebug {
		defer profile()()
	}

	if pHelp || (flags.NArg() == 0 && !pPrompt) {
		help(flags)
		return success
	}
	if f, err := radixhash.ParseFold(pFold); err != nil {
		log.Error(err)
		return invalid
	} else {
		fold = f
	}

	switch {
	case pCheck:
		for _, list := range flags.Args() {
			check(list)
		}
	case pPrompt:
		Fprint(stderr, "Enter text to hash: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			warn(err)
			break
		}
		line = strings.TrimRight(line, "\r\n")
		hash(strToBytes(line), line, true, time.Now())
	default:
		for _, target := range flags.Args() {
			start := time.Now()
			if pString {
				hash(strToBytes(target), target, true, start)
				continue
			}
			msg, err := read(target)
			if err != nil {
				warn(err)
				continue
			}
			hash(msg, target, false, start)
		}
	}

	if warnings.ErrorOrNil() != nil {
		if count := len(warnings.Errors); !pQuiet {
			if count == 1 {
				Fprint(stderr, "1 ", purp, "target is a directory, is otherwise inaccessible, or failed.", zero, n)
			} else {
				Fprint(stderr, count, " ", purp, "targets are directories, are otherwise inaccessible, or failed.", zero, n)
			}
		}
		return failure
	}
	return success
}

func read(target string) ([]byte, error) {
	if target == "-" || target == os.Stdin.Name() {
		msg, err := io.ReadAll(stdin)
		if c, ok := stdin.(io.Closer); ok {
			go c.Close() /* STDIN should not be reused. */
		}
		return msg, err
	}
	return os.ReadFile(target)
}

// hash computes and prints one digest, preceded by its per-block trace when requested.
func hash(msg []byte, target string, literal bool, start time.Time) {
	var digest radixhash.Digest
	if pTrace {
		var blocks []string
		digest, blocks = radixhash.SumTraceWith(msg, fold)
		if fold != radixhash.FoldCarry {
			digest = radixhash.Sum(msg) /* --fold changes the trace, never the digest */
		}
		printTrace(msg, target, blocks)
	} else {
		digest = radixhash.Sum(msg)
	}
	delta := ""
	if pTime {
		d := time.Since(start)
		if d.Microseconds() > 99 {
			d = d.Truncate(10 * time.Microsecond)
		}
		delta = " (" + d.String() + ")"
	}
	log.WithField("bytes", len(msg)).Debugf("hashed %q", target)

	str := digest.Hex()
	switch {
	case pBinary:
		str = digest.String()
	case pBase64:
		str = base64.StdEncoding.EncodeToString(digest[:])
	}
	if !pQuiet {
		Fprint(stdout, yell)
	}
	Fprint(stdout, str)

	if pQuiet {
		Fprint(stdout, n)
	} else if literal {
		Fprint(stdout, zero, `  "`, target, `"`, zero, delta, n)
	} else if pNoCodes {
		Fprint(stdout, `  `, filepath.Clean(target), delta, n)
	} else {
		Fprint(stdout, zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
	}
}

func printTrace(msg []byte, target string, blocks []string) {
	if pQuiet {
		return
	}
	rule := strings.Repeat("=", 80)
	Fprint(stdout, purp, "Radix-Hash block trace", zero, " (", fold, " fold)", n, rule, n,
		"Target:          ", target, n,
		"Message length:  ", len(msg), " bytes", n,
		"Total bits:      ", len(blocks)*radixhash.BlockBits, n,
		"Blocks:          ", len(blocks), n, rule, n)
	for i, residue := range blocks {
		Fprint(stdout, n, purp, "--- Block ", i+1, " ---", zero, n, "Residue: ", residue, n)
	}
	Fprint(stdout, n, rule, n)
}

// check verifies every "<digest>  <path>" line of list; digests may be hex or binary.
func check(list string) {
	raw, err := read(list)
	if err != nil {
		warn(err)
		return
	}
	for i, line := range strings.Split(strings.TrimRight(string(raw), "\r\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		sum, path, ok := strings.Cut(line, "  ")
		if !ok {
			warn(Errorf("%s:%d: expected \"<digest>  <path>\"", list, i+1))
			continue
		}
		want, err := radixhash.ParseDigest(sum)
		if err != nil {
			warn(Errorf("%s:%d: %w", list, i+1, err))
			continue
		}
		msg, err := read(path)
		if err != nil {
			warn(err)
			continue
		}
		if radixhash.Sum(msg) == want {
			if !pQuiet {
				Fprint(stdout, path, ": ", yell, "OK", zero, n)
			}
			continue
		}
		Fprint(stdout, path, ": ", purp, "FAILED", zero, n)
		warn(Errorf("%s: digest mismatch", path))
	}
}

// profile starts the CPU profile and returns a function writing it and every other runtime profile
// out.
func profile() func() {
	cf, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	_ = pprof.StartCPUProfile(cf)
	return func() {
		pprof.StopCPUProfile()
		cf.Close()
		for _, name := range [...]string{"goroutine", "block", "allocs", "mutex"} {
			f, err := os.Create(name + ".prof")
			if err != nil {
				log.Warn(err)
				continue
			}
			_ = pprof.Lookup(name).WriteTo(f, 0)
			f.Close()
		}
	}
}

// strToBytes converts any string into a byte slice without allocating memory; this is safe so long
// as the underlying memory is not modified during its lifetime.
func strToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func warn(err error) {
	if pStrict {
		panic(err)
	}
	log.Warn(err)
	warnings = multierror.Append(warnings, err)
}
