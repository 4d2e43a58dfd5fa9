package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pFold, pNoCodesDefault = "", false
var pHelp, pBase64, pBinary, pCheck, pNoCodes, pPrompt, pQuiet, pStrict, pString, pTime, pTrace, pDebug bool
var yell, purp, und, zero string
var log = logrus.New()

var stdin io.Reader = os.Stdin
var stdout, stderr io.Writer = os.Stdout, os.Stderr

func init() {
	if err := enableVirtualTerminal(); err != nil {
		pNoCodesDefault = true
	}
}

// parseFlags resets every option to its default and then parses args into them.
func parseFlags(args []string) (*FlagSet, error) {
	pHelp, pBase64, pBinary, pCheck, pPrompt, pStrict, pString, pTime, pTrace, pDebug =
		false, false, false, false, false, false, false, false, false, false
	pNoCodes, pQuiet = pNoCodesDefault, false
	yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

	/* --quiet and --no-codes change how the menu itself renders, so they are read ahead of Parse. */
	for _, arg := range args {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	flags := NewFlagSet("radixsum", ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {}

	flags.BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	flags.BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	flags.BoolVarP(&pBinary, "binary", "B", false,
		purp+"render digests as all 772 bits"+zero)

	flags.BoolVarP(&pCheck, "check", "c", false,
		purp+"read hex or binary digests and paths from each FILE"+zero+
			n+purp+"and verify them"+zero)

	flags.BoolVar(&pDebug, "debug", false, "")
	flags.MarkHidden("debug")

	flags.StringVar(&pFold, "fold", "carry",
		purp+"fold variant shown by --trace: carry or doubled; printed"+zero+
			n+purp+"digests always use carry"+zero)

	flags.Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	flags.BoolVarP(&pPrompt, "prompt", "p", false,
		purp+"ask for one line of text on STDIN and hash it"+zero)

	flags.Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	flags.BoolVar(&pStrict, "strict", false,
		purp+"cause radixsum to panic on any error"+zero)

	flags.BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	flags.BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each message"+zero)

	flags.BoolVar(&pTrace, "trace", false,
		purp+"print every block's intermediate residue before each"+zero+
			n+purp+"digest"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	flags.SortFlags = false
	err := flags.Parse(args)
	pStrict = pStrict || pDebug

	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: pNoCodes, DisableTimestamp: true})
	switch {
	case pDebug:
		log.SetLevel(logrus.DebugLevel)
	case pQuiet:
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return flags, err
}
