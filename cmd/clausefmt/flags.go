package main

import (
	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
)

// Flags represents command line flags
type Flags struct {
	Write    bool   `short:"w" long:"write"     description:"Write result to the source file instead of stdout"`
	List     bool   `short:"l" long:"list"      description:"List files whose formatting differs"`
	Diff     bool   `short:"d" long:"diff"      description:"Display diffs instead of rewriting files"`
	Strict   bool   `short:"s" long:"strict"    description:"Report malformed input instead of repairing it"`
	Indent   int    `short:"i" long:"indent"    description:"Indent nested blocks with N spaces"`
	Tabs     bool   `short:"t" long:"tabs"      description:"Indent nested blocks with tabs"`
	Encoding string `short:"e" long:"encoding"  description:"Character encoding of input and output (utf-8, windows-1252, iso-8859-1)"`
	Jobs     int    `short:"j" long:"jobs"      description:"Number of files formatted concurrently"`
	Config   string `short:"c" long:"config"    description:"Config file path" default:".clausefmt.yaml"`
	LogLevel string `          long:"log-level" description:"Logging level (panic, fatal, error, warning, info, debug, trace)" default:"warning"`
	Version  bool   `short:"V" long:"version"   description:"Print the program version"`

	// set holds the long names of options given on the command line.
	set map[string]bool
}

// IsSet returns true if the option with long name <long> was given on the command line
func (f Flags) IsSet(long string) bool {
	return f.set[long]
}

// ParseFlags returns flags and positional arguments parsed from <args>, and error if parsing failed
func ParseFlags(args []string) (Flags, []string, error) {
	var flags Flags
	parser := goFlags.NewParser(&flags, goFlags.Default)
	parser.Name = "clausefmt"
	parser.Usage = "[OPTIONS] [PATH...]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return flags, nil, errors.Wrap(err, "Parse CLI arguments")
	}

	flags.set = make(map[string]bool)
	for _, name := range []string{"strict", "indent", "tabs", "encoding", "jobs"} {
		if opt := parser.FindOptionByLongName(name); opt != nil && opt.IsSet() {
			flags.set[name] = true
		}
	}
	return flags, rest, nil
}

// IsErrOfType returns true if <err> is of type <t>
func IsErrOfType(err error, t goFlags.ErrorType) bool {
	goFlagsErr := &goFlags.Error{}
	if ok := errors.As(err, &goFlagsErr); ok && goFlagsErr.Type == t {
		return true
	}
	return false
}
