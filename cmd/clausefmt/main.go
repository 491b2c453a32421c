// Command clausefmt formats Clausewitz game script files.
//
// Without paths it formats standard input to standard output. Given files or
// directories, it prints the formatted files, or with -l, -d and -w lists,
// diffs and rewrites those whose formatting differs. Directories are searched
// for .txt files.
//
// Settings may also come from a YAML config file (.clausefmt.yaml by
// default); flags given on the command line take precedence.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/KimNorgaard/go-clausewitz"
	"github.com/KimNorgaard/go-clausewitz/internal/logger"
	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const version = "v0.1.0"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

// run executes the program with command line arguments <args> and returns its exit code
func run(args []string, stdin io.Reader) int {
	flags, paths, err := ParseFlags(args)
	if IsErrOfType(err, goFlags.ErrHelp) {
		// Help message will be printed by go-flags
		return exitOK
	}
	if err != nil {
		// So will the error
		return exitUsage
	}
	if flags.Version {
		fmt.Println("clausefmt " + version)
		return exitOK
	}

	lvl, err := logger.ParseLevel(flags.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	log := logger.New(lvl)

	cfg, err := LoadConfig(log, flags.Config)
	if err != nil {
		log.Error(err)
		return exitUsage
	}
	cfg = cfg.Merge(flags)

	r, err := newRepo(log, cfg)
	if err != nil {
		log.Error(err)
		return exitUsage
	}

	colored := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	if len(paths) == 0 {
		if flags.Write {
			log.Error("Cannot use --write with standard input")
			return exitUsage
		}
		src, err := io.ReadAll(stdin)
		if err != nil {
			log.Error(errors.Wrap(err, "Read standard input"))
			return exitFailure
		}
		return report(log, flags, []result{r.Format("", src)}, colored)
	}

	expanded, err := ExpandPaths(paths)
	if err != nil {
		log.Error(err)
		return exitFailure
	}
	log.Debugf("Formatting %v files with %v workers", len(expanded), cfg.Jobs)
	return report(log, flags, r.FormatFiles(expanded, flags.Write), colored)
}

// report prints <results> in order and returns the exit code
func report(log *logrus.Logger, flags Flags, results []result, colored bool) int {
	code := exitOK
	for _, res := range results {
		name := diffName(res.path)
		if res.err != nil {
			code = exitFailure
			var perrs clausewitz.ParseErrors
			if errors.As(res.err, &perrs) {
				for _, perr := range perrs {
					fmt.Fprintf(os.Stderr, "%v:%v:%v: %v\n", name, perr.Line, perr.Column, perr.Message)
				}
				continue
			}
			log.WithField("path", name).Error(res.err)
			continue
		}

		if flags.List && res.changed {
			fmt.Println(name)
		}
		if flags.Diff && res.changed {
			fmt.Print(lineDiff(name, res.before, res.after, colored))
		}
		if !flags.List && !flags.Diff && !flags.Write {
			if _, err := os.Stdout.Write(res.out); err != nil {
				log.Error(errors.Wrap(err, "Write standard output"))
				return exitFailure
			}
		}
	}
	return code
}
