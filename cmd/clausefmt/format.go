package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KimNorgaard/go-clausewitz"
	"github.com/alitto/pond"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
)

// scriptExt is the extension of files picked up when walking a directory
const scriptExt = ".txt"

// result represents the outcome of formatting one input
type result struct {
	path    string
	changed bool
	before  string // decoded input
	after   string // formatted text before encoding
	out     []byte // formatted text in the target encoding
	err     error
}

// repo formats Clausewitz text according to its settings
type repo struct {
	log  *logrus.Logger
	enc  encoding.Encoding
	opts []clausewitz.Option
	cfg  Config
}

// newRepo returns new formatter repository for <cfg>
func newRepo(log *logrus.Logger, cfg Config) (repo, error) {
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return repo{}, err
	}
	if cfg.Indent < 0 {
		return repo{}, errors.Newf("Indent must not be negative, got %v", cfg.Indent)
	}
	opts := []clausewitz.Option{clausewitz.Indent(cfg.Indent)}
	if cfg.Tabs {
		opts = append(opts, clausewitz.IndentTabs())
	}
	if cfg.Strict {
		opts = append(opts, clausewitz.Strict())
	}
	return repo{log: log, enc: enc, opts: opts, cfg: cfg}, nil
}

// Format returns the result of formatting <src>, read from <path>
func (r repo) Format(path string, src []byte) result {
	res := result{path: path}

	text, err := decode(r.enc, src)
	if err != nil {
		res.err = err
		return res
	}
	res.before = string(text)

	doc, err := clausewitz.Parse(text, r.opts...)
	if err != nil {
		res.err = errors.Wrap(err, "Parse input")
		return res
	}

	var buf bytes.Buffer
	if hasBOM(text) {
		buf.Write(utf8BOM)
	}
	if err := clausewitz.NewEncoder(&buf, r.opts...).Encode(doc); err != nil {
		res.err = errors.Wrap(err, "Format document")
		return res
	}
	res.after = buf.String()

	if res.out, err = encode(r.enc, buf.Bytes()); err != nil {
		res.err = err
		return res
	}
	res.changed = !bytes.Equal(src, res.out)
	return res
}

// FormatFile formats the file at <path>, rewriting it if <write> is true and the formatting differs
func (r repo) FormatFile(path string, write bool) result {
	r.log.WithField("path", path).Debug("Formatting file")

	src, err := os.ReadFile(path)
	if err != nil {
		return result{path: path, err: errors.Wrap(err, "Read file")}
	}
	res := r.Format(path, src)
	if res.err != nil || !write || !res.changed {
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		res.err = errors.Wrap(err, "Stat file")
		return res
	}
	if err := os.WriteFile(path, res.out, info.Mode().Perm()); err != nil {
		res.err = errors.Wrap(err, "Write file")
		return res
	}
	r.log.WithField("path", path).Info("Rewrote file")
	return res
}

// FormatFiles formats every file in <paths> concurrently and returns the results in the order of <paths>
func (r repo) FormatFiles(paths []string, write bool) []result {
	results := make([]result, len(paths))
	if len(paths) == 0 {
		return results
	}

	pool := pond.New(r.cfg.Jobs, len(paths), pond.MinWorkers(0))
	for i, path := range paths {
		pool.Submit(func() {
			results[i] = r.FormatFile(path, write)
		})
	}
	pool.StopAndWait()

	return results
}

// ExpandPaths returns <args> with every directory replaced by the script files below it. Duplicates are removed.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(err, "Stat path")
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), scriptExt) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "Walk directory %v", arg)
		}
	}
	return lo.Uniq(paths), nil
}
