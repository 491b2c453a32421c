package clausewitz

import (
	"fmt"
	"strings"
)

const (
	defaultIndent   = "\t"
	defaultMaxDepth = 1000
)

type options struct {
	indent   string
	strict   bool
	maxDepth int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		indent:   defaultIndent,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option configures parsing and formatting. Options that do not apply to an
// operation are ignored by it.
type Option func(*options) error

// Indent returns an Option that indents nested documents with n spaces per
// level. Indent(0) disables indentation.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("clausewitz: indent must not be negative")
		}
		o.indent = strings.Repeat(" ", n)
		return nil
	}
}

// IndentTabs returns an Option that indents nested documents with one tab per
// level. This is the default.
func IndentTabs() Option {
	return func(o *options) error {
		o.indent = "\t"
		return nil
	}
}

// Strict returns an Option that makes Parse report the problems it would
// otherwise recover from silently, such as unterminated quotes or unbalanced
// braces.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum nesting depth for
// Unmarshal and Marshal of Go values. Parsing documents has no depth limit.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("clausewitz: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
