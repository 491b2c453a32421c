package clausewitz

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/KimNorgaard/go-clausewitz/internal/lexer"
)

// formatter writes a Document to an output stream, one entry per line.
type formatter struct {
	w      io.Writer
	indent string
	depth  int
}

func newFormatter(w io.Writer, o *options) *formatter {
	return &formatter{w: w, indent: o.indent}
}

func (f *formatter) format(d *Document) error {
	if d == nil {
		return nil
	}
	return f.writeDocument(d)
}

func (f *formatter) write(parts ...string) error {
	for _, s := range parts {
		if _, err := io.WriteString(f.w, s); err != nil {
			return err
		}
	}
	return nil
}

func (f *formatter) writeIndent() error {
	if f.indent == "" || f.depth == 0 {
		return nil
	}
	return f.write(strings.Repeat(f.indent, f.depth))
}

func (f *formatter) writeDocument(d *Document) error {
	for _, e := range d.entries {
		if err := f.writeIndent(); err != nil {
			return err
		}
		if e.Key != "" {
			if err := f.write(quote(e.Key), "="); err != nil {
				return err
			}
		}
		if err := f.writeValue(e.Value); err != nil {
			return err
		}
	}
	return nil
}

func (f *formatter) writeValue(v Value) error {
	switch v := v.(type) {
	case Scalar:
		return f.write(quote(string(v)), "\n")
	case *Document:
		if v.Count() == 0 {
			return f.write("{}\n")
		}
		if err := f.write("{\n"); err != nil {
			return err
		}
		f.depth++
		if err := f.writeDocument(v); err != nil {
			return err
		}
		f.depth--
		if err := f.writeIndent(); err != nil {
			return err
		}
		return f.write("}\n")
	default:
		return fmt.Errorf("clausewitz: unsupported value type for formatting: %T", v)
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// quote returns s as it must appear in the text so that reading it back
// yields s again.
func quote(s string) string {
	if !needsQuotes(s) {
		return s
	}
	return `"` + escaper.Replace(s) + `"`
}

// needsQuotes reports whether s would not survive as a bare word.
func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || lexer.IsDelimiter(r) || r == '\uFEFF'
	})
}
