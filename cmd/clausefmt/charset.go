package main

import (
	"bytes"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Game files predating UTF-8 support are usually Windows-1252.
var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
}

var utf8BOM = []byte("\uFEFF")

// LookupEncoding returns the encoding named <name>, case-insensitively
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		names := lo.Keys(encodings)
		slices.Sort(names)
		return nil, errors.Newf("Unknown encoding %q, expected one of: %v", name, strings.Join(names, ", "))
	}
	return enc, nil
}

// decode returns <src> converted from <enc> to UTF-8
func decode(enc encoding.Encoding, src []byte) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(src)
	return out, errors.Wrap(err, "Decode input")
}

// encode returns UTF-8 <text> converted to <enc>
func encode(enc encoding.Encoding, text []byte) ([]byte, error) {
	out, err := enc.NewEncoder().Bytes(text)
	return out, errors.Wrap(err, "Encode output")
}

// hasBOM returns true if UTF-8 <text> starts with a byte order mark
func hasBOM(text []byte) bool {
	return bytes.HasPrefix(text, utf8BOM)
}
