package clausewitz

import (
	"bytes"
	"strings"

	"github.com/KimNorgaard/go-clausewitz/internal/lexer"
)

// ParseString parses s into a Document. It never fails: malformed input is
// recovered from as described in the package documentation, and empty input
// yields an empty Document.
func ParseString(s string) *Document {
	return newParser(lexer.New(strings.NewReader(s))).parse()
}

// Parse parses data into a Document. Without the Strict option it only fails
// on invalid options. With Strict, every recovery from malformed input is
// reported in a ParseErrors value.
func Parse(data []byte, opts ...Option) (*Document, error) {
	return NewDecoder(bytes.NewReader(data), opts...).DecodeDocument()
}

// Unmarshal parses data and stores the result in the value pointed to by v.
//
// Unmarshal accepts the following targets:
//   - *Document and Value receive a copy of the parsed document.
//   - A struct receives entries by field name or `clausewitz:"name"` tag,
//     matched case-insensitively when there is no exact match. A slice field
//     collects every entry for its key; any other field takes the first one.
//   - A map with string keys receives every key; the first entry wins unless
//     the element type is a slice.
//   - A slice receives one element per entry. A nested document feeding a
//     slice of scalars contributes each of its values, so "color={ 1 2 3 }"
//     fills []int.
//   - Strings take the scalar as is. Integers and floats are parsed in
//     decimal. Booleans accept yes/no and true/false.
//   - encoding.TextUnmarshaler implementations receive the scalar text.
//   - An empty interface receives a string or a *Document.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}
