package clausewitz

import (
	"iter"
	"strings"
)

// Value is the value of a document entry. It is either a Scalar or a nested
// *Document.
type Value interface {
	isValue()
}

// Scalar is a plain string value.
type Scalar string

func (Scalar) isValue()    {}
func (*Document) isValue() {}

// Entry is a single key/value pair of a Document. An empty Key marks a
// keyless value.
type Entry struct {
	Key   string
	Value Value
}

// Document is an ordered multi-map of keys to values. Keys may repeat and
// entries keep the order in which they were parsed or added.
//
// The zero value is an empty document ready to use. A Document is not safe
// for concurrent mutation.
type Document struct {
	entries []Entry
}

// New returns an empty Document.
func New() *Document {
	return &Document{}
}

// Count returns the number of top-level entries.
func (d *Document) Count() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Set appends a scalar entry. Existing entries with the same key are kept.
func (d *Document) Set(key, value string) {
	d.entries = append(d.entries, Entry{Key: key, Value: Scalar(value)})
}

// SetNested appends a new, empty nested document under key and returns it.
func (d *Document) SetNested(key string) *Document {
	child := &Document{}
	d.entries = append(d.entries, Entry{Key: key, Value: child})
	return child
}

// One returns the value of the first entry for key. It fails with
// ErrNotFound if there is no such entry and with ErrTypeMismatch if the first
// entry holds a nested document.
func (d *Document) One(key string) (string, error) {
	v, ok := d.first(key)
	if !ok {
		return "", &KeyError{Key: key, Err: ErrNotFound}
	}
	s, ok := v.(Scalar)
	if !ok {
		return "", &KeyError{Key: key, Err: ErrTypeMismatch}
	}
	return string(s), nil
}

// OneNested is like One but requires the first entry for key to be a nested
// document.
func (d *Document) OneNested(key string) (*Document, error) {
	v, ok := d.first(key)
	if !ok {
		return nil, &KeyError{Key: key, Err: ErrNotFound}
	}
	child, ok := v.(*Document)
	if !ok {
		return nil, &KeyError{Key: key, Err: ErrTypeMismatch}
	}
	return child, nil
}

// Many returns the scalar values of every entry for key, in entry order.
// Nested entries are skipped. The sequence may be iterated more than once.
func (d *Document) Many(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range d.entries {
			if s, ok := e.Value.(Scalar); ok && e.Key == key {
				if !yield(string(s)) {
					return
				}
			}
		}
	}
}

// ManyNested returns the nested documents of every entry for key, in entry
// order. Scalar entries are skipped.
func (d *Document) ManyNested(key string) iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		for _, e := range d.entries {
			if child, ok := e.Value.(*Document); ok && e.Key == key {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// All returns every top-level entry in order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range d.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Has reports whether at least one entry exists for key.
func (d *Document) Has(key string) bool {
	_, ok := d.first(key)
	return ok
}

// Equal reports whether d and other hold the same entries in the same order,
// comparing nested documents recursively. A nil document equals an empty one.
func (d *Document) Equal(other *Document) bool {
	if d.Count() == 0 || other.Count() == 0 {
		return d.Count() == other.Count()
	}
	if d.Count() != other.Count() {
		return false
	}
	for i, e := range d.entries {
		o := other.entries[i]
		if e.Key != o.Key {
			return false
		}
		switch v := e.Value.(type) {
		case Scalar:
			if ov, ok := o.Value.(Scalar); !ok || v != ov {
				return false
			}
		case *Document:
			if ov, ok := o.Value.(*Document); !ok || !v.Equal(ov) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{entries: make([]Entry, 0, len(d.entries))}
	for _, e := range d.entries {
		if child, ok := e.Value.(*Document); ok {
			e.Value = child.Clone()
		}
		c.entries = append(c.entries, e)
	}
	return c
}

// String returns the serialized form of d using the default formatting.
func (d *Document) String() string {
	var sb strings.Builder
	_ = newFormatter(&sb, &options{indent: defaultIndent}).format(d)
	return sb.String()
}

func (d *Document) first(key string) (Value, bool) {
	for _, e := range d.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
