package clausewitz

import (
	"bytes"
	"cmp"
	"encoding"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
)

// Encoder writes Clausewitz text to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the text form of v to the stream. A *Document is written as
// is; any other value is converted as described for Marshal.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}

	doc, err := toDocument(v, o)
	if err != nil {
		return err
	}

	f := newFormatter(e.w, o)
	return f.format(doc)
}

// Marshal returns the text encoding of v.
//
// Documents are written entry by entry. Structs and maps become documents
// (map keys in sorted order), booleans are written as yes/no, and numbers in
// plain decimal notation. A slice of scalars is written as a keyless block,
// "key={ a b c }"; a slice of structs, maps or documents repeats its key
// once per element. Nil pointers, nil slices and nil maps are omitted, as are
// fields tagged omitempty that hold their zero value. Types implementing
// encoding.TextMarshaler are written as the scalar they return.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toDocument(v any, o *options) (*Document, error) {
	switch d := v.(type) {
	case *Document:
		return d, nil
	case Document:
		return &d, nil
	}

	es := &encodeState{depth: o.maxDepth}
	val, err := es.marshalValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	switch val := val.(type) {
	case nil:
		return nil, fmt.Errorf("clausewitz: cannot marshal nil value of type %T", v)
	case *Document:
		return val, nil
	default:
		doc := &Document{}
		doc.entries = append(doc.entries, Entry{Value: val})
		return doc, nil
	}
}

type encodeState struct {
	depth int
}

// marshalValue converts v to a Value. A nil Value means v is to be omitted.
func (e *encodeState) marshalValue(v reflect.Value) (Value, error) { //nolint:gocyclo
	e.depth--
	if e.depth <= 0 {
		return nil, fmt.Errorf("clausewitz: reached max recursion depth")
	}
	defer func() { e.depth++ }()

	if !v.IsValid() {
		return nil, nil
	}

	if v.Type() == documentType {
		d := v.Interface().(Document)
		return &d, nil
	}
	if s, ok, err := e.marshalText(v); ok {
		return s, err
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		if d, ok := v.Interface().(*Document); ok {
			return d, nil
		}
		return e.marshalValue(v.Elem())
	case reflect.String:
		return Scalar(v.String()), nil
	case reflect.Bool:
		if v.Bool() {
			return Scalar("yes"), nil
		}
		return Scalar("no"), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar(strconv.FormatInt(v.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Scalar(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return Scalar(strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		doc := &Document{}
		for i := 0; i < v.Len(); i++ {
			if err := e.addEntry(doc, "", v.Index(i)); err != nil {
				return nil, err
			}
		}
		return doc, nil
	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("clausewitz: map key type must be a string, got %s", v.Type().Key())
		}
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		})
		doc := &Document{}
		for _, k := range keys {
			if err := e.addField(doc, k.String(), v.MapIndex(k)); err != nil {
				return nil, err
			}
		}
		return doc, nil
	case reflect.Struct:
		doc := &Document{}
		for _, f := range cachedFields(v.Type()).list {
			fv := v.FieldByIndex(f.idx)
			if f.omitEmpty && isEmptyValue(fv) {
				continue
			}
			if err := e.addField(doc, f.name, fv); err != nil {
				return nil, err
			}
		}
		return doc, nil
	}
	return nil, fmt.Errorf("clausewitz: unsupported type for marshaling: %s", v.Type())
}

// marshalText calls MarshalText on v or on its address when either
// implements encoding.TextMarshaler.
func (e *encodeState) marshalText(v reflect.Value) (Value, bool, error) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false, nil
	}
	var m encoding.TextMarshaler
	switch {
	case v.Type().Implements(textMarshalerType) && v.CanInterface():
		m, _ = v.Interface().(encoding.TextMarshaler)
	case v.CanAddr() && reflect.PointerTo(v.Type()).Implements(textMarshalerType):
		m, _ = v.Addr().Interface().(encoding.TextMarshaler)
	}
	if m == nil {
		return nil, false, nil
	}
	b, err := m.MarshalText()
	if err != nil {
		return nil, true, &MarshalerError{Type: v.Type(), Err: err}
	}
	return Scalar(b), true, nil
}

// addField adds the entries for a struct field or map value. Slices of
// compound values repeat key once per element.
func (e *encodeState) addField(doc *Document, key string, v reflect.Value) error {
	for (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && !v.IsNil() {
		if v.Type().Implements(textMarshalerType) {
			break
		}
		v = v.Elem()
	}
	if isListType(v.Type()) && !isScalarType(v.Type().Elem()) {
		for i := 0; i < v.Len(); i++ {
			if err := e.addEntry(doc, key, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return e.addEntry(doc, key, v)
}

func (e *encodeState) addEntry(doc *Document, key string, v reflect.Value) error {
	val, err := e.marshalValue(v)
	if err != nil {
		return err
	}
	if val != nil {
		doc.entries = append(doc.entries, Entry{Key: key, Value: val})
	}
	return nil
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.Struct:
		if v.Type() == documentType {
			return len(v.Interface().(Document).entries) == 0
		}
	}
	return false
}
