package clausewitz

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/KimNorgaard/go-clausewitz/internal/lexer"
)

// Decoder reads Clausewitz text from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder buffers data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// DecodeDocument reads the rest of the input and returns it as a Document.
//
// Malformed input is recovered from silently. With the Strict option the
// recoveries are returned as a ParseErrors value instead.
func (d *Decoder) DecodeDocument() (*Document, error) {
	doc, _, err := d.decode()
	return doc, err
}

// Decode reads the rest of the input and stores it in the value pointed to
// by v. See Unmarshal for the conversion rules.
func (d *Decoder) Decode(v any) error {
	doc, o, err := d.decode()
	if err != nil {
		return err
	}
	return decodeDocument(doc, v, o)
}

func (d *Decoder) decode() (*Document, *options, error) {
	if d.r == nil {
		return nil, nil, fmt.Errorf("clausewitz: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return nil, nil, err
	}

	l := lexer.New(d.r)
	p := newParser(l)
	doc := p.parse()

	if err := l.Err(); err != nil {
		return nil, nil, fmt.Errorf("clausewitz: reading input: %w", err)
	}
	if o.strict && len(p.Errors()) > 0 {
		return nil, nil, p.Errors()
	}
	return doc, o, nil
}

var (
	documentType        = reflect.TypeFor[Document]()
	valueType           = reflect.TypeFor[Value]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
)

func decodeDocument(doc *Document, v any, o *options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("clausewitz: Unmarshal(non-pointer %T or nil)", v)
	}
	ds := &decodeState{depth: o.maxDepth}
	return ds.decodeValue(doc, rv.Elem(), "")
}

type decodeState struct {
	depth int
}

func (ds *decodeState) decodeValue(v Value, rv reflect.Value, key string) error { //nolint:gocyclo
	ds.depth--
	if ds.depth <= 0 {
		return fmt.Errorf("clausewitz: reached max recursion depth")
	}
	defer func() { ds.depth++ }()

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Type() == documentType {
		doc, ok := v.(*Document)
		if !ok {
			return ds.typeError(v, rv, key, nil)
		}
		rv.Set(reflect.ValueOf(doc.Clone()).Elem())
		return nil
	}

	if rv.Kind() == reflect.Interface {
		return ds.decodeInterface(v, rv, key)
	}

	if handled, err := ds.tryTextUnmarshal(v, rv, key); handled {
		return err
	}

	switch v := v.(type) {
	case Scalar:
		return ds.decodeScalar(string(v), rv, key)
	case *Document:
		switch rv.Kind() {
		case reflect.Struct:
			return ds.decodeStruct(v, rv)
		case reflect.Map:
			return ds.decodeMap(v, rv)
		case reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return ds.appendEntries(v, rv)
		}
	}
	return ds.typeError(v, rv, key, nil)
}

// tryTextUnmarshal decodes a scalar through encoding.TextUnmarshaler. It
// returns true if the target implements it.
func (ds *decodeState) tryTextUnmarshal(v Value, rv reflect.Value, key string) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	u, ok := rv.Addr().Interface().(encoding.TextUnmarshaler)
	if !ok {
		return false, nil
	}
	s, ok := v.(Scalar)
	if !ok {
		return true, ds.typeError(v, rv, key, nil)
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return true, ds.typeError(v, rv, key, err)
	}
	return true, nil
}

func (ds *decodeState) decodeScalar(s string, rv reflect.Value, key string) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
		return nil
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return ds.typeError(Scalar(s), rv, key, err)
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return ds.typeError(Scalar(s), rv, key, err)
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return ds.typeError(Scalar(s), rv, key, err)
		}
		rv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return ds.typeError(Scalar(s), rv, key, err)
		}
		rv.SetFloat(f)
		return nil
	}
	return ds.typeError(Scalar(s), rv, key, nil)
}

// decodeStruct maps entries onto fields. A slice field collects every
// matching entry; any other field takes the first one, as One does.
func (ds *decodeState) decodeStruct(doc *Document, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	seen := make(map[string]bool)
	for _, e := range doc.entries {
		f, ok := fields.find(e.Key)
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(f.idx)
		if !fv.CanSet() {
			continue
		}
		if isListType(fv.Type()) {
			if !seen[f.name] {
				fv.Set(reflect.Zero(fv.Type()))
			}
			seen[f.name] = true
			if err := ds.appendEntry(e.Value, fv, e.Key); err != nil {
				return err
			}
			continue
		}
		if seen[f.name] {
			continue
		}
		seen[f.name] = true
		if err := ds.decodeValue(e.Value, fv, e.Key); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) decodeMap(doc *Document, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("clausewitz: cannot unmarshal document into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		rv.Clear()
	}

	elemType := mapType.Elem()
	for _, e := range doc.entries {
		k := reflect.ValueOf(e.Key).Convert(mapType.Key())
		existing := rv.MapIndex(k)
		if existing.IsValid() && !isListType(elemType) {
			continue
		}
		newVal := reflect.New(elemType).Elem()
		if isListType(elemType) {
			if existing.IsValid() {
				newVal.Set(existing)
			}
			if err := ds.appendEntry(e.Value, newVal, e.Key); err != nil {
				return err
			}
		} else if err := ds.decodeValue(e.Value, newVal, e.Key); err != nil {
			return err
		}
		rv.SetMapIndex(k, newVal)
	}
	return nil
}

// appendEntry appends the elements contributed by one entry to the slice sv.
// A nested document feeding a slice of scalars contributes each of its
// values, so both "tag=a tag=b" and "tag={ a b }" fill []string.
func (ds *decodeState) appendEntry(v Value, sv reflect.Value, key string) error {
	if doc, ok := v.(*Document); ok && isScalarType(sv.Type().Elem()) {
		return ds.appendEntries(doc, sv)
	}
	el := reflect.New(sv.Type().Elem()).Elem()
	if err := ds.decodeValue(v, el, key); err != nil {
		return err
	}
	sv.Set(reflect.Append(sv, el))
	return nil
}

func (ds *decodeState) appendEntries(doc *Document, sv reflect.Value) error {
	for _, e := range doc.entries {
		el := reflect.New(sv.Type().Elem()).Elem()
		if err := ds.decodeValue(e.Value, el, e.Key); err != nil {
			return err
		}
		sv.Set(reflect.Append(sv, el))
	}
	return nil
}

func (ds *decodeState) decodeInterface(v Value, rv reflect.Value, key string) error {
	var concrete any
	switch v := v.(type) {
	case Scalar:
		if rv.Type() == valueType {
			concrete = v
		} else {
			concrete = string(v)
		}
	case *Document:
		concrete = v.Clone()
	}
	cv := reflect.ValueOf(concrete)
	if !cv.Type().AssignableTo(rv.Type()) {
		return ds.typeError(v, rv, key, nil)
	}
	rv.Set(cv)
	return nil
}

func (ds *decodeState) typeError(v Value, rv reflect.Value, key string, err error) error {
	desc := "document"
	if s, ok := v.(Scalar); ok {
		desc = "scalar " + strconv.Quote(string(s))
	}
	return &UnmarshalTypeError{Value: desc, Type: rv.Type(), Key: key, Err: err}
}

// parseBool accepts the yes/no spelling used by game files as well as
// true/false.
func parseBool(s string) (bool, error) {
	switch s {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// isListType reports whether t collects repeated entries.
func isListType(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && !t.Implements(textMarshalerType) &&
		!reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// isScalarType reports whether values of t are written as a single scalar.
func isScalarType(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
