package clausewitz

import (
	"reflect"
	"strings"
	"sync"
)

// A field represents a single field in a struct.
type field struct {
	name      string
	idx       []int
	omitEmpty bool
}

// structFields holds the fields of a struct type in declaration order and an
// index by name for lookups while decoding.
type structFields struct {
	list   []field
	byName map[string]int
}

// fieldCache caches the fields of struct types.
var fieldCache sync.Map // map[reflect.Type]*structFields

// cachedFields returns the fields of the struct type t. Fields of embedded
// structs are promoted unless the embedded field has a tag name, and outer
// fields shadow promoted ones of the same name. Unexported fields and fields tagged
// `clausewitz:"-"` are skipped.
func cachedFields(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(*structFields); ok {
			return fields
		}
	}

	fields := &structFields{byName: make(map[string]int)}
	var all []field
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("clausewitz")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")

			// An embedded struct without a tag name is flattened.
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && name == "" {
				walk(sf.Type, append(idx[:len(idx):len(idx)], i))
				continue
			}
			if !sf.IsExported() {
				continue
			}

			f := field{name: sf.Name, idx: append(idx[:len(idx):len(idx)], i)}
			if name != "" {
				f.name = name
			}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if opt == "omitempty" {
					f.omitEmpty = true
				}
			}

			all = append(all, f)
		}
	}
	walk(t, nil)

	// A shallower field shadows a deeper one of the same name. At equal
	// depth the first declared wins.
	best := make(map[string]int)
	for i, f := range all {
		if j, ok := best[f.name]; !ok || len(f.idx) < len(all[j].idx) {
			best[f.name] = i
		}
	}
	for i, f := range all {
		if best[f.name] != i {
			continue
		}
		fields.list = append(fields.list, f)
		fields.byName[f.name] = len(fields.list) - 1
	}

	// Lower-cased names serve as a case-insensitive fallback but never
	// shadow an exact name.
	for i, f := range fields.list {
		lower := strings.ToLower(f.name)
		if _, ok := fields.byName[lower]; !ok {
			fields.byName[lower] = i
		}
	}

	fieldCache.Store(t, fields)
	return fields
}

// find returns the field for key. It first attempts a case-sensitive match,
// then falls back to a case-insensitive one.
func (s *structFields) find(key string) (field, bool) {
	if i, ok := s.byName[key]; ok {
		return s.list[i], true
	}
	if i, ok := s.byName[strings.ToLower(key)]; ok {
		return s.list[i], true
	}
	return field{}, false
}
