package clausewitz

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	// ErrNotFound is returned by accessors when no entry exists for a key.
	ErrNotFound = errors.New("clausewitz: key not found")
	// ErrTypeMismatch is returned by accessors when the first entry for a key
	// holds the other kind of value.
	ErrTypeMismatch = errors.New("clausewitz: value has the wrong type")
)

// A KeyError records a failed lookup and the key it was for.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return e.Err.Error() + ": " + strconv.Quote(e.Key)
}

func (e *KeyError) Unwrap() error { return e.Err }

// ParseError represents a single recovery the parser had to make. Parse only
// reports them when the Strict option is set.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ParseErrors is a slice of ParseError that implements the error interface.
// This allows returning all problems found during parsing at once.
type ParseErrors []ParseError

func (p ParseErrors) Error() string {
	if len(p) == 0 {
		return ""
	}
	msg := "clausewitz: parsing error at " + p[0].Error()
	if len(p) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(p)-1)
	}
	return msg
}

// An UnmarshalTypeError describes a value that was not appropriate for a
// value of a specific Go type.
type UnmarshalTypeError struct {
	Value string // "scalar \"abc\"" or "document"
	Type  reflect.Type
	Key   string
	Err   error
}

func (e *UnmarshalTypeError) Error() string {
	msg := "clausewitz: cannot unmarshal " + e.Value + " into Go value of type " + e.Type.String()
	if e.Key != "" {
		msg += " (key " + strconv.Quote(e.Key) + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnmarshalTypeError) Unwrap() error { return e.Err }

// A MarshalerError represents an error from calling a MarshalText method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "clausewitz: error calling MarshalText for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }
