// Package gqlerrors implements the structured error model (C10):
// located errors carrying message, source locations, response path and
// a cause chain, shared by the lexer, parser, validator and executor.
package gqlerrors

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/wundergraph/graphql-core-engine/internal/source"
)

// Location is the {line,column} pair reported on an Error.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// PathSegment is either a string (field/fragment name) or an int (list
// index), matching the GraphQL response `path` array.
type PathSegment struct {
	Key   string
	Index int
	IsInt bool
}

func StringSegment(key string) PathSegment { return PathSegment{Key: key} }
func IndexSegment(i int) PathSegment       { return PathSegment{Index: i, IsInt: true} }

func (p PathSegment) String() string {
	if p.IsInt {
		return fmt.Sprintf("%d", p.Index)
	}
	return p.Key
}

// Error is the common representation for every reportable error kind:
// SyntaxError, SchemaError, ValidationError, VariableCoercionError and
// FieldError all produce one of these.
type Error struct {
	Message    string                 `json:"message"`
	Locations  []Location             `json:"locations,omitempty"`
	Path       []PathSegment          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`

	// Cause is the original Go error, if any, preserved for debugging
	// via errors.Is/errors.As but never serialized to clients.
	Cause error `json:"-"`
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes Cause so errors.Is/errors.As traverse it.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a bare Error with no location or path.
func New(message string) *Error {
	return &Error{Message: message}
}

// WithLocations attaches source locations computed from AST node
// positions; nodes with no location are silently skipped.
func (e *Error) WithLocations(locs ...Location) *Error {
	e.Locations = append(e.Locations, locs...)
	return e
}

// WithPath attaches a response path.
func (e *Error) WithPath(path []PathSegment) *Error {
	e.Path = path
	return e
}

// WithExtensions attaches a client-visible extensions map.
func (e *Error) WithExtensions(ext map[string]interface{}) *Error {
	e.Extensions = ext
	return e
}

// SyntaxError builds a lexer/parser error carrying a caret-renderable
// position within src, per §7.1.
func SyntaxError(src *source.Source, position int, message string) *Error {
	loc := source.LocationFromOffset(src, position)
	caret := source.PrintCaret(src, position)
	msg := fmt.Sprintf("Syntax Error: %s", message)
	if caret != "" {
		msg = fmt.Sprintf("%s\n\n%s:%d:%d\n%s", msg, src.Name, loc.Line, loc.Column, caret)
	}
	return &Error{
		Message:   msg,
		Locations: []Location{{Line: loc.Line, Column: loc.Column}},
	}
}

// LocatedError converts an arbitrary Go error (typically a resolver
// panic/error) into a FieldError, preserving the cause and attaching
// the field's AST locations and response path. Implements §7's
// `located_error`.
func LocatedError(cause error, locs []Location, path []PathSegment) *Error {
	if gqlErr, ok := cause.(*Error); ok {
		if len(gqlErr.Path) == 0 {
			gqlErr.Path = path
		}
		if len(gqlErr.Locations) == 0 {
			gqlErr.Locations = locs
		}
		return gqlErr
	}
	return &Error{
		Message:   cause.Error(),
		Locations: locs,
		Path:      path,
		Cause:     errors.WithStack(cause),
	}
}

// List is a collection of Errors, used as the return value of validate
// and as ExecutionContext.Errors.
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// HasErrors reports whether the list is non-empty.
func (l List) HasErrors() bool { return len(l) > 0 }
