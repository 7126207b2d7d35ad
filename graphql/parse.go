// Package graphql is the public entry point: parsing, printing,
// visiting, validating, building and executing against a schema, all in
// terms of the internal packages that implement each concern (C11).
// It is a thin facade -- most functions here forward to a single
// internal package call, the same shape the teacher's own top-level
// graphql-go-tools package takes over its v2/pkg subpackages; BuildSchema
// chains the parser, the SDL compiler and introspection, and
// SeparateOperations and ValidationCache carry logic of their own.
package graphql

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/source"
)

// ParseOption re-exports astparser's functional options so callers never
// need to import internal/astparser directly.
type ParseOption = astparser.Option

var (
	WithNoLocation              = astparser.WithNoLocation
	WithLegacyFragmentVariables = astparser.WithLegacyFragmentVariables
)

// Parse parses an executable document (operations and fragments) from
// src (§6 "parse").
func Parse(src *source.Source, opts ...ParseOption) (*ast.Document, operationreport.Report) {
	return astparser.ParseExecutableDocument(src, opts...)
}

// ParseSchema parses a type-system document (SDL: type/interface/union/
// enum/input/directive/schema definitions), the document BuildSchema
// expects.
func ParseSchema(src *source.Source, opts ...ParseOption) (*ast.Document, operationreport.Report) {
	return astparser.ParseTypeSystemDocument(src, opts...)
}

// ParseValue parses one value literal, possibly containing variables
// (§6 "parse_value").
func ParseValue(src *source.Source, opts ...ParseOption) (*ast.Document, int, error) {
	return astparser.ParseValue(src, opts...)
}

// ParseConstValue parses one value literal known to contain no variable
// references, as required in a default-value or directive-argument
// position (§6 "parse_const_value").
func ParseConstValue(src *source.Source, opts ...ParseOption) (*ast.Document, int, error) {
	return astparser.ParseConstValue(src, opts...)
}

// ParseType parses one type reference, e.g. `[String!]!` (§6 "parse_type").
func ParseType(src *source.Source, opts ...ParseOption) (*ast.Document, int, error) {
	return astparser.ParseType(src, opts...)
}
