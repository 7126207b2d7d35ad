package graphql

import (
	"errors"

	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// ErrNotImplemented is returned by the collaborator hooks below: each
// has an agreed signature so a caller can compile against the full
// surface described in §4.9, but none has a grounded teacher/pack
// implementation to adapt, so each is a documented stub rather than a
// guess at behavior (§4.9: "only their entry-point signatures are
// stubbed as documented hooks").
var ErrNotImplemented = errors.New("graphql: not implemented")

// BuildClientSchema reconstructs a Schema from the result of running
// GetIntrospectionQuery against a remote server (§6
// "build_client_schema").
func BuildClientSchema(introspectionResult map[string]interface{}) (*Schema, error) {
	return nil, ErrNotImplemented
}

// IntrospectionFromSchema runs the introspection query against schema
// itself and returns the raw result, the inverse of BuildClientSchema
// (§6 "introspection_from_schema").
func IntrospectionFromSchema(schema *Schema) (map[string]interface{}, error) {
	return nil, ErrNotImplemented
}

// PrintSchema renders schema back to SDL text, the inverse of
// BuildSchema (§6 "print_schema").
func PrintSchema(schema *typesystem.Schema) (string, error) {
	return "", ErrNotImplemented
}
