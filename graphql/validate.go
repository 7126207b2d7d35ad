package graphql

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
	"github.com/wundergraph/graphql-core-engine/internal/validator"
)

// Validate runs every validation rule (§4.6) against doc under schema,
// returning every violation found; an empty list means the request may
// proceed to execution (§6 "validate").
func Validate(schema *typesystem.Schema, doc *ast.Document) gqlerrors.List {
	return validator.Validate(schema, doc)
}

// ValidateSchema checks schema's own structural invariants (§4.4's
// per-kind invariants) independently of any request; a non-empty result
// means the schema itself is unusable (§6 "validate_schema", §7
// SchemaError).
func ValidateSchema(schema *typesystem.Schema) []error {
	return typesystem.ValidateSchema(schema)
}

// ValidationCache memoizes Validate results keyed by a schema's
// Signature() combined with the operation's own source text, so a host
// that repeatedly sees the same operation text against the same schema
// version -- the common persisted-query / APQ traffic pattern -- skips
// re-walking the document on every request (§2.2 domain stack: xxhash
// feeds a per-schema validation-result memo cache).
type ValidationCache struct {
	cache *lru.Cache[uint64, gqlerrors.List]
}

// NewValidationCache builds a ValidationCache holding up to size
// entries, evicting the least-recently-used entry once full.
func NewValidationCache(size int) (*ValidationCache, error) {
	c, err := lru.New[uint64, gqlerrors.List](size)
	if err != nil {
		return nil, err
	}
	return &ValidationCache{cache: c}, nil
}

// ValidateCached runs Validate against doc, reusing a cached result for
// the same (schema.Signature(), doc.Input) pair instead of re-running
// every rule. doc.Input must be the exact source text Parse was given;
// an empty Input (a document built without going through Parse) always
// misses the cache.
func (vc *ValidationCache) ValidateCached(schema *typesystem.Schema, doc *ast.Document) gqlerrors.List {
	key := xxhash.Sum64String(doc.Input) ^ schema.Signature()
	if cached, ok := vc.cache.Get(key); ok {
		return cached
	}
	result := Validate(schema, doc)
	vc.cache.Add(key, result)
	return result
}
