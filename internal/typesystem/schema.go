package typesystem

import (
	"fmt"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

var nameRe = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// ValidName reports whether name matches the GraphQL Name grammar
// (§4.4); it does not reject `__`-prefixed names, since introspection
// types legitimately use them. ValidateSchema does not reject them
// either: it skips `__`-prefixed types.
func ValidName(name string) bool { return nameRe.MatchString(name) }

// Schema is the read-only, once-built type-system graph (§3): root
// operation types, the directive set and a name-indexed type map.
// Once constructed it never changes, so it may be shared across any
// number of concurrent executions (§5 Shared state).
type Schema struct {
	Description  string
	Query        *Object
	Mutation     *Object
	Subscription *Object
	Directives   []*Directive
	TypeMap      map[string]*Type

	typeHash uint64
}

// SchemaConfig is the constructor input (§3's Schema struct plus an
// explicit `types=` list for orphan types only reachable through an
// interface's possibleTypes, matching graphql-js's `schema(types=...)`
// parameter).
type SchemaConfig struct {
	Description  string
	Query        *Object
	Mutation     *Object
	Subscription *Object
	Directives   []*Directive
	Types        []*Type
}

// NewSchema walks every type reachable from the roots and the extra
// Types list, indexes them by name, verifies name uniqueness, and
// grafts the built-in scalars/directives (§4.4). It does not run the
// full structural validation; call ValidateSchema for that.
func NewSchema(cfg SchemaConfig) (*Schema, error) {
	s := &Schema{
		Description:  cfg.Description,
		Query:        cfg.Query,
		Mutation:     cfg.Mutation,
		Subscription: cfg.Subscription,
		TypeMap:      map[string]*Type{},
	}

	dirs := append([]*Directive{}, BuiltInDirectives()...)
	seenDir := map[string]bool{}
	for _, d := range dirs {
		seenDir[d.Name] = true
	}
	for _, d := range cfg.Directives {
		if !seenDir[d.Name] {
			dirs = append(dirs, d)
			seenDir[d.Name] = true
		}
	}
	s.Directives = dirs

	walker := &typeCollector{seen: map[string]*Type{}}
	if cfg.Query != nil {
		walker.collectObject(cfg.Query)
	}
	if cfg.Mutation != nil {
		walker.collectObject(cfg.Mutation)
	}
	if cfg.Subscription != nil {
		walker.collectObject(cfg.Subscription)
	}
	for _, t := range cfg.Types {
		walker.collect(t)
	}
	for _, sc := range BuiltInScalars() {
		walker.collect(&Type{Kind: KindScalar, Scalar: sc})
	}

	for name, t := range walker.seen {
		if existing, dup := s.TypeMap[name]; dup && existing != t {
			return nil, fmt.Errorf("typesystem: schema must contain uniquely named types but contains multiple types named %q", name)
		}
		s.TypeMap[name] = t
	}

	s.typeHash = s.computeTypeHash()
	return s, nil
}

// Signature returns a stable hash over the schema's type names and the
// names and types of every object and interface field, suitable as a
// cache key for a per-schema validation-result memo (§2.2 domain stack:
// xxhash wiring).
func (s *Schema) Signature() uint64 { return s.typeHash }

func (s *Schema) computeTypeHash() uint64 {
	h := xxhash.New()
	// Deterministic ordering matters for a stable hash; names are
	// unique so a simple insertion-independent combine via XOR over
	// per-type hashes suffices without needing to sort.
	var acc uint64
	for name, t := range s.TypeMap {
		h.Reset()
		_, _ = h.WriteString(name)
		var fields FieldMap
		switch t.Kind {
		case KindObject:
			fields = t.Object.Fields()
		case KindInterface:
			fields = t.Interface.Fields()
		}
		for _, fieldName := range fields.Names {
			f, _ := fields.Lookup(fieldName)
			_, _ = h.WriteString("\x00" + fieldName + ":" + f.Type.String())
		}
		acc ^= h.Sum64()
	}
	return acc
}

// LookupType returns the named type, if present.
func (s *Schema) LookupType(name string) (*Type, bool) {
	t, ok := s.TypeMap[name]
	return t, ok
}

// DirectiveByName finds a directive declaration by name.
func (s *Schema) DirectiveByName(name string) (*Directive, bool) {
	for _, d := range s.Directives {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// PossibleTypes returns the concrete Objects that could satisfy an
// abstract type: a Union's members, or every Object in the schema that
// declares the Interface (§3 Invariants: "object's declared interfaces
// each appear in that object's possibleTypes").
func (s *Schema) PossibleTypes(abstract *Type) []*Object {
	switch abstract.Kind {
	case KindUnion:
		return abstract.Union.Members()
	case KindInterface:
		var out []*Object
		for _, t := range s.TypeMap {
			if t.Kind != KindObject {
				continue
			}
			for _, impl := range t.Object.Interfaces() {
				if impl.Name == abstract.Interface.Name {
					out = append(out, t.Object)
					break
				}
			}
		}
		return out
	default:
		return nil
	}
}

// IsPossibleType reports whether candidate is among abstract's possible
// types, used by the executor's abstract-type membership check (§4.7
// step 5).
func (s *Schema) IsPossibleType(abstract *Type, candidate *Object) bool {
	for _, o := range s.PossibleTypes(abstract) {
		if o.Name == candidate.Name {
			return true
		}
	}
	return false
}

// --- reachability walk, cycle-safe via the `seen` set ---

type typeCollector struct {
	seen map[string]*Type
}

func (c *typeCollector) collect(t *Type) {
	if t == nil {
		return
	}
	switch t.Kind {
	case KindList, KindNonNull:
		c.collect(t.OfType)
		return
	}
	name := t.name()
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = t

	switch t.Kind {
	case KindObject:
		c.collectObject(t.Object)
	case KindInterface:
		c.collectFields(t.Interface.Fields())
		for _, i := range t.Interface.Interfaces() {
			c.collect(&Type{Kind: KindInterface, Interface: i})
		}
	case KindUnion:
		for _, m := range t.Union.Members() {
			c.collect(&Type{Kind: KindObject, Object: m})
		}
	case KindInputObject:
		for _, name := range t.InputObject.Fields().Names {
			f, _ := t.InputObject.Fields().Lookup(name)
			c.collect(f.Type)
		}
	}
}

func (c *typeCollector) collectObject(o *Object) {
	name := o.Name
	if _, ok := c.seen[name]; !ok {
		c.seen[name] = &Type{Kind: KindObject, Object: o}
	}
	c.collectFields(o.Fields())
	for _, i := range o.Interfaces() {
		c.collect(&Type{Kind: KindInterface, Interface: i})
	}
}

func (c *typeCollector) collectFields(fields FieldMap) {
	for _, name := range fields.Names {
		f, _ := fields.Lookup(name)
		c.collect(f.Type)
		for _, argName := range f.Args.Names {
			a, _ := f.Args.Lookup(argName)
			c.collect(a.Type)
		}
	}
}
