package introspection

import "strings"

// Options controls which optional pieces GetIntrospectionQuery includes
// (§4.9, grounded on the original's introspection_query.py options).
// The zero value switches every optional field off; DefaultOptions
// switches them all on.
type Options struct {
	Descriptions          bool
	SpecifiedByURL         bool
	DirectiveIsRepeatable  bool
	SchemaDescription      bool
	InputValueDeprecation  bool
	OneOf                  bool
}

// DefaultOptions is every optional field switched on, the shape tools
// like GraphiQL request.
func DefaultOptions() Options {
	return Options{
		Descriptions:          true,
		SpecifiedByURL:        true,
		DirectiveIsRepeatable: true,
		SchemaDescription:     true,
		InputValueDeprecation: true,
		OneOf:                 true,
	}
}

func optionalField(include bool, field string) string {
	if !include {
		return ""
	}
	return field + "\n"
}

// BuildQuery renders the canonical introspection query document for the
// given Options (§6's GetIntrospectionQuery entry point). Query is the
// equivalent call with DefaultOptions().
func BuildQuery(opts Options) string {
	deprecatedArgs := ""
	if opts.InputValueDeprecation {
		deprecatedArgs = "(includeDeprecated: true)"
	}

	var b strings.Builder
	b.WriteString("query IntrospectionQuery {\n  __schema {\n")
	b.WriteString(indent(optionalField(opts.SchemaDescription, "description"), 4))
	b.WriteString(`    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
`)
	b.WriteString(indent(optionalField(opts.Descriptions, "description"), 6))
	if opts.DirectiveIsRepeatable {
		b.WriteString("      isRepeatable\n")
	}
	b.WriteString(`      locations
      args` + deprecatedArgs + ` {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
`)
	b.WriteString(indent(optionalField(opts.Descriptions, "description"), 2))
	b.WriteString(`  fields(includeDeprecated: true) {
    name
`)
	b.WriteString(indent(optionalField(opts.Descriptions, "description"), 4))
	b.WriteString(`    args` + deprecatedArgs + ` {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields` + deprecatedArgs + ` {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
`)
	b.WriteString(indent(optionalField(opts.Descriptions, "description"), 4))
	b.WriteString(`    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
`)
	if opts.SpecifiedByURL {
		b.WriteString("  specifiedByURL\n")
	}
	if opts.OneOf {
		b.WriteString("  isOneOf\n")
	}
	b.WriteString(`}

fragment InputValue on __InputValue {
  name
`)
	b.WriteString(indent(optionalField(opts.Descriptions, "description"), 2))
	b.WriteString(`  type {
    ...TypeRef
  }
  defaultValue
`)
	if opts.InputValueDeprecation {
		b.WriteString("  isDeprecated\n  deprecationReason\n")
	}
	b.WriteString(`}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`)
	return b.String()
}

func indent(s string, n int) string {
	if s == "" {
		return ""
	}
	pad := strings.Repeat(" ", n)
	return pad + s
}

// Query is the canonical introspection query with every optional field
// included, the constant most callers want (§4.9).
var Query = BuildQuery(DefaultOptions())
