package coerce

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// CoerceArgumentValues evaluates a field or directive's argument list
// against its declared argument types, substituting from variables and
// applying each scalar's parse_literal (§4.5's second flow). A missing
// argument behaves as if its value were absent: the declared default
// applies, or a NonNull argument type is an error.
func CoerceArgumentValues(argDefs typesystem.ArgumentMap, doc *ast.Document, argumentRefs []int, variables map[string]interface{}) (map[string]interface{}, gqlerrors.List) {
	byName := map[string]int{}
	for _, ref := range argumentRefs {
		byName[doc.Arguments[ref].Name] = ref
	}

	out := map[string]interface{}{}
	var errs gqlerrors.List
	for _, name := range argDefs.Names {
		def, _ := argDefs.Lookup(name)
		path := []gqlerrors.PathSegment{gqlerrors.StringSegment(name)}

		argRef, present := byName[name]
		if !present {
			if def.Default.HasValue {
				out[name] = def.Default.Value
			} else if def.Type.Kind == typesystem.KindNonNull {
				errs = append(errs, pathError(path, `Argument "%s" of required type %q was not provided.`, name, def.Type))
			}
			continue
		}

		valueRef := doc.Arguments[argRef].Value
		valueNode := doc.Values[valueRef]
		if valueNode.Kind == ast.ValueKindVariable {
			if _, ok := variables[valueNode.Raw]; !ok {
				// §4.5: "$x absent from variables" behaves as if the
				// argument itself were omitted.
				if def.Default.HasValue {
					out[name] = def.Default.Value
				} else if def.Type.Kind == typesystem.KindNonNull {
					errs = append(errs, pathError(path, `Argument "%s" of required type %q was not provided.`, name, def.Type))
				}
				continue
			}
		}

		val, verrs := coerceLiteral(doc, valueRef, def.Type, variables, path)
		if len(verrs) > 0 {
			errs = append(errs, verrs...)
			continue
		}
		out[name] = val
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// coerceLiteral evaluates one AST value literal (which may itself
// contain nested Variable references inside a list/object) against typ,
// applying scalar parse_literal and enum/input-object/list recursion.
func coerceLiteral(doc *ast.Document, ref int, typ *typesystem.Type, variables map[string]interface{}, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	v := doc.Values[ref]

	if v.Kind == ast.ValueKindVariable {
		raw, ok := variables[v.Raw]
		if !ok {
			if typ.Kind == typesystem.KindNonNull {
				return nil, gqlerrors.List{pathError(path, `Variable "$%s" of required type %q was not provided.`, v.Raw, typ)}
			}
			return nil, nil
		}
		return coerceRawValue(raw, typ, path)
	}

	if typ.Kind == typesystem.KindNonNull {
		if v.Kind == ast.ValueKindNull {
			return nil, gqlerrors.List{pathError(path, "Expected non-null value.")}
		}
		return coerceLiteral(doc, ref, typ.OfType, variables, path)
	}
	if v.Kind == ast.ValueKindNull {
		return nil, nil
	}

	switch typ.Kind {
	case typesystem.KindList:
		if v.Kind != ast.ValueKindList {
			val, errs := coerceLiteral(doc, ref, typ.OfType, variables, path)
			if len(errs) > 0 {
				return nil, errs
			}
			return []interface{}{val}, nil
		}
		out := make([]interface{}, len(v.ListValues))
		var errs gqlerrors.List
		for i, item := range v.ListValues {
			val, ierrs := coerceLiteral(doc, item, typ.OfType, variables, appendIndex(path, i))
			if len(ierrs) > 0 {
				errs = append(errs, ierrs...)
				continue
			}
			out[i] = val
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil

	case typesystem.KindScalar:
		raw := literalRawValue(v)
		val, err := typ.Scalar.ParseLiteral(raw, variables)
		if err != nil {
			return nil, gqlerrors.List{pathError(path, "Expected type %q, found %s: %s", typ.Scalar.Name, literalText(v), err.Error())}
		}
		return val, nil

	case typesystem.KindEnum:
		if v.Kind != ast.ValueKindEnum {
			return nil, gqlerrors.List{pathError(path, "Enum %q values must not be a %s.", typ.Enum.Name, valueKindName(v.Kind))}
		}
		ev, ok := typ.Enum.ValueByName(v.Raw)
		if !ok {
			return nil, gqlerrors.List{pathError(path, "Value %q does not exist in %q enum.", v.Raw, typ.Enum.Name)}
		}
		return ev.Value, nil

	case typesystem.KindInputObject:
		if v.Kind != ast.ValueKindObject {
			return nil, gqlerrors.List{pathError(path, "Expected type %q to be an object.", typ.InputObject.Name)}
		}
		fields := typ.InputObject.Fields()
		provided := map[string]int{}
		for _, fref := range v.ObjectFields {
			of := doc.ObjectFields[fref]
			if _, ok := fields.Lookup(of.Name); !ok {
				return nil, gqlerrors.List{pathError(appendKey(path, of.Name), "Field %q is not defined by type %q.", of.Name, typ.InputObject.Name)}
			}
			provided[of.Name] = of.Value
		}
		out := map[string]interface{}{}
		var errs gqlerrors.List
		setCount := 0
		for _, name := range fields.Names {
			f, _ := fields.Lookup(name)
			fpath := appendKey(path, name)
			valRef, ok := provided[name]
			if !ok {
				if f.Default.HasValue {
					out[name] = f.Default.Value
				} else if f.Type.Kind == typesystem.KindNonNull {
					errs = append(errs, pathError(fpath, "Field %q of required type %q was not provided.", name, f.Type))
				}
				continue
			}
			val, ferrs := coerceLiteral(doc, valRef, f.Type, variables, fpath)
			if len(ferrs) > 0 {
				errs = append(errs, ferrs...)
				continue
			}
			out[name] = val
			setCount++
		}
		if typ.InputObject.IsOneOf && setCount != 1 {
			errs = append(errs, pathError(path, "Exactly one key must be specified for oneOf type %q.", typ.InputObject.Name))
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil

	default:
		return nil, gqlerrors.List{pathError(path, "Type %q is not an input type.", typ)}
	}
}

func literalRawValue(v ast.Value) interface{} {
	switch v.Kind {
	case ast.ValueKindInt, ast.ValueKindFloat, ast.ValueKindString, ast.ValueKindEnum:
		return v.Raw
	case ast.ValueKindBoolean:
		return v.Boolean
	case ast.ValueKindNull:
		return nil
	default:
		return nil
	}
}

func literalText(v ast.Value) string {
	if v.Kind == ast.ValueKindString {
		return `"` + v.Raw + `"`
	}
	return v.Raw
}

func valueKindName(k ast.ValueKind) string {
	switch k {
	case ast.ValueKindInt:
		return "Int"
	case ast.ValueKindFloat:
		return "Float"
	case ast.ValueKindString:
		return "String"
	case ast.ValueKindBoolean:
		return "Boolean"
	case ast.ValueKindList:
		return "List"
	case ast.ValueKindObject:
		return "Object"
	default:
		return "value"
	}
}
