// Package coerce implements value coercion (C6): turning a raw JSON
// `variables` map into typed Go values per the operation's variable
// declarations, and turning an AST argument-value literal into a typed
// Go value, both driven by the schema's type graph.
package coerce

import (
	"fmt"
	"strconv"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// pathError builds one coercion error with a JSON-pointer-like path
// (§4.5: "input.na.c", "input[1]").
func pathError(path []gqlerrors.PathSegment, format string, args ...interface{}) *gqlerrors.Error {
	return gqlerrors.New(fmt.Sprintf(format, args...)).WithPath(path)
}

func appendKey(path []gqlerrors.PathSegment, key string) []gqlerrors.PathSegment {
	out := make([]gqlerrors.PathSegment, len(path), len(path)+1)
	copy(out, path)
	return append(out, gqlerrors.StringSegment(key))
}

func appendIndex(path []gqlerrors.PathSegment, i int) []gqlerrors.PathSegment {
	out := make([]gqlerrors.PathSegment, len(path), len(path)+1)
	copy(out, path)
	return append(out, gqlerrors.IndexSegment(i))
}

// CoerceVariableValues coerces a raw `variables` JSON object (already
// decoded to map[string]interface{}, e.g. via encoding/json or
// jsonparser) against an operation's variable definitions (§4.5). If
// maxErrors is > 0 and exceeded, a final "too many errors" entry is
// appended and coercion aborts early.
func CoerceVariableValues(schema *typesystem.Schema, doc *ast.Document, varDefRefs []int, raw map[string]interface{}, maxErrors int) (map[string]interface{}, gqlerrors.List) {
	out := make(map[string]interface{}, len(varDefRefs))
	var errs gqlerrors.List

	for _, ref := range varDefRefs {
		if maxErrors > 0 && len(errs) > maxErrors {
			errs = append(errs, gqlerrors.New("Too many errors processing variables, error limit reached. Execution aborted."))
			return nil, errs
		}

		vd := doc.VariableDefinitions[ref]
		path := []gqlerrors.PathSegment{gqlerrors.StringSegment(vd.VariableName)}
		typ := resolveASTType(schema, doc, vd.Type)
		if typ == nil {
			errs = append(errs, pathError(path, "Unknown type for variable %q.", vd.VariableName))
			continue
		}

		rawVal, present := raw[vd.VariableName]
		if !present || rawVal == nil {
			if !present && vd.HasDefaultValue {
				out[vd.VariableName] = constValueToGo(doc, vd.DefaultValue)
				continue
			}
			if typ.Kind == typesystem.KindNonNull {
				if present {
					errs = append(errs, pathError(path, `Variable "$%s" of non-null type %q must not be null.`, vd.VariableName, typ))
				} else {
					errs = append(errs, pathError(path, `Variable "$%s" of required type %q was not provided.`, vd.VariableName, typ))
				}
				continue
			}
			out[vd.VariableName] = nil
			continue
		}

		v, verrs := coerceRawValue(rawVal, typ, path)
		if len(verrs) > 0 {
			errs = append(errs, verrs...)
			continue
		}
		out[vd.VariableName] = v
	}
	if maxErrors > 0 && len(errs) > maxErrors {
		errs = append(errs, gqlerrors.New("Too many errors processing variables, error limit reached. Execution aborted."))
		return nil, errs
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func coerceRawValue(raw interface{}, typ *typesystem.Type, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	if typ.Kind == typesystem.KindNonNull {
		if raw == nil {
			return nil, gqlerrors.List{pathError(path, "Expected non-null value.")}
		}
		return coerceRawValue(raw, typ.OfType, path)
	}
	if raw == nil {
		return nil, nil
	}

	switch typ.Kind {
	case typesystem.KindList:
		items, ok := raw.([]interface{})
		if !ok {
			// §4.5: a single value wraps into a one-element list.
			v, errs := coerceRawValue(raw, typ.OfType, path)
			if len(errs) > 0 {
				return nil, errs
			}
			return []interface{}{v}, nil
		}
		out := make([]interface{}, len(items))
		var errs gqlerrors.List
		for i, item := range items {
			v, ierrs := coerceRawValue(item, typ.OfType, appendIndex(path, i))
			if len(ierrs) > 0 {
				errs = append(errs, ierrs...)
				continue
			}
			out[i] = v
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil

	case typesystem.KindScalar:
		v, err := typ.Scalar.ParseValue(raw)
		if err != nil {
			return nil, gqlerrors.List{pathError(path, "Expected type %q, found %v: %s", typ.Scalar.Name, raw, err.Error())}
		}
		return v, nil

	case typesystem.KindEnum:
		name, ok := raw.(string)
		if !ok {
			return nil, gqlerrors.List{pathError(path, "Enum %q values must be strings.", typ.Enum.Name)}
		}
		ev, ok := typ.Enum.ValueByName(name)
		if !ok {
			return nil, gqlerrors.List{pathError(path, "Value %q does not exist in %q enum.", name, typ.Enum.Name)}
		}
		return ev.Value, nil

	case typesystem.KindInputObject:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, gqlerrors.List{pathError(path, "Expected type %q to be an object.", typ.InputObject.Name)}
		}
		return coerceInputObject(obj, typ.InputObject, path)

	default:
		return nil, gqlerrors.List{pathError(path, "Type %q is not an input type.", typ)}
	}
}

func coerceInputObject(obj map[string]interface{}, def *typesystem.InputObject, path []gqlerrors.PathSegment) (interface{}, gqlerrors.List) {
	fields := def.Fields()
	for key := range obj {
		if _, ok := fields.Lookup(key); !ok {
			return nil, gqlerrors.List{pathError(appendKey(path, key), "Field %q is not defined by type %q.", key, def.Name)}
		}
	}

	out := map[string]interface{}{}
	var errs gqlerrors.List
	setCount := 0
	for _, name := range fields.Names {
		f, _ := fields.Lookup(name)
		fpath := appendKey(path, name)
		raw, present := obj[name]
		if !present || raw == nil {
			if !present && f.Default.HasValue {
				out[name] = f.Default.Value
				continue
			}
			if f.Type.Kind == typesystem.KindNonNull {
				errs = append(errs, pathError(fpath, "Field %q of required type %q was not provided.", name, f.Type))
				continue
			}
			continue
		}
		v, ferrs := coerceRawValue(raw, f.Type, fpath)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		out[name] = v
		setCount++
	}
	if def.IsOneOf && setCount != 1 {
		errs = append(errs, pathError(path, "Exactly one key must be specified for oneOf type %q.", def.Name))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// resolveASTType resolves a parsed ast.Type reference against the
// schema's named types, building the matching typesystem.Type wrapper
// chain (List/NonNull preserved, Named resolved by lookup).
func resolveASTType(schema *typesystem.Schema, doc *ast.Document, ref int) *typesystem.Type {
	t := doc.Types[ref]
	switch t.Kind {
	case ast.TypeKindNonNull:
		inner := resolveASTType(schema, doc, t.OfType)
		if inner == nil {
			return nil
		}
		return typesystem.NonNullOf(inner)
	case ast.TypeKindList:
		inner := resolveASTType(schema, doc, t.OfType)
		if inner == nil {
			return nil
		}
		return typesystem.ListOf(inner)
	default:
		named, ok := schema.LookupType(t.Name)
		if !ok {
			return nil
		}
		return named
	}
}

// constValueToGo converts an AST value node known to contain no
// variable references (a default value) into a plain Go value, used
// when a variable was omitted and its declaration supplies a default.
func constValueToGo(doc *ast.Document, ref int) interface{} {
	v := doc.Values[ref]
	switch v.Kind {
	case ast.ValueKindNull:
		return nil
	case ast.ValueKindBoolean:
		return v.Boolean
	case ast.ValueKindInt:
		n, _ := strconv.ParseInt(v.Raw, 10, 64)
		return n
	case ast.ValueKindFloat:
		f, _ := strconv.ParseFloat(v.Raw, 64)
		return f
	case ast.ValueKindString, ast.ValueKindEnum:
		return v.Raw
	case ast.ValueKindList:
		out := make([]interface{}, len(v.ListValues))
		for i, item := range v.ListValues {
			out[i] = constValueToGo(doc, item)
		}
		return out
	case ast.ValueKindObject:
		out := map[string]interface{}{}
		for _, fref := range v.ObjectFields {
			f := doc.ObjectFields[fref]
			out[f.Name] = constValueToGo(doc, f.Value)
		}
		return out
	default:
		return nil
	}
}
