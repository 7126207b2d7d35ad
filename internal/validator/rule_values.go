package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// valuesOfCorrectTypeRule: a literal value (ignoring anything nested
// behind a `$variable`, which variables-in-allowed-position checks
// instead) must match the shape its declared type requires -- scalar
// values must parse, enum values must name a declared member, list
// values may only appear against a list type unless auto-wrapped,
// input object literals may not supply unknown fields and must
// satisfy `@oneOf` (§4.6).
type valuesOfCorrectTypeRule struct {
	walker *astvisitor.Walker
	schema *typesystem.Schema
	report *operationreport.Report
}

func newValuesOfCorrectTypeRule(w *astvisitor.Walker, schema *typesystem.Schema, report *operationreport.Report) *valuesOfCorrectTypeRule {
	return &valuesOfCorrectTypeRule{walker: w, schema: schema, report: report}
}

func (r *valuesOfCorrectTypeRule) EnterField(ref int) {
	f := r.walker.Operation.Fields[ref]
	def := r.walker.EnclosingField()
	if def == nil {
		return
	}
	r.checkArgs(f.Arguments, def.Args)
}

func (r *valuesOfCorrectTypeRule) EnterDirective(ref int) {
	d := r.walker.Operation.Directives[ref]
	def, ok := r.schema.DirectiveByName(d.Name)
	if !ok {
		return
	}
	r.checkArgs(d.Arguments, def.Args)
}

func (r *valuesOfCorrectTypeRule) checkArgs(argRefs []int, declared typesystem.ArgumentMap) {
	for _, ref := range argRefs {
		a := r.walker.Operation.Arguments[ref]
		def, ok := declared.Lookup(a.Name)
		if !ok {
			continue // known-argument-names already reports this
		}
		r.checkValue(a.Value, def.Type)
	}
}

func (r *valuesOfCorrectTypeRule) checkValue(ref int, typ *typesystem.Type) {
	doc := r.walker.Operation
	v := doc.Values[ref]
	if v.Kind == ast.ValueKindVariable {
		return // variables-in-allowed-position's concern
	}
	if typ == nil {
		return
	}
	if typ.Kind == typesystem.KindNonNull {
		if v.Kind == ast.ValueKindNull {
			r.report.AddExternalError(ruleError(v.Position, "Expected value of type %q, found null.", typ))
			return
		}
		r.checkValue(ref, typ.OfType)
		return
	}
	if v.Kind == ast.ValueKindNull {
		return
	}

	switch typ.Kind {
	case typesystem.KindList:
		if v.Kind != ast.ValueKindList {
			r.checkValue(ref, typ.OfType)
			return
		}
		for _, item := range v.ListValues {
			r.checkValue(item, typ.OfType)
		}

	case typesystem.KindScalar:
		if !literalMatchesScalar(v, typ.Scalar) {
			r.report.AddExternalError(ruleError(v.Position, "Expected value of type %q, found %s.", typ.Scalar.Name, literalSummary(doc, v)))
		}

	case typesystem.KindEnum:
		if v.Kind != ast.ValueKindEnum {
			r.report.AddExternalError(ruleError(v.Position, "Expected value of type %q, found %s.", typ.Enum.Name, literalSummary(doc, v)))
			return
		}
		if _, ok := typ.Enum.ValueByName(v.Raw); !ok {
			r.report.AddExternalError(ruleError(v.Position, "Value %q does not exist in %q enum.", v.Raw, typ.Enum.Name))
		}

	case typesystem.KindInputObject:
		if v.Kind != ast.ValueKindObject {
			r.report.AddExternalError(ruleError(v.Position, "Expected value of type %q, found %s.", typ.InputObject.Name, literalSummary(doc, v)))
			return
		}
		fields := typ.InputObject.Fields()
		provided := map[string]bool{}
		setCount := 0
		for _, fref := range v.ObjectFields {
			of := doc.ObjectFields[fref]
			provided[of.Name] = true
			fd, ok := fields.Lookup(of.Name)
			if !ok {
				r.report.AddExternalError(ruleError(of.Position, "Field %q is not defined by type %q.", of.Name, typ.InputObject.Name))
				continue
			}
			if doc.Values[of.Value].Kind != ast.ValueKindNull {
				setCount++
			}
			r.checkValue(of.Value, fd.Type)
		}
		for _, name := range fields.Names {
			fd, _ := fields.Lookup(name)
			if fd.Type.Kind == typesystem.KindNonNull && !fd.Default.HasValue && !provided[name] {
				r.report.AddExternalError(ruleError(v.Position, "Field %q of required type %q was not provided.", name, fd.Type))
			}
		}
		if typ.InputObject.IsOneOf && setCount != 1 {
			r.report.AddExternalError(ruleError(v.Position, "Exactly one key must be specified for oneOf type %q.", typ.InputObject.Name))
		}
	}
}

// literalMatchesScalar checks a literal's node kind against what a
// built-in scalar accepts; custom scalars accept any literal shape
// (their ParseLiteral is the sole authority, exercised by coercion at
// execution time rather than duplicated here).
func literalMatchesScalar(v ast.Value, s *typesystem.Scalar) bool {
	switch s.Name {
	case "Int":
		return v.Kind == ast.ValueKindInt
	case "Float":
		return v.Kind == ast.ValueKindInt || v.Kind == ast.ValueKindFloat
	case "String":
		return v.Kind == ast.ValueKindString
	case "Boolean":
		return v.Kind == ast.ValueKindBoolean
	case "ID":
		return v.Kind == ast.ValueKindString || v.Kind == ast.ValueKindInt
	default:
		return true
	}
}

func literalSummary(doc *ast.Document, v ast.Value) string {
	switch v.Kind {
	case ast.ValueKindString:
		return `"` + v.Raw + `"`
	case ast.ValueKindList:
		return "a list"
	case ast.ValueKindObject:
		return "an object"
	case ast.ValueKindBoolean:
		if v.Boolean {
			return "true"
		}
		return "false"
	default:
		return v.Raw
	}
}
