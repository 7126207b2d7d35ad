package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// checkUniqueArgumentNames: a single field or directive application
// must not repeat an argument name (§4.6).
func checkUniqueArgumentNames(doc *ast.Document, report *operationreport.Report) {
	for i := range doc.Fields {
		checkArgNamesUnique(doc, doc.Fields[i].Arguments, report)
	}
	for i := range doc.Directives {
		checkArgNamesUnique(doc, doc.Directives[i].Arguments, report)
	}
}

func checkArgNamesUnique(doc *ast.Document, argRefs []int, report *operationreport.Report) {
	seen := map[string]bool{}
	for _, ref := range argRefs {
		a := doc.Arguments[ref]
		if seen[a.Name] {
			report.AddExternalError(ruleError(a.Position, "There can be only one argument named %q.", a.Name))
			continue
		}
		seen[a.Name] = true
	}
}

// checkUniqueInputFieldNames: an object value literal must not repeat
// a field name (§4.6).
func checkUniqueInputFieldNames(doc *ast.Document, report *operationreport.Report) {
	for i := range doc.Values {
		if doc.Values[i].Kind != ast.ValueKindObject {
			continue
		}
		seen := map[string]bool{}
		for _, fref := range doc.Values[i].ObjectFields {
			of := doc.ObjectFields[fref]
			if seen[of.Name] {
				report.AddExternalError(ruleError(of.Position, "There can be only one input field named %q.", of.Name))
				continue
			}
			seen[of.Name] = true
		}
	}
}

// knownArgumentNamesRule: every argument applied to a field or
// directive must be declared by that field's/directive's definition
// (§4.6).
type knownArgumentNamesRule struct {
	walker *astvisitor.Walker
	report *operationreport.Report
}

func newKnownArgumentNamesRule(w *astvisitor.Walker, report *operationreport.Report) *knownArgumentNamesRule {
	return &knownArgumentNamesRule{walker: w, report: report}
}

func (r *knownArgumentNamesRule) EnterField(ref int) {
	f := r.walker.Operation.Fields[ref]
	def := r.walker.EnclosingField()
	if def == nil {
		return // unknown field, fields-on-correct-type already reports this
	}
	r.checkArgs(f.Arguments, def.Args, "field", f.Name)
}

func (r *knownArgumentNamesRule) EnterDirective(ref int) {
	d := r.walker.Operation.Directives[ref]
	def, ok := r.walker.Definition.DirectiveByName(d.Name)
	if !ok {
		return // known-directives already reports this
	}
	r.checkArgs(d.Arguments, def.Args, "directive", d.Name)
}

func (r *knownArgumentNamesRule) checkArgs(argRefs []int, declared typesystem.ArgumentMap, kind, ownerName string) {
	for _, ref := range argRefs {
		a := r.walker.Operation.Arguments[ref]
		if _, ok := declared.Lookup(a.Name); !ok {
			r.report.AddExternalError(ruleError(a.Position, "Unknown argument %q on %s %q.", a.Name, kind, ownerName))
		}
	}
}

// providedRequiredArgumentsRule: every argument of NonNull type with
// no default must be supplied on a field or directive application
// (§4.6).
type providedRequiredArgumentsRule struct {
	walker *astvisitor.Walker
	report *operationreport.Report
}

func newProvidedRequiredArgumentsRule(w *astvisitor.Walker, report *operationreport.Report) *providedRequiredArgumentsRule {
	return &providedRequiredArgumentsRule{walker: w, report: report}
}

func (r *providedRequiredArgumentsRule) EnterField(ref int) {
	f := r.walker.Operation.Fields[ref]
	def := r.walker.EnclosingField()
	if def == nil {
		return
	}
	r.checkProvided(f.Arguments, def.Args, f.Position, "field", f.Name)
}

func (r *providedRequiredArgumentsRule) EnterDirective(ref int) {
	d := r.walker.Operation.Directives[ref]
	def, ok := r.walker.Definition.DirectiveByName(d.Name)
	if !ok {
		return
	}
	r.checkProvided(d.Arguments, def.Args, d.Position, "directive", d.Name)
}

func (r *providedRequiredArgumentsRule) checkProvided(provided []int, declared typesystem.ArgumentMap, pos ast.Position, kind, ownerName string) {
	have := map[string]bool{}
	for _, ref := range provided {
		have[r.walker.Operation.Arguments[ref].Name] = true
	}
	for _, name := range declared.Names {
		def, _ := declared.Lookup(name)
		if def.Type.Kind != typesystem.KindNonNull || def.Default.HasValue {
			continue
		}
		if !have[name] {
			r.report.AddExternalError(ruleError(pos, `%s %q argument %q of type %q is required, but it was not provided.`, kindTitle(kind), ownerName, name, def.Type))
		}
	}
}

func kindTitle(kind string) string {
	if kind == "directive" {
		return "Directive"
	}
	return "Field"
}
