package astvisitor

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// EnterOperationDefinitionVisitor, .. one registration interface per
// node kind query validation (C7) cares about. A rule implements
// whichever subset it needs and registers itself with Walker via the
// matching Register*Visitor call, mirroring the teacher's
// RegisterEnterFieldVisitor(visitor) pattern observed in
// engine/plan/datasource_filter_visitor.go.
type (
	EnterOperationDefinitionVisitor interface {
		EnterOperationDefinition(ref int)
	}
	LeaveOperationDefinitionVisitor interface {
		LeaveOperationDefinition(ref int)
	}
	EnterFragmentDefinitionVisitor interface {
		EnterFragmentDefinition(ref int)
	}
	LeaveFragmentDefinitionVisitor interface {
		LeaveFragmentDefinition(ref int)
	}
	EnterSelectionSetVisitor interface {
		EnterSelectionSet(ref int)
	}
	LeaveSelectionSetVisitor interface {
		LeaveSelectionSet(ref int)
	}
	EnterFieldVisitor interface {
		EnterField(ref int)
	}
	LeaveFieldVisitor interface {
		LeaveField(ref int)
	}
	EnterArgumentVisitor interface {
		EnterArgument(ref int)
	}
	EnterDirectiveVisitor interface {
		EnterDirective(ref int)
	}
	EnterFragmentSpreadVisitor interface {
		EnterFragmentSpread(ref int)
	}
	LeaveFragmentSpreadVisitor interface {
		LeaveFragmentSpread(ref int)
	}
	EnterInlineFragmentVisitor interface {
		EnterInlineFragment(ref int)
	}
	LeaveInlineFragmentVisitor interface {
		LeaveInlineFragment(ref int)
	}
	EnterVariableDefinitionVisitor interface {
		EnterVariableDefinition(ref int)
	}
	EnterDocumentVisitor interface {
		EnterDocument()
	}
	LeaveDocumentVisitor interface {
		LeaveDocument()
	}
)

// Walker is the schema-aware traversal query validation rules run
// against: it walks one executable document's operations and the
// fragments they spread, tracks TypeInfo (the enclosing type at every
// point of the walk) and fans out to every rule registered for a node
// kind, stopping dispatch to a given rule once that rule signals it is
// done via Stop. Grounded directly on the teacher's
// astvisitor.Walker / Walk(operation, definition, report) shape.
type Walker struct {
	Operation  *ast.Document
	Definition *typesystem.Schema
	Report     *operationreport.Report

	TypeInfo

	enterDocument    []EnterDocumentVisitor
	leaveDocument    []LeaveDocumentVisitor
	enterOperation   []EnterOperationDefinitionVisitor
	leaveOperation   []LeaveOperationDefinitionVisitor
	enterFragmentDef []EnterFragmentDefinitionVisitor
	leaveFragmentDef []LeaveFragmentDefinitionVisitor
	enterSelSet      []EnterSelectionSetVisitor
	leaveSelSet      []LeaveSelectionSetVisitor
	enterField       []EnterFieldVisitor
	leaveField       []LeaveFieldVisitor
	enterArgument    []EnterArgumentVisitor
	enterDirective   []EnterDirectiveVisitor
	enterSpread      []EnterFragmentSpreadVisitor
	leaveSpread      []LeaveFragmentSpreadVisitor
	enterInline      []EnterInlineFragmentVisitor
	leaveInline      []LeaveInlineFragmentVisitor
	enterVarDef      []EnterVariableDefinitionVisitor

	stopped map[interface{}]bool

	visitedFragments map[string]bool
}

// NewWalker allocates a Walker ready to have rules registered on it.
func NewWalker() *Walker {
	return &Walker{stopped: map[interface{}]bool{}}
}

// Stop marks visitor as done for the remainder of this walk: later
// Enter/Leave calls skip it. This is the mechanism ParallelVisitor's
// "fan out to many, stop once one returns Break" semantics are built
// from -- it is native to Walker rather than a separate wrapper.
func (w *Walker) Stop(visitor interface{}) { w.stopped[visitor] = true }

func (w *Walker) isStopped(visitor interface{}) bool { return w.stopped[visitor] }

func (w *Walker) RegisterEnterDocumentVisitor(v EnterDocumentVisitor) { w.enterDocument = append(w.enterDocument, v) }
func (w *Walker) RegisterLeaveDocumentVisitor(v LeaveDocumentVisitor) { w.leaveDocument = append(w.leaveDocument, v) }
func (w *Walker) RegisterEnterOperationDefinitionVisitor(v EnterOperationDefinitionVisitor) {
	w.enterOperation = append(w.enterOperation, v)
}
func (w *Walker) RegisterLeaveOperationDefinitionVisitor(v LeaveOperationDefinitionVisitor) {
	w.leaveOperation = append(w.leaveOperation, v)
}
func (w *Walker) RegisterEnterFragmentDefinitionVisitor(v EnterFragmentDefinitionVisitor) {
	w.enterFragmentDef = append(w.enterFragmentDef, v)
}
func (w *Walker) RegisterLeaveFragmentDefinitionVisitor(v LeaveFragmentDefinitionVisitor) {
	w.leaveFragmentDef = append(w.leaveFragmentDef, v)
}
func (w *Walker) RegisterEnterSelectionSetVisitor(v EnterSelectionSetVisitor) {
	w.enterSelSet = append(w.enterSelSet, v)
}
func (w *Walker) RegisterLeaveSelectionSetVisitor(v LeaveSelectionSetVisitor) {
	w.leaveSelSet = append(w.leaveSelSet, v)
}
func (w *Walker) RegisterEnterFieldVisitor(v EnterFieldVisitor) { w.enterField = append(w.enterField, v) }
func (w *Walker) RegisterLeaveFieldVisitor(v LeaveFieldVisitor) { w.leaveField = append(w.leaveField, v) }
func (w *Walker) RegisterEnterArgumentVisitor(v EnterArgumentVisitor) {
	w.enterArgument = append(w.enterArgument, v)
}
func (w *Walker) RegisterEnterDirectiveVisitor(v EnterDirectiveVisitor) {
	w.enterDirective = append(w.enterDirective, v)
}
func (w *Walker) RegisterEnterFragmentSpreadVisitor(v EnterFragmentSpreadVisitor) {
	w.enterSpread = append(w.enterSpread, v)
}
func (w *Walker) RegisterLeaveFragmentSpreadVisitor(v LeaveFragmentSpreadVisitor) {
	w.leaveSpread = append(w.leaveSpread, v)
}
func (w *Walker) RegisterEnterInlineFragmentVisitor(v EnterInlineFragmentVisitor) {
	w.enterInline = append(w.enterInline, v)
}
func (w *Walker) RegisterLeaveInlineFragmentVisitor(v LeaveInlineFragmentVisitor) {
	w.leaveInline = append(w.leaveInline, v)
}
func (w *Walker) RegisterEnterVariableDefinitionVisitor(v EnterVariableDefinitionVisitor) {
	w.enterVarDef = append(w.enterVarDef, v)
}

// RegisterAll wires every registration interface visitor implements --
// the common case where one rule struct implements several Enter/Leave
// methods at once.
func (w *Walker) RegisterAll(v interface{}) {
	if x, ok := v.(EnterDocumentVisitor); ok {
		w.RegisterEnterDocumentVisitor(x)
	}
	if x, ok := v.(LeaveDocumentVisitor); ok {
		w.RegisterLeaveDocumentVisitor(x)
	}
	if x, ok := v.(EnterOperationDefinitionVisitor); ok {
		w.RegisterEnterOperationDefinitionVisitor(x)
	}
	if x, ok := v.(LeaveOperationDefinitionVisitor); ok {
		w.RegisterLeaveOperationDefinitionVisitor(x)
	}
	if x, ok := v.(EnterFragmentDefinitionVisitor); ok {
		w.RegisterEnterFragmentDefinitionVisitor(x)
	}
	if x, ok := v.(LeaveFragmentDefinitionVisitor); ok {
		w.RegisterLeaveFragmentDefinitionVisitor(x)
	}
	if x, ok := v.(EnterSelectionSetVisitor); ok {
		w.RegisterEnterSelectionSetVisitor(x)
	}
	if x, ok := v.(LeaveSelectionSetVisitor); ok {
		w.RegisterLeaveSelectionSetVisitor(x)
	}
	if x, ok := v.(EnterFieldVisitor); ok {
		w.RegisterEnterFieldVisitor(x)
	}
	if x, ok := v.(LeaveFieldVisitor); ok {
		w.RegisterLeaveFieldVisitor(x)
	}
	if x, ok := v.(EnterArgumentVisitor); ok {
		w.RegisterEnterArgumentVisitor(x)
	}
	if x, ok := v.(EnterDirectiveVisitor); ok {
		w.RegisterEnterDirectiveVisitor(x)
	}
	if x, ok := v.(EnterFragmentSpreadVisitor); ok {
		w.RegisterEnterFragmentSpreadVisitor(x)
	}
	if x, ok := v.(LeaveFragmentSpreadVisitor); ok {
		w.RegisterLeaveFragmentSpreadVisitor(x)
	}
	if x, ok := v.(EnterInlineFragmentVisitor); ok {
		w.RegisterEnterInlineFragmentVisitor(x)
	}
	if x, ok := v.(LeaveInlineFragmentVisitor); ok {
		w.RegisterLeaveInlineFragmentVisitor(x)
	}
	if x, ok := v.(EnterVariableDefinitionVisitor); ok {
		w.RegisterEnterVariableDefinitionVisitor(x)
	}
}

// Walk traverses operation against definition (the schema), reporting
// any internal errors hit along the way to report. Every
// OperationDefinition and every FragmentDefinition transitively spread
// by one is visited exactly once (§4.6's "no fragment cycles" rule
// depends on this once-only guarantee to terminate).
func (w *Walker) Walk(operation *ast.Document, definition *typesystem.Schema, report *operationreport.Report) {
	w.Operation = operation
	w.Definition = definition
	w.Report = report
	w.visitedFragments = map[string]bool{}
	w.TypeInfo = TypeInfo{}

	for _, v := range w.enterDocument {
		if !w.isStopped(v) {
			v.EnterDocument()
		}
	}

	for _, root := range operation.RootNodes {
		if root.Kind == ast.NodeKindOperationDefinition {
			w.walkOperationDefinition(root.Ref)
		}
	}

	for _, v := range w.leaveDocument {
		if !w.isStopped(v) {
			v.LeaveDocument()
		}
	}
}

func (w *Walker) rootTypeFor(opType ast.OperationType) *typesystem.Object {
	if w.Definition == nil {
		return nil
	}
	switch opType {
	case ast.OperationTypeMutation:
		return w.Definition.Mutation
	case ast.OperationTypeSubscription:
		return w.Definition.Subscription
	default:
		return w.Definition.Query
	}
}

func (w *Walker) walkOperationDefinition(ref int) {
	op := w.Operation.OperationDefinitions[ref]

	w.TypeInfo.pushType(w.rootTypeAsType(op.OperationType))
	for _, v := range w.enterOperation {
		if !w.isStopped(v) {
			v.EnterOperationDefinition(ref)
		}
	}
	for _, vdRef := range op.VariableDefinitions {
		for _, v := range w.enterVarDef {
			if !w.isStopped(v) {
				v.EnterVariableDefinition(vdRef)
			}
		}
	}
	w.walkSelectionSet(op.SelectionSet)
	for _, v := range w.leaveOperation {
		if !w.isStopped(v) {
			v.LeaveOperationDefinition(ref)
		}
	}
	w.TypeInfo.popType()
}

func (w *Walker) rootTypeAsType(opType ast.OperationType) *typesystem.Type {
	o := w.rootTypeFor(opType)
	if o == nil {
		return nil
	}
	return &typesystem.Type{Kind: typesystem.KindObject, Object: o}
}

func (w *Walker) walkSelectionSet(ref int) {
	ss := w.Operation.SelectionSets[ref]
	for _, v := range w.enterSelSet {
		if !w.isStopped(v) {
			v.EnterSelectionSet(ref)
		}
	}
	for _, sel := range ss.Selections {
		switch sel.Kind {
		case ast.NodeKindField:
			w.walkField(sel.Ref)
		case ast.NodeKindFragmentSpread:
			w.walkFragmentSpread(sel.Ref)
		case ast.NodeKindInlineFragment:
			w.walkInlineFragment(sel.Ref)
		}
	}
	for _, v := range w.leaveSelSet {
		if !w.isStopped(v) {
			v.LeaveSelectionSet(ref)
		}
	}
}

func (w *Walker) walkField(ref int) {
	f := w.Operation.Fields[ref]

	parent := w.TypeInfo.EnclosingType()
	var fieldDef *typesystem.Field
	if parent != nil {
		if fm, ok := fieldsOf(parent); ok {
			if fd, ok := fm.Lookup(f.Name); ok {
				fieldDef = fd
			}
		}
	}
	w.TypeInfo.pushField(fieldDef)
	if fieldDef != nil {
		w.TypeInfo.pushType(fieldDef.Type)
	} else {
		w.TypeInfo.pushType(nil)
	}

	for _, v := range w.enterField {
		if !w.isStopped(v) {
			v.EnterField(ref)
		}
	}
	for _, argRef := range f.Arguments {
		for _, v := range w.enterArgument {
			if !w.isStopped(v) {
				v.EnterArgument(argRef)
			}
		}
	}
	for _, dirRef := range f.Directives {
		for _, v := range w.enterDirective {
			if !w.isStopped(v) {
				v.EnterDirective(dirRef)
			}
		}
	}
	if f.HasSelectionSet {
		w.walkSelectionSet(f.SelectionSet)
	}
	for _, v := range w.leaveField {
		if !w.isStopped(v) {
			v.LeaveField(ref)
		}
	}

	w.TypeInfo.popType()
	w.TypeInfo.popField()
}

func (w *Walker) walkFragmentSpread(ref int) {
	spread := w.Operation.FragmentSpreads[ref]
	for _, v := range w.enterSpread {
		if !w.isStopped(v) {
			v.EnterFragmentSpread(ref)
		}
	}
	for _, dirRef := range spread.Directives {
		for _, v := range w.enterDirective {
			if !w.isStopped(v) {
				v.EnterDirective(dirRef)
			}
		}
	}

	if !w.visitedFragments[spread.FragmentName] {
		w.visitedFragments[spread.FragmentName] = true
		if fragRef, ok := w.Operation.FragmentByName(spread.FragmentName); ok {
			w.walkFragmentDefinitionBody(fragRef)
		}
	}

	for _, v := range w.leaveSpread {
		if !w.isStopped(v) {
			v.LeaveFragmentSpread(ref)
		}
	}
}

// walkFragmentDefinitionBody descends into a fragment's selection set
// in the type context of its own type condition, without re-emitting
// Enter/LeaveFragmentDefinition (that pair only fires for fragments
// walked as a RootNode directly, e.g. by the unused-fragments rule;
// fragments reached via a spread are walked in the spread's type
// context per graphql-js's CollectFieldsVisitor behavior).
func (w *Walker) walkFragmentDefinitionBody(ref int) {
	fd := w.Operation.FragmentDefinitions[ref]
	w.TypeInfo.pushType(w.namedTypeAsType(fd.TypeCondition))
	w.walkSelectionSet(fd.SelectionSet)
	w.TypeInfo.popType()
}

func (w *Walker) namedTypeAsType(name string) *typesystem.Type {
	if w.Definition == nil {
		return nil
	}
	t, _ := w.Definition.LookupType(name)
	return t
}

func (w *Walker) walkInlineFragment(ref int) {
	fr := w.Operation.InlineFragments[ref]
	enclosing := w.TypeInfo.EnclosingType()
	if fr.HasTypeCondition {
		enclosing = w.namedTypeAsType(fr.TypeCondition)
	}
	w.TypeInfo.pushType(enclosing)

	for _, v := range w.enterInline {
		if !w.isStopped(v) {
			v.EnterInlineFragment(ref)
		}
	}
	for _, dirRef := range fr.Directives {
		for _, v := range w.enterDirective {
			if !w.isStopped(v) {
				v.EnterDirective(dirRef)
			}
		}
	}
	w.walkSelectionSet(fr.SelectionSet)
	for _, v := range w.leaveInline {
		if !w.isStopped(v) {
			v.LeaveInlineFragment(ref)
		}
	}

	w.TypeInfo.popType()
}

// WalkFragmentDefinitions additionally visits every fragment defined in
// the document as its own RootNode (firing Enter/LeaveFragmentDefinition),
// independent of whether any operation spreads it -- the traversal the
// no_unused_fragments rule (§4.6) needs.
func (w *Walker) WalkFragmentDefinitions() {
	for _, root := range w.Operation.RootNodes {
		if root.Kind != ast.NodeKindFragmentDefinition {
			continue
		}
		fd := w.Operation.FragmentDefinitions[root.Ref]
		w.TypeInfo.pushType(w.namedTypeAsType(fd.TypeCondition))
		for _, v := range w.enterFragmentDef {
			if !w.isStopped(v) {
				v.EnterFragmentDefinition(root.Ref)
			}
		}
		w.walkSelectionSet(fd.SelectionSet)
		for _, v := range w.leaveFragmentDef {
			if !w.isStopped(v) {
				v.LeaveFragmentDefinition(root.Ref)
			}
		}
		w.TypeInfo.popType()
	}
}

// EnclosingTypeDefinition exposes the named type currently enclosing
// the walk (§4.6 rules read this directly, as
// datasource_filter_visitor.go reads walker.EnclosingTypeDefinition).
func (w *Walker) EnclosingTypeDefinition() *typesystem.Type { return w.TypeInfo.EnclosingType() }

// fieldsOf returns the FieldMap of an Object or Interface type, the two
// composite kinds that carry selectable fields.
func fieldsOf(t *typesystem.Type) (typesystem.FieldMap, bool) {
	switch t.Kind {
	case typesystem.KindObject:
		return t.Object.Fields(), true
	case typesystem.KindInterface:
		return t.Interface.Fields(), true
	default:
		return typesystem.FieldMap{}, false
	}
}
