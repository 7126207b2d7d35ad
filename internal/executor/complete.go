package executor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/incremental"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// errNullBubble marks that a NonNull field produced null; the error
// itself has already been recorded on ec.Errors by the caller, so
// propagation only needs to turn the nearest nullable ancestor to null
// (§4.7 step 5 "Errors and non-nullability").
var errNullBubble = fmt.Errorf("executor: non-null field completed as null")

// completeValue implements §4.7 step 5: coerce a resolver's raw return
// value into a response value matching fieldType, recursing through
// List/NonNull wrappers, serializing Leaf (Scalar/Enum) types, and
// resolving+re-entering execution for Composite (Object/Interface/Union)
// types. A non-nil error return signals that fieldType was NonNull and
// completion produced null, which the caller must bubble to its own
// nearest nullable ancestor.
func completeValue(
	ctx context.Context,
	ec *ExecutionContext,
	fieldType *typesystem.Type,
	field ast.Field,
	fieldRefs []int,
	path []gqlerrors.PathSegment,
	result interface{},
) (interface{}, error) {
	doc := ec.Document

	// A list (or any field) may resolve to a Go error value in place of
	// actual data -- the per-item equivalent of a resolver returning
	// (nil, err) -- most commonly an item placed directly in a list's
	// backing data to simulate a single failed element (§8 S3).
	if err, isErr := result.(error); isErr {
		ec.AddError(gqlerrors.New(err.Error()).
			WithLocations(nodePositions(doc, fieldRefs)...).
			WithPath(path))
		if fieldType.IsNonNull() {
			return nil, errNullBubble
		}
		return nil, nil
	}

	if fieldType.IsNonNull() {
		inner, err := completeValue(ctx, ec, fieldType.OfType, field, fieldRefs, path, result)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			ec.AddError(gqlerrors.New(fmt.Sprintf("Cannot return null for non-nullable field %q.", field.Name)).
				WithLocations(nodePositions(doc, fieldRefs)...).
				WithPath(path))
			return nil, errNullBubble
		}
		return inner, nil
	}

	if result == nil {
		return nil, nil
	}

	if fieldType.IsList() {
		return completeListValue(ctx, ec, fieldType, field, fieldRefs, path, result)
	}

	switch fieldType.Kind {
	case typesystem.KindScalar, typesystem.KindEnum:
		return completeLeafValue(ec, fieldType, path, result)
	default:
		return completeCompositeValue(ctx, ec, fieldType, fieldRefs, path, result)
	}
}

// completeListValue walks result as a slice, completing each item
// against the list's item type; a streamed field (`@stream`) completes
// only the first initialCount items inline and hands the remainder to
// the incremental graph as a StreamItemsRecord (§4.8).
func completeListValue(
	ctx context.Context,
	ec *ExecutionContext,
	fieldType *typesystem.Type,
	field ast.Field,
	fieldRefs []int,
	path []gqlerrors.PathSegment,
	result interface{},
) (interface{}, error) {
	doc := ec.Document
	items, ok := asSlice(result)
	if !ok {
		ec.AddError(gqlerrors.New(fmt.Sprintf("Expected Iterable, but did not find one for field %q.", field.Name)).
			WithLocations(nodePositions(doc, fieldRefs)...).
			WithPath(path))
		return nil, nil
	}

	itemType := fieldType.OfType
	initialCount, label, streaming := streamArgs(ec, field.Directives)
	if !streaming || ec.Graph == nil {
		initialCount = len(items)
	}
	if initialCount > len(items) {
		initialCount = len(items)
	}

	out := make([]interface{}, 0, initialCount)
	for i := 0; i < initialCount; i++ {
		itemPath := appendIndex(path, i)
		completed, err := completeValue(ctx, ec, itemType, field, fieldRefs, itemPath, items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, completed)
	}

	if streaming && ec.Graph != nil && initialCount < len(items) {
		record := incremental.NewStreamItemsRecord(path, label)
		remaining := items[initialCount:]
		streamed := make([]interface{}, 0, len(remaining))
		var streamErrs gqlerrors.List
		for i, item := range remaining {
			itemPath := appendIndex(path, initialCount+i)
			completed, err := completeValue(ctx, ec, itemType, field, fieldRefs, itemPath, item)
			if err != nil {
				streamErrs = append(streamErrs, gqlerrors.New(fmt.Sprintf("Cannot return null for non-nullable item in streamed field %q.", field.Name)).WithPath(itemPath))
				break
			}
			streamed = append(streamed, completed)
		}
		ec.Graph.AddStreamItems(record, &incremental.StreamItemsResult{Record: record, Items: streamed, Errors: streamErrs})
		ec.Graph.AddStreamItems(record, &incremental.StreamItemsResult{Record: record, Terminated: true})
	}

	return out, nil
}

// streamArgs reads `@stream(initialCount:, label:)` off a field's
// directive list (§4.4, §4.8).
func streamArgs(ec *ExecutionContext, directiveRefs []int) (initialCount int, label string, ok bool) {
	doc := ec.Document
	for _, ref := range directiveRefs {
		d := doc.Directives[ref]
		if d.Name != "stream" {
			continue
		}
		if !boolArgValue(ec, d.Arguments, "if", true) {
			return 0, "", false
		}
		if a, found := doc.ArgumentByName(d.Arguments, "initialCount"); found {
			v := doc.Values[a.Value]
			if v.Kind == ast.ValueKindInt {
				if n, err := strconv.Atoi(v.Raw); err == nil {
					initialCount = n
				}
			}
		}
		if a, found := doc.ArgumentByName(d.Arguments, "label"); found {
			if v := doc.Values[a.Value]; v.Kind == ast.ValueKindString {
				label = v.Raw
			}
		}
		return initialCount, label, true
	}
	return 0, "", false
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	default:
		return nil, false
	}
}

// completeLeafValue serializes a Scalar/Enum value for the response
// (§4.7 step 5 Leaf completion).
func completeLeafValue(ec *ExecutionContext, fieldType *typesystem.Type, path []gqlerrors.PathSegment, result interface{}) (interface{}, error) {
	switch fieldType.Kind {
	case typesystem.KindScalar:
		serialized, err := fieldType.Scalar.Serialize(result)
		if err != nil {
			ec.AddError(gqlerrors.New(fmt.Sprintf("%s: %v", fieldType.Scalar.Name, err)).WithPath(path))
			return nil, nil
		}
		return serialized, nil
	case typesystem.KindEnum:
		ev, ok := fieldType.Enum.ValueBySerialized(result)
		if !ok {
			ec.AddError(gqlerrors.New(fmt.Sprintf("Enum %q cannot represent value: %v", fieldType.Enum.Name, result)).WithPath(path))
			return nil, nil
		}
		return ev.Name, nil
	default:
		return result, nil
	}
}

// completeCompositeValue implements §4.7 step 5 Composite completion:
// resolve the concrete Object for result (directly for an Object type,
// via ResolveType/IsTypeOf for Interface/Union), merge the selection
// sets of every field in the group, and recursively execute them
// against result as the new source value.
func completeCompositeValue(
	ctx context.Context,
	ec *ExecutionContext,
	fieldType *typesystem.Type,
	fieldRefs []int,
	path []gqlerrors.PathSegment,
	result interface{},
) (interface{}, error) {
	doc := ec.Document
	objectType, err := resolveRuntimeType(ctx, ec, fieldType, path, result)
	if err != nil {
		ec.AddError(gqlerrors.LocatedError(err, nodePositions(doc, fieldRefs), path))
		return nil, nil
	}
	if objectType == nil {
		ec.AddError(gqlerrors.New("Abstract type could not resolve a concrete type for value.").WithPath(path))
		return nil, nil
	}

	groups, deferredSels := mergeSelections(ec, objectType.Name, fieldRefs)

	data, ferr := executeFields(ctx, ec, objectType, result, path, groups, false)
	if ferr != nil {
		// A NonNull violation among this object's own fields nulls the
		// whole object and keeps bubbling to our own caller (§4.7 step 5).
		return nil, ferr
	}
	processDeferredSelections(ctx, ec, objectType, result, path, deferredSels)

	return data, nil
}

// processDeferredSelections runs each `@defer`'d selection set and
// records its result on the incremental graph, one DeferredFragmentRecord
// per distinct label (§4.7 step 3, §4.8). A no-op when the document
// never allocated a Graph (buildExecutionContext only does so when
// `@defer`/`@stream` actually appear).
func processDeferredSelections(
	ctx context.Context,
	ec *ExecutionContext,
	parentType *typesystem.Object,
	source interface{},
	path []gqlerrors.PathSegment,
	deferredSels []deferredSelection,
) {
	if ec.Graph == nil || len(deferredSels) == 0 {
		return
	}
	for label, sels := range groupDeferredByLabel(deferredSels) {
		record := incremental.NewDeferredFragmentRecord(path, label, nil)
		deferredData := map[string]interface{}{}
		for _, d := range sels {
			subGroups, _ := collectFields(ec, parentType.Name, d.selectionSet, map[string]bool{})
			fields, ferr := executeFields(ctx, ec, parentType, source, path, subGroups, false)
			if ferr != nil {
				// A NonNull violation inside this deferred fragment nulls
				// its own data rather than the parent object that's
				// already been delivered in the initial response.
				deferredData = nil
				break
			}
			for k, v := range fields {
				deferredData[k] = v
			}
		}
		ec.Graph.AddDeferredFragment(record, &incremental.DeferredGroupedFieldSetResult{
			Path:                    path,
			Data:                    deferredData,
			DeferredFragmentRecords: []*incremental.DeferredFragmentRecord{record},
		})
	}
}

// mergeSelections collects the response-key groups (and deferred
// selections) contributed by every field node in a merged field group,
// since two aliased occurrences of the same response key can each
// carry their own selection set (§4.7 step 3 "field collection merges
// across the group").
func mergeSelections(ec *ExecutionContext, runtimeTypeName string, fieldRefs []int) ([]*fieldGroup, []deferredSelection) {
	doc := ec.Document
	merged := map[string]*fieldGroup{}
	var order []string
	var deferred []deferredSelection

	for _, ref := range fieldRefs {
		f := doc.Fields[ref]
		if !f.HasSelectionSet {
			continue
		}
		groups, defs := collectFields(ec, runtimeTypeName, f.SelectionSet, map[string]bool{})
		for _, g := range groups {
			existing, ok := merged[g.responseKey]
			if !ok {
				merged[g.responseKey] = g
				order = append(order, g.responseKey)
				continue
			}
			existing.fieldRefs = append(existing.fieldRefs, g.fieldRefs...)
		}
		deferred = append(deferred, defs...)
	}

	out := make([]*fieldGroup, 0, len(order))
	for _, key := range order {
		out = append(out, merged[key])
	}
	return out, deferred
}

// groupDeferredByLabel buckets deferred selections collected from a
// merged field group by their `@defer(label:)`, since two distinct
// deferred fragments landing on the same path are still two separate
// DeferredFragmentRecords (§4.8).
func groupDeferredByLabel(sels []deferredSelection) map[string][]deferredSelection {
	out := map[string][]deferredSelection{}
	for _, s := range sels {
		out[s.label] = append(out[s.label], s)
	}
	return out
}

// resolveRuntimeType picks the concrete Object backing an abstract or
// object-typed result (§4.7 step 5): an Object type's own definition
// directly, an Interface/Union via its ResolveType hook or (failing
// that) each candidate's IsTypeOf.
func resolveRuntimeType(ctx context.Context, ec *ExecutionContext, fieldType *typesystem.Type, path []gqlerrors.PathSegment, result interface{}) (*typesystem.Object, error) {
	info := typesystem.ResolveInfo{Path: path, Schema: ec.Schema, ContextValue: ctx}

	switch fieldType.Kind {
	case typesystem.KindObject:
		return fieldType.Object, nil

	case typesystem.KindInterface:
		if fieldType.Interface.ResolveType != nil {
			return fieldType.Interface.ResolveType(result, info)
		}
		if ec.TypeResolver != nil {
			return ec.TypeResolver(result, info)
		}
		for _, candidate := range ec.Schema.PossibleTypes(fieldType) {
			if candidate.IsTypeOf != nil && candidate.IsTypeOf(result, info) {
				return candidate, nil
			}
		}
		return nil, nil

	case typesystem.KindUnion:
		if fieldType.Union.ResolveType != nil {
			return fieldType.Union.ResolveType(result, info)
		}
		if ec.TypeResolver != nil {
			return ec.TypeResolver(result, info)
		}
		for _, candidate := range fieldType.Union.Members() {
			if candidate.IsTypeOf != nil && candidate.IsTypeOf(result, info) {
				return candidate, nil
			}
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("executor: %q is not a composite type", fieldType.String())
	}
}
