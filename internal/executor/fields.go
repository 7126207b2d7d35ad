package executor

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/coerce"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// executeFields implements §4.7 step 4: resolve every field group
// against sourceValue and assemble the response object; deferred
// selections are run separately by processDeferredSelections. Query and
// subscription root/nested selections resolve concurrently since
// sibling fields are independent (§5 "Concurrency: field resolvers run
// concurrently unless the operation is a mutation"); serial=true forces
// one-at-a-time evaluation, used for a mutation's top-level fields.
// executeFields returns errNullBubble (alongside a nil map) when any
// one of groups completed a NonNull field as null, per §4.7 step 5 /
// §8 property 6: the violation nulls the nearest nullable ancestor,
// which here is this whole selection set's object, not just the one
// response key that produced it. completeCompositeValue in turn nulls
// its own object and returns the same error to its caller;
// processDeferredSelections nulls only the deferred fragment's data, and
// Execute nulls the whole data map.
func executeFields(
	ctx context.Context,
	ec *ExecutionContext,
	parentType *typesystem.Object,
	sourceValue interface{},
	path []gqlerrors.PathSegment,
	groups []*fieldGroup,
	serial bool,
) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(groups))
	if serial {
		for _, g := range groups {
			key, val, err := executeFieldGroup(ctx, ec, parentType, sourceValue, path, g)
			if err != nil {
				return nil, err
			}
			result[key] = val
		}
		return result, nil
	}

	var mu sync.Mutex
	var bubbled error
	g, gctx := errgroup.WithContext(ctx)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			key, val, err := executeFieldGroup(gctx, ec, parentType, sourceValue, path, group)
			mu.Lock()
			if err != nil {
				bubbled = err
			} else {
				result[key] = val
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // executeFieldGroup reports failures via ec.AddError/the bubbled return, never via g.Go's own error
	if bubbled != nil {
		return nil, bubbled
	}
	return result, nil
}

// executeFieldGroup implements §4.7 step 4 for one response key: build
// the ResolveInfo, coerce arguments, invoke the resolver (via the
// registered middleware chain, if any), await a pending result, and
// complete the returned value against the field's declared type. A
// non-nil returned error is always errNullBubble: the field's own type
// was NonNull and something along the way (a resolver error, a pending
// Awaitable under ExecuteSync, or completeValue's own recursion)
// produced null for it, so the caller must null its enclosing object
// instead of recording this one key (§4.7 step 5, §8 property 6).
func executeFieldGroup(
	ctx context.Context,
	ec *ExecutionContext,
	parentType *typesystem.Object,
	sourceValue interface{},
	path []gqlerrors.PathSegment,
	group *fieldGroup,
) (string, interface{}, error) {
	doc := ec.Document
	firstRef := group.fieldRefs[0]
	field := doc.Fields[firstRef]
	fieldPath := appendPath(path, group.responseKey)

	if field.Name == "__typename" {
		return group.responseKey, parentType.Name, nil
	}

	def, ok := parentType.Fields().Lookup(field.Name)
	if !ok {
		// Validation (fieldsOnCorrectType) should have caught this on a
		// validated document; an unvalidated execute() call reports it
		// as a field error instead of panicking.
		err := gqlerrors.New(fmt.Sprintf("Cannot query field %q on type %q.", field.Name, parentType.Name)).
			WithLocations(nodePositions(doc, group.fieldRefs)...).
			WithPath(fieldPath)
		ec.AddError(err)
		return group.responseKey, nil, nil
	}

	args, errs := coerce.CoerceArgumentValues(def.Args, doc, field.Arguments, ec.VariableValues)
	if errs.HasErrors() {
		for _, e := range errs {
			e.WithPath(fieldPath)
			ec.AddError(e)
		}
		if def.Type.IsNonNull() {
			return group.responseKey, nil, errNullBubble
		}
		return group.responseKey, nil, nil
	}

	info := typesystem.ResolveInfo{
		FieldName:      field.Name,
		Path:           fieldPath,
		FieldNodes:     group.fieldRefs,
		ReturnType:     def.Type,
		ParentType:     parentType,
		Schema:         ec.Schema,
		Document:       doc,
		Fragments:      ec.Fragments,
		RootValue:      ec.RootValue,
		ContextValue:   ctx,
		VariableValues: ec.VariableValues,
		Operation:      ec.Operation,
	}

	resolve := def.Resolve
	if resolve == nil {
		resolve = ec.FieldResolver
	}

	raw, err := resolve(ctx, sourceValue, args, info)
	if err != nil {
		ec.AddError(gqlerrors.LocatedError(err, nodePositions(doc, group.fieldRefs), fieldPath))
		if def.Type.IsNonNull() {
			return group.responseKey, nil, errNullBubble
		}
		return group.responseKey, nil, nil
	}
	if a, ok := raw.(Awaitable); ok {
		if ec.SyncOnly {
			syncErr := gqlerrors.New(fmt.Sprintf("Resolver for field %q returned a pending value; execute_sync requires every resolver to settle synchronously.", field.Name)).
				WithLocations(nodePositions(doc, group.fieldRefs)...).
				WithPath(fieldPath)
			ec.AddError(syncErr)
			if def.Type.IsNonNull() {
				return group.responseKey, nil, errNullBubble
			}
			return group.responseKey, nil, nil
		}
		raw, err = a.Await(ctx)
		if err != nil {
			ec.AddError(gqlerrors.LocatedError(err, nodePositions(doc, group.fieldRefs), fieldPath))
			if def.Type.IsNonNull() {
				return group.responseKey, nil, errNullBubble
			}
			return group.responseKey, nil, nil
		}
	}

	completed, err := completeValue(ctx, ec, def.Type, field, group.fieldRefs, fieldPath, raw)
	if err != nil {
		return group.responseKey, nil, err
	}
	return group.responseKey, completed, nil
}
