package executor

import (
	"context"
	"fmt"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/coerce"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// SourceEventStream is what a subscription root field's Subscribe hook
// returns: an async sequence of source events, each of which re-enters
// the standard executor as the new root value (§4.7 step 7). Events
// must be closed by the producer; Subscribe stops reading once ctx is
// done or Events() closes.
type SourceEventStream interface {
	Events() <-chan interface{}
}

// NewSourceEventStream wraps an existing channel as a SourceEventStream,
// for Subscribe hooks that already produce one.
func NewSourceEventStream(events <-chan interface{}) SourceEventStream {
	return chanEventStreamAdapter{events}
}

type chanEventStreamAdapter struct{ ch <-chan interface{} }

func (a chanEventStreamAdapter) Events() <-chan interface{} { return a.ch }

// Subscribe implements §4.7 step 7: resolve the subscription operation's
// single root field's `subscribe` hook to a SourceEventStream, then for
// every event it yields, run the standard field-collection/execution
// algorithm with the event as RootValue, emitting one Result per event.
// The returned channel closes when the source stream closes or ctx is
// cancelled.
func Subscribe(ctx context.Context, params Params) (<-chan *Result, error) {
	ec, errs := buildExecutionContext(
		params.Schema, params.Document, params.RootValue, params.VariableValues,
		params.OperationName, wrapResolver(params.FieldResolver, params.Middleware), params.TypeResolver,
	)
	if errs != nil {
		return nil, errs
	}

	op := ec.Document.OperationDefinitions[ec.Operation]
	if op.OperationType != ast.OperationTypeSubscription {
		return nil, fmt.Errorf("executor: Subscribe requires a subscription operation")
	}

	rootType, rootErr := rootObjectType(ec.Schema, op.OperationType)
	if rootErr != nil {
		return nil, rootErr
	}

	groups, _ := collectFields(ec, rootType.Name, op.SelectionSet, map[string]bool{})
	if len(groups) != 1 {
		return nil, fmt.Errorf("executor: subscription operations must select exactly one root field")
	}
	group := groups[0]
	field := ec.Document.Fields[group.fieldRefs[0]]

	def, ok := rootType.Fields().Lookup(field.Name)
	if !ok {
		return nil, fmt.Errorf("executor: unknown subscription field %q", field.Name)
	}
	subscribeFn := def.Subscribe
	if subscribeFn == nil {
		subscribeFn = def.Resolve
	}
	if subscribeFn == nil {
		return nil, fmt.Errorf("executor: subscription field %q has no subscribe resolver", field.Name)
	}

	args, argErrs := coerceSubscriptionArgs(ec, def, field)
	if argErrs.HasErrors() {
		return nil, argErrs
	}

	raw, err := subscribeFn(ctx, ec.RootValue, args, buildSubscribeInfo(ec, rootType, field, group))
	if err != nil {
		return nil, err
	}
	stream, ok := raw.(SourceEventStream)
	if !ok {
		return nil, fmt.Errorf("executor: subscribe resolver for %q did not return a SourceEventStream", field.Name)
	}

	out := make(chan *Result)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, open := <-stream.Events():
				if !open {
					return
				}
				result := ExecuteSync(ctx, Params{
					Schema:         params.Schema,
					Document:       params.Document,
					RootValue:      event,
					VariableValues: params.VariableValues,
					OperationName:  params.OperationName,
					FieldResolver:  params.FieldResolver,
					TypeResolver:   params.TypeResolver,
					Middleware:     params.Middleware,
				})
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// coerceSubscriptionArgs coerces the single root field's arguments,
// matching the argument-coercion half of §4.7 step 4.
func coerceSubscriptionArgs(ec *ExecutionContext, def *typesystem.Field, field ast.Field) (map[string]interface{}, gqlerrors.List) {
	return coerce.CoerceArgumentValues(def.Args, ec.Document, field.Arguments, ec.VariableValues)
}

// buildSubscribeInfo builds the `info` argument passed to the
// subscribe hook, matching executeFieldGroup's ResolveInfo construction.
func buildSubscribeInfo(ec *ExecutionContext, rootType *typesystem.Object, field ast.Field, group *fieldGroup) typesystem.ResolveInfo {
	def, _ := rootType.Fields().Lookup(field.Name)
	path := appendPath(nil, group.responseKey)
	return typesystem.ResolveInfo{
		FieldName:      field.Name,
		Path:           path,
		FieldNodes:     group.fieldRefs,
		ReturnType:     def.Type,
		ParentType:     rootType,
		Schema:         ec.Schema,
		Document:       ec.Document,
		Fragments:      ec.Fragments,
		RootValue:      ec.RootValue,
		VariableValues: ec.VariableValues,
		Operation:      ec.Operation,
	}
}
