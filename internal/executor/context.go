package executor

import (
	"fmt"
	"sync"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/coerce"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/incremental"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
	"github.com/wundergraph/graphql-core-engine/internal/xlog"
)

// ExecutionContext is confined to one execution task (§5 Shared
// state): the schema and document are read-only and may be shared
// across any number of concurrent executions, while Errors and Graph
// are mutated by the goroutines of this one execution: AddError takes
// errMu, and Graph takes its own lock internally.
type ExecutionContext struct {
	Schema         *typesystem.Schema
	Document       *ast.Document
	Operation      int // ref into Document.OperationDefinitions
	Fragments      map[string]int
	RootValue      interface{}
	VariableValues map[string]interface{}
	FieldResolver  typesystem.FieldResolveFn
	TypeResolver   typesystem.ResolveTypeFn

	Errors gqlerrors.List
	Graph  *incremental.Graph
	Logger xlog.Logger

	// SyncOnly forces a field resolver's Awaitable result to be reported
	// as an error instead of awaited (§5 "execute_sync raises an error
	// if any resolver returns a future"); set by ExecuteSync.
	SyncOnly bool

	// errMu guards Errors: sibling fields run on their own goroutines
	// and each may call AddError.
	errMu sync.Mutex
}

// AddError appends one error to the context's error list; the
// executor never stops at the first error (§4.7 step 8), it collects
// every one produced across the whole execution.
func (ec *ExecutionContext) AddError(err *gqlerrors.Error) {
	ec.errMu.Lock()
	defer ec.errMu.Unlock()
	ec.Errors = append(ec.Errors, err)
}

// buildExecutionContext implements §4.7 step 1: select the operation
// (by name, or the document's single operation), coerce its variables
// against the schema, and index every fragment definition by name.
func buildExecutionContext(
	schema *typesystem.Schema,
	doc *ast.Document,
	rootValue interface{},
	rawVariables map[string]interface{},
	operationName string,
	fieldResolver typesystem.FieldResolveFn,
	typeResolver typesystem.ResolveTypeFn,
) (*ExecutionContext, gqlerrors.List) {
	opRef, err := selectOperation(doc, operationName)
	if err != nil {
		return nil, gqlerrors.List{err}
	}
	op := doc.OperationDefinitions[opRef]

	variables, errs := coerce.CoerceVariableValues(schema, doc, op.VariableDefinitions, rawVariables, 0)
	if errs.HasErrors() {
		return nil, errs
	}

	if fieldResolver == nil {
		fieldResolver = typesystem.DefaultFieldResolver
	}

	ec := &ExecutionContext{
		Schema:         schema,
		Document:       doc,
		Operation:      opRef,
		Fragments:      doc.FragmentMap(),
		RootValue:      rootValue,
		VariableValues: variables,
		FieldResolver:  fieldResolver,
		TypeResolver:   typeResolver,
	}
	if documentUsesIncrementalDelivery(doc) {
		ec.Graph = incremental.NewGraph()
	}
	return ec, nil
}

// selectOperation finds the operation to run: the one matching name,
// or the document's only operation when name is empty. Validation's
// lone-anonymous-operation and unique-operation-names rules guarantee
// at most one sensible candidate reaches here in a valid document, but
// execute() may run against an unvalidated document too, so the same
// ambiguity/not-found errors validation would have raised are
// re-raised here.
func selectOperation(doc *ast.Document, name string) (int, *gqlerrors.Error) {
	var found []int
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition {
			continue
		}
		op := doc.OperationDefinitions[root.Ref]
		if name == "" || op.Name == name {
			found = append(found, root.Ref)
		}
	}
	switch {
	case len(found) == 0 && name != "":
		return 0, gqlerrors.New(fmt.Sprintf("Unknown operation named %q.", name))
	case len(found) == 0:
		return 0, gqlerrors.New("Must provide an operation.")
	case len(found) > 1 && name == "":
		return 0, gqlerrors.New("Must provide operation name if query contains multiple operations.")
	default:
		return found[0], nil
	}
}

// documentUsesIncrementalDelivery reports whether @defer or @stream
// appears anywhere in the document, the condition under which
// buildExecutionContext allocates an incremental.Graph (§4.7 step 1).
func documentUsesIncrementalDelivery(doc *ast.Document) bool {
	for i := range doc.Directives {
		name := doc.Directives[i].Name
		if name == "defer" || name == "stream" {
			return true
		}
	}
	return false
}

// rootObjectType returns the Object definition for the operation's
// root type (Query/Mutation/Subscription).
func rootObjectType(schema *typesystem.Schema, opType ast.OperationType) (*typesystem.Object, *gqlerrors.Error) {
	switch opType {
	case ast.OperationTypeQuery:
		if schema.Query == nil {
			return nil, gqlerrors.New("Schema does not define the query root type.")
		}
		return schema.Query, nil
	case ast.OperationTypeMutation:
		if schema.Mutation == nil {
			return nil, gqlerrors.New("Schema is not configured for mutations.")
		}
		return schema.Mutation, nil
	case ast.OperationTypeSubscription:
		if schema.Subscription == nil {
			return nil, gqlerrors.New("Schema is not configured for subscriptions.")
		}
		return schema.Subscription, nil
	default:
		return nil, gqlerrors.New("Unknown operation type.")
	}
}

func appendPath(path []gqlerrors.PathSegment, key string) []gqlerrors.PathSegment {
	out := make([]gqlerrors.PathSegment, len(path), len(path)+1)
	copy(out, path)
	return append(out, gqlerrors.StringSegment(key))
}

func appendIndex(path []gqlerrors.PathSegment, i int) []gqlerrors.PathSegment {
	out := make([]gqlerrors.PathSegment, len(path), len(path)+1)
	copy(out, path)
	return append(out, gqlerrors.IndexSegment(i))
}

func nodePositions(doc *ast.Document, fieldRefs []int) []gqlerrors.Location {
	var locs []gqlerrors.Location
	for _, ref := range fieldRefs {
		pos := doc.Fields[ref].Position
		if pos.HasPosition {
			locs = append(locs, gqlerrors.Location{Line: pos.Line, Column: pos.Column})
		}
	}
	return locs
}
