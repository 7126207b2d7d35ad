// Package incremental implements the incremental delivery graph (C9):
// bookkeeping for `@defer`/`@stream` payloads once the executor starts
// emitting more than one response for a single operation (§4.8).
package incremental

import (
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
)

// SubsequentResultRecord is either a *DeferredFragmentRecord or a
// *StreamItemsRecord -- the two kinds of work the Graph tracks as
// `pending` (§4.8).
type SubsequentResultRecord interface {
	isSubsequentResultRecord()
}

// DeferredGroupedFieldSetResult is the outcome of executing one
// deferred fragment's (or group of co-located deferred fragments')
// selection set: the data to graft at Path, plus any errors raised
// while producing it.
type DeferredGroupedFieldSetResult struct {
	Path                    []gqlerrors.PathSegment
	Data                    map[string]interface{}
	Errors                  gqlerrors.List
	DeferredFragmentRecords []*DeferredFragmentRecord
}

// DeferredFragmentRecord tracks one `@defer`'d fragment (or inline
// fragment): its response path, optional label, parent record (nil at
// the top), children discovered once this fragment's own selection set
// is executed, and how many deferred grouped-field-set results must
// reconcile before it is ready to emit (§4.8).
type DeferredFragmentRecord struct {
	Path                        []gqlerrors.PathSegment
	Label                       string
	Parent                      *DeferredFragmentRecord
	Children                    map[*DeferredFragmentRecord]bool
	ExpectedReconcilableResults int
	ReconcilableResults         []*DeferredGroupedFieldSetResult
	ID                          string
}

func NewDeferredFragmentRecord(path []gqlerrors.PathSegment, label string, parent *DeferredFragmentRecord) *DeferredFragmentRecord {
	return &DeferredFragmentRecord{Path: path, Label: label, Parent: parent, Children: map[*DeferredFragmentRecord]bool{}}
}

func (*DeferredFragmentRecord) isSubsequentResultRecord() {}

// Ready reports whether every deferred grouped-field-set result this
// fragment expects has reconciled.
func (r *DeferredFragmentRecord) Ready() bool {
	return r.ExpectedReconcilableResults == len(r.ReconcilableResults)
}

// StreamItemsResult is the outcome of one batch of `@stream` items: a
// nil Items with Terminated true means the source stream ended; a
// non-nil Errors means the batch itself failed (the stream record is
// then removed from `pending`, not retried).
type StreamItemsResult struct {
	Record     *StreamItemsRecord
	Items      []interface{}
	Errors     gqlerrors.List
	Terminated bool
}

// StreamItemsRecord tracks one `@stream`'d list field's subsequent
// batches (§4.8); ID is assigned on first emission so later payloads
// can reference it without repeating Path.
type StreamItemsRecord struct {
	Path  []gqlerrors.PathSegment
	Label string
	ID    string
}

func NewStreamItemsRecord(path []gqlerrors.PathSegment, label string) *StreamItemsRecord {
	return &StreamItemsRecord{Path: path, Label: label}
}

func (*StreamItemsRecord) isSubsequentResultRecord() {}
