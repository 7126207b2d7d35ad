package incremental

import (
	"sync"

	"github.com/google/uuid"
)

// completedResult is either a *DeferredGroupedFieldSetResult or a
// *StreamItemsResult, queued for the next payload.
type completedResult interface{}

// Graph is the executor's bookkeeping for every `@defer`/`@stream`
// record across one operation's lifetime: `pending` tracks records a
// client has already been told to expect, `newPending` holds records
// discovered during the current tick awaiting the next payload, and
// `completedQueue` is the FIFO of results ready to emit (§4.8). A Graph
// is confined to the one ExecutionContext that owns it; it is not
// safe to share across executions, only across the goroutines of a
// single one (hence the mutex).
type Graph struct {
	mu             sync.Mutex
	pending        map[SubsequentResultRecord]bool
	newPending     map[SubsequentResultRecord]bool
	completedQueue []completedResult
}

func NewGraph() *Graph {
	return &Graph{
		pending:    map[SubsequentResultRecord]bool{},
		newPending: map[SubsequentResultRecord]bool{},
	}
}

// AddDeferredFragment registers fragment (and its ancestor chain) as
// pending, incrementing the fragment's own expected-result count, then
// enqueues result as completed for it.
func (g *Graph) AddDeferredFragment(fragment *DeferredFragmentRecord, result *DeferredGroupedFieldSetResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fragment.ExpectedReconcilableResults++
	g.addDeferredFragmentRecord(fragment)

	fragment.ReconcilableResults = append(fragment.ReconcilableResults, result)
	g.completedQueue = append(g.completedQueue, result)
}

func (g *Graph) addDeferredFragmentRecord(fragment *DeferredFragmentRecord) {
	parent := fragment.Parent
	if parent == nil {
		if fragment.ID != "" {
			return
		}
		g.newPending[fragment] = true
		return
	}
	if parent.Children[fragment] {
		return
	}
	parent.Children[fragment] = true
	g.addDeferredFragmentRecord(parent)
}

// AddStreamItems registers a stream record's next batch as completed,
// marking the record pending on its first batch.
func (g *Graph) AddStreamItems(stream *StreamItemsRecord, result *StreamItemsResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if stream.ID == "" {
		g.newPending[stream] = true
	}
	g.completedQueue = append(g.completedQueue, result)
}

// GetNewPending flushes newPending into pending, assigning each record
// a fresh id, and returns the records a payload needs to announce.
// A deferred fragment that expects no grouped field-set result of its
// own is skipped in favor of its children -- there is nothing to
// deliver at that node.
func (g *Graph) GetNewPending() []SubsequentResultRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []SubsequentResultRecord
	for record := range g.newPending {
		g.addNonEmptyNewPending(record, &out)
	}
	g.newPending = map[SubsequentResultRecord]bool{}
	for _, r := range out {
		assignRecordID(r)
		g.pending[r] = true
	}
	return out
}

func (g *Graph) addNonEmptyNewPending(record SubsequentResultRecord, out *[]SubsequentResultRecord) {
	if fragment, ok := record.(*DeferredFragmentRecord); ok {
		if fragment.ExpectedReconcilableResults > 0 {
			*out = append(*out, fragment)
			return
		}
		for child := range fragment.Children {
			g.addNonEmptyNewPending(child, out)
		}
		return
	}
	*out = append(*out, record)
}

func assignRecordID(r SubsequentResultRecord) {
	switch v := r.(type) {
	case *DeferredFragmentRecord:
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
	case *StreamItemsRecord:
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
	}
}

// CompletedResults drains and returns every result queued since the
// last call.
func (g *Graph) CompletedResults() []completedResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.completedQueue
	g.completedQueue = nil
	return out
}

// HasNext reports whether any record is still outstanding -- pending,
// or discovered and not yet announced -- the `hasNext` flag on the
// last payload sent.
func (g *Graph) HasNext() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending) > 0 || len(g.newPending) > 0
}

// CompleteDeferredFragment reconciles fragment if ready, removing it
// from pending and promoting its children to newPending; it returns
// nil if fragment is not yet ready (some expected result is still
// outstanding).
func (g *Graph) CompleteDeferredFragment(fragment *DeferredFragmentRecord) []*DeferredGroupedFieldSetResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !fragment.Ready() {
		return nil
	}
	delete(g.pending, fragment)
	for child := range fragment.Children {
		g.newPending[child] = true
	}
	return fragment.ReconcilableResults
}

// RemovePending drops record from pending without promoting anything
// -- used when a stream record terminates.
func (g *Graph) RemovePending(record SubsequentResultRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, record)
}
