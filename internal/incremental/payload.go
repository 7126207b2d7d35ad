package incremental

import (
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
)

// Payload is one subsequent response in an incremental delivery
// sequence (§6 External Interfaces): a batch of DeferItem/StreamItem
// entries, each naming the response path it grafts onto, plus whether
// the client should expect more payloads after this one.
type Payload struct {
	Incremental []IncrementalItem `json:"incremental,omitempty"`
	HasNext     bool              `json:"hasNext"`
}

// IncrementalItem is a DeferItem when Data is set, or a StreamItem
// when Items is set -- exactly one of the two per spec.
type IncrementalItem struct {
	ID     string                   `json:"id,omitempty"`
	Path   []gqlerrors.PathSegment  `json:"path,omitempty"`
	Label  string                   `json:"label,omitempty"`
	Data   map[string]interface{}   `json:"data,omitempty"`
	Items  []interface{}            `json:"items,omitempty"`
	Errors gqlerrors.List           `json:"errors,omitempty"`
}

// BuildPayload drains the graph's completed results and new-pending
// records into one Payload, per the emission loop in §4.8: completed
// deferred-fragment results whose parent has already been delivered
// become DeferItems, completed stream batches become StreamItems (or
// are dropped if the stream terminated with no items and no error),
// and every record promoted to pending since the last payload gets an
// id so later payloads can address it without repeating its path.
func BuildPayload(graph *Graph) Payload {
	graph.GetNewPending() // assigns ids to newly pending records as a side effect

	var items []IncrementalItem
	for _, res := range graph.CompletedResults() {
		switch r := res.(type) {
		case *DeferredGroupedFieldSetResult:
			for _, fragment := range r.DeferredFragmentRecords {
				reconciled := graph.CompleteDeferredFragment(fragment)
				if reconciled == nil {
					continue
				}
				for _, rr := range reconciled {
					items = append(items, IncrementalItem{
						ID:     fragment.ID,
						Path:   rr.Path,
						Label:  fragment.Label,
						Errors: rr.Errors,
						Data:   rr.Data,
					})
				}
			}
		case *StreamItemsResult:
			if r.Terminated {
				graph.RemovePending(r.Record)
				if len(r.Errors) == 0 {
					continue
				}
			}
			items = append(items, IncrementalItem{
				ID:     r.Record.ID,
				Path:   r.Record.Path,
				Label:  r.Record.Label,
				Items:  r.Items,
				Errors: r.Errors,
			})
		}
	}

	return Payload{Incremental: items, HasNext: graph.HasNext()}
}
