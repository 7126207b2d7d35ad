// Package operationreport accumulates parser/validation errors during a
// single parse or validate pass, the way the teacher's
// asttransform.MergeDefinitionWithBaseSchema and
// plan.FilterDataSources thread a *operationreport.Report through a
// walk and check report.HasErrors() once it completes.
package operationreport

import (
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
)

// Report collects both "external" errors (GraphQL-shaped, safe to
// return to a client: syntax/validation errors) and "internal" errors
// (programming violations that should never reach a client, logged and
// surfaced as InternalError per §7).
type Report struct {
	ExternalErrors []*gqlerrors.Error
	InternalErrors []error
}

// AddExternalError records a client-visible error.
func (r *Report) AddExternalError(err *gqlerrors.Error) {
	r.ExternalErrors = append(r.ExternalErrors, err)
}

// AddInternalError records a programming-violation error.
func (r *Report) AddInternalError(err error) {
	r.InternalErrors = append(r.InternalErrors, err)
}

// HasErrors reports whether any error, external or internal, was
// recorded.
func (r *Report) HasErrors() bool {
	return len(r.ExternalErrors) > 0 || len(r.InternalErrors) > 0
}

// Reset clears the report for reuse across multiple parses, avoiding a
// fresh allocation per call the way the teacher reuses a Report value
// across FilterDataSources retries.
func (r *Report) Reset() {
	r.ExternalErrors = r.ExternalErrors[:0]
	r.InternalErrors = r.InternalErrors[:0]
}

// Error implements the error interface so a *Report can be returned
// directly wherever an error is expected (mirrors the teacher's Report
// satisfying `error` in asttransform.MergeDefinitionWithBaseSchema).
func (r *Report) Error() string {
	errs := gqlerrors.List(r.ExternalErrors)
	if len(r.InternalErrors) > 0 && len(errs) == 0 {
		return r.InternalErrors[0].Error()
	}
	return errs.Error()
}
