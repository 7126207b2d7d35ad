package astvisitor

// ParallelVisitor fans the same Walk out to several independent rule
// visitors in one traversal pass. Walker already dispatches to every
// registered visitor per node kind and lets a visitor opt out early via
// Stop, so ParallelVisitor here is a thin convenience constructor kept
// for API parity with callers that think in terms of "run these rules
// together" rather than "register these rules on a Walker" -- it does
// not add any traversal logic of its own.
type ParallelVisitor struct {
	walker   *Walker
	visitors []interface{}
}

// NewParallelVisitor registers every visitor on walker via RegisterAll
// and returns a handle that can later Stop them all at once (e.g. when
// a calling rule decides the remaining rules' results no longer
// matter).
func NewParallelVisitor(walker *Walker, visitors ...interface{}) *ParallelVisitor {
	for _, v := range visitors {
		walker.RegisterAll(v)
	}
	return &ParallelVisitor{walker: walker, visitors: visitors}
}

// StopAll stops dispatch to every visitor in this group for the
// remainder of the current walk.
func (p *ParallelVisitor) StopAll() {
	for _, v := range p.visitors {
		p.walker.Stop(v)
	}
}
