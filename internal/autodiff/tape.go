package autodiff

import "github.com/recur-ml/recur/internal/autodiff/ops"

// MemorizeOperationSequence enables or disables recording of backward records.
// It has no other side effects; already recorded entries are kept.
func (g *Graph) MemorizeOperationSequence(memorize bool) {
	g.recording = memorize
}

// IsMemorizingSequence reports whether operations are currently recorded.
func (g *Graph) IsMemorizingSequence() bool {
	return g.recording
}

// ForgetCurrentSequence drops every recorded entry. Recording state is preserved.
func (g *Graph) ForgetCurrentSequence() {
	clear(g.stack) // release captured matrices
	g.stack = g.stack[:0]
}

// Len returns the number of recorded backward records.
func (g *Graph) Len() int {
	return len(g.stack)
}

// Backward replays every recorded operation in last-in-first-out order and
// leaves the stack empty.
//
// LIFO order guarantees that when a record runs, every consumer of its result
// (all recorded later) has already accumulated into the result's gradient.
// The caller seeds the gradient of the final output before calling Backward.
func (g *Graph) Backward() {
	for i := len(g.stack) - 1; i >= 0; i-- {
		op := g.stack[i]
		g.stack[i] = nil
		op.Backward()
	}
	g.stack = g.stack[:0]
}

// record appends op when recording is enabled.
func (g *Graph) record(op ops.Operation) {
	if g.recording {
		g.stack = append(g.stack, op)
	}
}
