package hotkey

import "sync/atomic"

// SuppressionGuard disables phrase analysis while the engine is injecting
// synthetic keystrokes, so its own backspaces and characters are not
// re-interpreted as user typing. The counter is a depth, not a boolean:
// nested suppressed operations (erase, then delimiter replay) must compose.
type SuppressionGuard struct {
	depth atomic.Int32
}

// NewSuppressionGuard returns a guard with depth zero.
func NewSuppressionGuard() *SuppressionGuard {
	return &SuppressionGuard{}
}

// Run executes fn with the guard held. The depth is restored on every exit
// path, including errors and panics.
func (g *SuppressionGuard) Run(fn func() error) error {
	g.depth.Add(1)
	defer g.depth.Add(-1)
	return fn()
}

// Active reports whether any suppressed operation is in flight.
func (g *SuppressionGuard) Active() bool {
	return g.depth.Load() > 0
}

// Depth returns the current nesting depth.
func (g *SuppressionGuard) Depth() int {
	return int(g.depth.Load())
}
