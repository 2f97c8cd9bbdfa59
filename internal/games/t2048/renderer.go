package t2048

// Renderer consumes snapshots. It must treat them as read-only and never
// call back into the session from Actuate.
type Renderer interface {
	Actuate(snap Snapshot)
}

// Restarter is implemented by renderers that keep terminal-state UI (a
// win/lose message) which must be cleared when the session restarts.
type Restarter interface {
	Restart()
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(snap Snapshot)

// Actuate calls f(snap).
func (f RendererFunc) Actuate(snap Snapshot) {
	f(snap)
}

// MultiRenderer fans snapshots out to several renderers in order.
type MultiRenderer []Renderer

// Actuate hands snap to every renderer.
func (m MultiRenderer) Actuate(snap Snapshot) {
	for _, r := range m {
		r.Actuate(snap)
	}
}

// Restart notifies every renderer that implements Restarter.
func (m MultiRenderer) Restart() {
	for _, r := range m {
		if rs, ok := r.(Restarter); ok {
			rs.Restart()
		}
	}
}
