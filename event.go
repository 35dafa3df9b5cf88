package treasury

// Event is an audit fact describing a fully committed state change. Facts
// are the only channel through which external systems reconcile their
// metadata with custody state. They are emitted after all effects of an
// operation are applied, and never for a failed call.
type Event interface {
	// EventType returns a stable name identifying the kind of the fact.
	EventType() string
}

// Emitter receives audit facts. Implementations must not fail; delivery of
// facts is an environment concern, not an engine concern.
type Emitter interface {
	Emit(Event)
}

// NopEmitter discards all facts. It is the default when no emitter is
// configured.
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}
