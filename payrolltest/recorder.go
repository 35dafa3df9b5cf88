package payrolltest

import (
	"github.com/paydeck/treasury"
)

// Recorder is a treasury.Emitter capturing all facts in order of emission.
type Recorder struct {
	Events []treasury.Event
}

var _ treasury.Emitter = (*Recorder)(nil)

func (r *Recorder) Emit(e treasury.Event) {
	r.Events = append(r.Events, e)
}

// Latest returns the most recently emitted fact or nil.
func (r *Recorder) Latest() treasury.Event {
	if len(r.Events) == 0 {
		return nil
	}
	return r.Events[len(r.Events)-1]
}

// OfType returns all captured facts of the given type.
func (r *Recorder) OfType(eventType string) []treasury.Event {
	var res []treasury.Event
	for _, e := range r.Events {
		if e.EventType() == eventType {
			res = append(res, e)
		}
	}
	return res
}
