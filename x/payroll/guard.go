package payroll

import (
	"sync/atomic"

	"github.com/paydeck/treasury/errors"
)

// callGuard is the mutual exclusion flag scoped to one treasury. Every
// operation that can trigger an external transfer, and the admin change,
// must enter the guard before doing any other work and exit it only after
// all external calls returned.
//
// The guard converts "checks, then external call, then effects" into an
// effectively atomic unit: if the ledger calls back into any guarded
// operation of the same treasury while a call is in flight, that inner call
// fails immediately. The check-and-set is atomic, so concurrent use from
// multiple goroutines degrades into the same deterministic failure instead
// of a race.
type callGuard struct {
	busy int32
}

func (g *callGuard) enter(op string) error {
	if !atomic.CompareAndSwapInt32(&g.busy, 0, 1) {
		return errors.Wrap(errors.ErrReentrantCall, op)
	}
	return nil
}

func (g *callGuard) exit() {
	atomic.StoreInt32(&g.busy, 0)
}
