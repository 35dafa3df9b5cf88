package payroll

import (
	"testing"

	"github.com/paydeck/treasury/errors"
)

func TestCallGuard(t *testing.T) {
	var g callGuard

	if err := g.enter("disburse"); err != nil {
		t.Fatalf("an idle guard must be enterable: %+v", err)
	}
	if err := g.enter("deposit"); !errors.ErrReentrantCall.Is(err) {
		t.Fatalf("want a reentrant call error, got %+v", err)
	}
	g.exit()
	if err := g.enter("deposit"); err != nil {
		t.Fatalf("an exited guard must be enterable again: %+v", err)
	}
}
