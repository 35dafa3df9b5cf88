package payrolltest

import (
	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
)

// Ledger is an in-memory fungible ledger. It keeps holdings per account
// and refuses any transfer that would overdraw the source, mirroring the
// contract of a real token ledger: a move either fully applies or has no
// effect.
//
// The zero value is ready to use.
type Ledger struct {
	holdings map[string]coin.Coins

	// MoveHook, when set, is called before every transfer is applied.
	// Returning an error refuses the transfer. Tests use this to inject
	// ledger policy failures (frozen account, missing allowance) or to
	// call back into the engine to exercise the reentrancy guard.
	MoveHook func(src, dest treasury.Address, amount coin.Coin) error

	// Moves counts all successfully applied transfers.
	Moves int
}

var _ treasury.Ledger = (*Ledger)(nil)

// SetBalance overwrites all holdings of the given account.
func (l *Ledger) SetBalance(acct treasury.Address, cs ...coin.Coin) error {
	normalized, err := coin.CombineCoins(cs...)
	if err != nil {
		return err
	}
	if l.holdings == nil {
		l.holdings = make(map[string]coin.Coins)
	}
	l.holdings[string(acct)] = normalized
	return nil
}

// Balance implements the treasury.Ledger interface. A missing account has
// empty holdings.
func (l *Ledger) Balance(acct treasury.Address) (coin.Coins, error) {
	return l.holdings[string(acct)].Clone(), nil
}

// MoveCoins implements the treasury.Ledger interface.
func (l *Ledger) MoveCoins(src, dest treasury.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive: %s", amount)
	}
	if l.MoveHook != nil {
		if err := l.MoveHook(src, dest, amount); err != nil {
			return err
		}
	}

	from := l.holdings[string(src)]
	if !from.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%s holds %v", src, from)
	}

	from, err := from.Subtract(amount)
	if err != nil {
		return err
	}
	to, err := l.holdings[string(dest)].Add(amount)
	if err != nil {
		return err
	}

	if l.holdings == nil {
		l.holdings = make(map[string]coin.Coins)
	}
	l.holdings[string(src)] = from
	l.holdings[string(dest)] = to
	l.Moves++
	return nil
}

// Holds returns true if the account holds exactly the given amount of the
// amount's currency.
func (l *Ledger) Holds(acct treasury.Address, amount coin.Coin) bool {
	for _, c := range l.holdings[string(acct)] {
		if c.Ticker == amount.Ticker {
			return c.Equals(amount)
		}
	}
	return amount.IsZero()
}
