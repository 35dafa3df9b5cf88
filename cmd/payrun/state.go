package main

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
)

// treasuryState is the on-disk representation of a treasury and all ledger
// accounts it interacts with. It is a development format, not a custody
// backend: the file stands in for the external ledger so that payouts can
// be rehearsed locally.
type treasuryState struct {
	TreasuryID string             `json:"treasury_id"`
	Ticker     string             `json:"ticker"`
	Admin      treasury.Address   `json:"admin"`
	Accounts   map[string]account `json:"accounts"`
}

type account struct {
	Address treasury.Address `json:"address"`
	Coins   coin.Coins       `json:"coins"`
}

func loadState(path string) (*treasuryState, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", path)
	}
	var st treasuryState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %q", path)
	}
	if st.Accounts == nil {
		st.Accounts = make(map[string]account)
	}
	return &st, nil
}

func (st *treasuryState) save(path string) error {
	raw, err := json.MarshalIndent(st, "", "\t")
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}
	if err := ioutil.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "write %q", path)
	}
	return nil
}

// Ledger returns a treasury ledger view over the state accounts. Mutations
// are kept in memory until save is called.
func (st *treasuryState) Ledger() treasury.Ledger {
	return &stateLedger{accounts: st.Accounts}
}

// stateLedger implements the fungible ledger over the state file accounts.
type stateLedger struct {
	accounts map[string]account
}

var _ treasury.Ledger = (*stateLedger)(nil)

func (l *stateLedger) Balance(acct treasury.Address) (coin.Coins, error) {
	if err := acct.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	return l.accounts[acct.String()].Coins.Clone(), nil
}

func (l *stateLedger) MoveCoins(src, dest treasury.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non positive transfer %q", amount)
	}

	held := l.accounts[src.String()].Coins
	if !held.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%s holds %s", src, held)
	}
	newSrc, err := held.Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	newDest, err := l.accounts[dest.String()].Coins.Add(amount)
	if err != nil {
		return errors.Wrap(err, "destination")
	}

	l.accounts[src.String()] = account{Address: src.Clone(), Coins: newSrc}
	l.accounts[dest.String()] = account{Address: dest.Clone(), Coins: newDest}
	return nil
}

func stateExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
