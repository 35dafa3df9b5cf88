package payroll

import (
	"time"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
)

// TreasuryOptions carries the optional collaborators of a treasury. The
// zero value selects a derived custody address, the default configuration,
// no fact emitter and the wall clock.
type TreasuryOptions struct {
	// Custody overrides the derived custody account address.
	Custody treasury.Address

	// Configuration overrides the default policy knobs.
	Configuration *Configuration

	// Emitter receives the audit facts. Defaults to discarding them.
	Emitter treasury.Emitter

	// Now is the clock used for the completion timestamp of emitted
	// facts. Defaults to time.Now.
	Now func() time.Time
}

// Treasury is the controller guarding one organization's payroll funds.
//
// The caller identity is threaded explicitly through every operation; the
// engine holds no ambient caller context. The only mutable state owned by
// the controller is the admin identity. Balances live on the ledger.
type Treasury struct {
	ledger  treasury.Ledger
	emitter treasury.Emitter
	conf    Configuration
	now     func() time.Time

	// ticker and custody are fixed at creation time.
	ticker  string
	custody treasury.Address

	admin treasury.Address
	// adminVersion counts admin replacements, starting at 1.
	adminVersion uint64

	guard callGuard
}

// NewTreasury initializes custody for the organization identified by
// treasuryID. The admin identity must be a valid address and the ticker a
// valid currency code. A TreasuryCreated fact is emitted on success.
func NewTreasury(ledger treasury.Ledger, treasuryID []byte, admin treasury.Address, ticker string, opts *TreasuryOptions) (*Treasury, error) {
	if ledger == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil ledger")
	}
	if err := admin.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidAdmin, err.Error())
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker: %q", ticker)
	}

	t := Treasury{
		ledger:       ledger,
		emitter:      treasury.NopEmitter{},
		conf:         DefaultConfiguration(),
		now:          time.Now,
		ticker:       ticker,
		custody:      CustodyAccount(treasuryID),
		admin:        admin.Clone(),
		adminVersion: 1,
	}

	if opts != nil {
		if opts.Custody != nil {
			if err := opts.Custody.Validate(); err != nil {
				return nil, errors.Wrap(err, "custody")
			}
			t.custody = opts.Custody.Clone()
		}
		if opts.Configuration != nil {
			if err := opts.Configuration.Validate(); err != nil {
				return nil, errors.Wrap(err, "configuration")
			}
			t.conf = *opts.Configuration
		}
		if opts.Emitter != nil {
			t.emitter = opts.Emitter
		}
		if opts.Now != nil {
			t.now = opts.Now
		}
	}

	t.emitter.Emit(TreasuryCreated{
		Admin:   t.admin.Clone(),
		Custody: t.custody.Clone(),
		Ticker:  t.ticker,
	})
	return &t, nil
}

// Admin returns the current administrative identity. Pure read.
func (t *Treasury) Admin() treasury.Address {
	return t.admin.Clone()
}

// AdminVersion returns how many times the administrative identity was
// assigned, the initial assignment included.
func (t *Treasury) AdminVersion() uint64 {
	return t.adminVersion
}

// Custody returns the address holding this treasury's funds.
func (t *Treasury) Custody() treasury.Address {
	return t.custody.Clone()
}

// Ticker returns the currency code of the managed token.
func (t *Treasury) Ticker() string {
	return t.ticker
}

// SetAdmin atomically replaces the administrative identity. Only the
// current admin can do this and the replacement must not be the null
// identifier. An AdminChanged fact is emitted on success.
func (t *Treasury) SetAdmin(caller, newAdmin treasury.Address) error {
	if err := t.guard.enter("set admin"); err != nil {
		return err
	}
	defer t.guard.exit()

	if err := t.authorize(caller); err != nil {
		return err
	}
	if err := newAdmin.Validate(); err != nil {
		return errors.Wrap(errors.ErrInvalidAdmin, err.Error())
	}

	previous := t.admin
	t.admin = newAdmin.Clone()
	t.adminVersion++

	t.emitter.Emit(AdminChanged{
		Previous: previous,
		New:      t.admin.Clone(),
	})
	return nil
}

// authorize fails unless the caller is the current admin at call time.
func (t *Treasury) authorize(caller treasury.Address) error {
	if !t.admin.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "caller %s", caller)
	}
	return nil
}
