package payroll

import (
	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
)

// Deposit moves the given amount from the caller to the custody account.
// Any identity may deposit; topping up an organization's treasury is
// unprivileged by design. The ledger performs the pull transfer, so a
// missing allowance or balance surfaces as a transfer failure with zero
// effect.
func (t *Treasury) Deposit(caller treasury.Address, amount coin.Coin) error {
	if err := t.guard.enter("deposit"); err != nil {
		return err
	}
	defer t.guard.exit()

	if err := caller.Validate(); err != nil {
		return errors.Wrap(err, "caller")
	}
	if err := t.validAmount(amount); err != nil {
		return err
	}

	if err := t.ledger.MoveCoins(caller, t.custody, amount); err != nil {
		return errors.Wrapf(errors.ErrTransfer, "deposit: %s", err)
	}

	t.emitter.Emit(Deposited{
		Depositor: caller.Clone(),
		Amount:    amount,
	})
	return nil
}

// Balance returns the current holdings of the custody account in the
// managed token. The value is read from the ledger on every call and never
// cached, so it is identical to the ledger's own accounting.
func (t *Treasury) Balance() (coin.Coin, error) {
	holdings, err := t.ledger.Balance(t.custody)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "cannot acquire custody balance")
	}
	for _, c := range holdings {
		if c.Ticker == t.ticker {
			return *c, nil
		}
	}
	return coin.Coin{Ticker: t.ticker}, nil
}

// EmergencyWithdraw pushes funds from custody to the given recipient,
// outside of a regular disbursement. Admin only. An EmergencyWithdrawal
// fact is emitted on success.
func (t *Treasury) EmergencyWithdraw(caller, recipient treasury.Address, amount coin.Coin) error {
	if err := t.guard.enter("emergency withdraw"); err != nil {
		return err
	}
	defer t.guard.exit()

	if err := t.authorize(caller); err != nil {
		return err
	}
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(errors.ErrRecipient, err.Error())
	}
	if err := t.validAmount(amount); err != nil {
		return err
	}
	balance, err := t.Balance()
	if err != nil {
		return err
	}
	if !balance.IsGTE(amount) {
		return errors.Wrapf(errors.ErrInsufficientBalance, "withdraw %s of %s", amount, balance)
	}

	if err := t.ledger.MoveCoins(t.custody, recipient, amount); err != nil {
		return errors.Wrapf(errors.ErrTransfer, "withdraw: %s", err)
	}

	t.emitter.Emit(EmergencyWithdrawal{
		Admin:     caller.Clone(),
		Recipient: recipient.Clone(),
		Amount:    amount,
	})
	return nil
}

// validAmount requires a positive, well formed amount of the managed token.
func (t *Treasury) validAmount(amount coin.Coin) error {
	if amount.Ticker != t.ticker {
		return errors.Wrapf(errors.ErrCurrency, "got %q, treasury holds %q", amount.Ticker, t.ticker)
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(errors.ErrAmount, err.Error())
	}
	return nil
}
