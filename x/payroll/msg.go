package payroll

import (
	"fmt"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
)

// DisbursementMsg is the input of a batch disbursement. Recipients and
// Amounts are parallel lists: Recipients[i] is to be paid Amounts[i]. The
// message is ephemeral, it exists only for the duration of one call and is
// never partially applied.
type DisbursementMsg struct {
	Recipients []treasury.Address
	Amounts    []coin.Coin
	LinkageID  LinkageID
}

// Validate makes sure that this is sensible. Checks are ordered so that
// the first failure reported is the cheapest one to detect. The batch size
// cap is a treasury policy and is enforced by the engine, not here.
func (m *DisbursementMsg) Validate() error {
	if len(m.Recipients) != len(m.Amounts) {
		return errors.Wrapf(errors.ErrLengthMismatch, "%d recipients, %d amounts",
			len(m.Recipients), len(m.Amounts))
	}
	if len(m.Recipients) == 0 {
		return errors.Wrap(errors.ErrEmptyBatch, "no recipients")
	}

	var err error
	for i, amount := range m.Amounts {
		if !amount.IsPositive() {
			err = errors.AppendField(err, fmt.Sprintf("Amounts.%d", i), errors.ErrAmount.Newf("non-positive: %s", amount))
			continue
		}
		if e := amount.Validate(); e != nil {
			err = errors.AppendField(err, fmt.Sprintf("Amounts.%d", i), e)
		}
	}
	for i, recipient := range m.Recipients {
		if e := recipient.Validate(); e != nil {
			err = errors.AppendField(err, fmt.Sprintf("Recipients.%d", i), errors.Wrap(errors.ErrRecipient, e.Error()))
		}
	}
	err = errors.AppendField(err, "LinkageID", m.LinkageID.Validate())
	return err
}

// Total returns the checked sum of all amounts. Overflow is an error,
// never a silent wrap. The returned coin carries the common ticker of the
// batch; mixing currencies within one batch is an error.
func (m *DisbursementMsg) Total() (coin.Coin, error) {
	var total coin.Coin
	for i, amount := range m.Amounts {
		sum, err := total.Add(amount)
		if err != nil {
			return coin.Coin{}, errors.Wrapf(err, "amount %d", i)
		}
		total = sum
	}
	return total, nil
}
