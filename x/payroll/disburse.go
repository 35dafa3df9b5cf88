package payroll

import (
	"time"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
)

// DisbursementRecord is the audit fact of one fully completed batch
// payment. It is produced only on success; a failed attempt leaves no
// record.
type DisbursementRecord struct {
	LinkageID      LinkageID
	Total          coin.Coin
	RecipientCount int
	ExecutedAt     time.Time
}

// Disburse validates the batch and pays every recipient in list order.
// Either all recipients are paid and exactly one record is returned, or
// the custody balance is left untouched.
//
// Validation is fail-fast and has no side effects. Execution pays through
// the ledger one recipient at a time; if any transfer is refused, all
// prior transfers of this call are reversed before returning, so no
// partial payment is ever observable. Should a reversal itself be refused
// the engine fails with an invalid state error - this cannot happen with a
// ledger that honors its own transfer contract, because the reversal moves
// back an amount that was just moved out.
func (t *Treasury) Disburse(caller treasury.Address, msg *DisbursementMsg) (*DisbursementRecord, error) {
	if err := t.guard.enter("disburse"); err != nil {
		return nil, err
	}
	defer t.guard.exit()

	if msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil message")
	}
	if err := t.authorize(caller); err != nil {
		return nil, err
	}
	switch n := len(msg.Recipients); {
	case n != len(msg.Amounts):
		return nil, errors.Wrapf(errors.ErrLengthMismatch, "%d recipients, %d amounts",
			n, len(msg.Amounts))
	case n == 0:
		return nil, errors.Wrap(errors.ErrEmptyBatch, "no recipients")
	case n > t.conf.MaxBatchSize:
		return nil, errors.Wrapf(errors.ErrBatchTooLarge, "%d recipients, %d allowed",
			n, t.conf.MaxBatchSize)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	total, err := msg.Total()
	if err != nil {
		return nil, err
	}
	if total.Ticker != t.ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "batch pays %q, treasury holds %q",
			total.Ticker, t.ticker)
	}
	balance, err := t.Balance()
	if err != nil {
		return nil, err
	}
	if !balance.IsGTE(total) {
		return nil, errors.Wrapf(errors.ErrInsufficientBalance, "batch total %s of %s",
			total, balance)
	}

	// All checks passed; from here on any failure must undo every
	// transfer already made within this call.
	paid := 0
	var execErr error
	for i := range msg.Recipients {
		if err := t.ledger.MoveCoins(t.custody, msg.Recipients[i], msg.Amounts[i]); err != nil {
			execErr = errors.Wrapf(errors.ErrTransfer, "recipient %d: %s", i, err)
			break
		}
		paid++
	}
	if execErr != nil {
		for i := paid - 1; i >= 0; i-- {
			if err := t.ledger.MoveCoins(msg.Recipients[i], t.custody, msg.Amounts[i]); err != nil {
				return nil, errors.Wrapf(errors.ErrState,
					"reversal of recipient %d refused (%s) while aborting: %s", i, err, execErr)
			}
		}
		return nil, execErr
	}

	record := DisbursementRecord{
		LinkageID:      msg.LinkageID.Clone(),
		Total:          total,
		RecipientCount: len(msg.Recipients),
		ExecutedAt:     t.now(),
	}
	t.emitter.Emit(PayrollExecuted{
		LinkageID:      record.LinkageID.Clone(),
		Total:          record.Total,
		RecipientCount: record.RecipientCount,
		ExecutedAt:     record.ExecutedAt,
	})
	return &record, nil
}
