package payroll_test

import (
	"testing"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
	"github.com/paydeck/treasury/payrolltest"
	"github.com/paydeck/treasury/payrolltest/assert"
	"github.com/paydeck/treasury/x/payroll"
)

// newTestTreasury returns a treasury managing USDX for the organization
// "org-1", an admin funded with the given amount, the ledger and a fact
// recorder.
func newTestTreasury(t testing.TB, adminFunds coin.Coin) (*payroll.Treasury, *payrolltest.Ledger, *payrolltest.Recorder, treasury.Address) {
	t.Helper()

	admin := payrolltest.SequenceAddress(1)
	ledger := &payrolltest.Ledger{}
	if adminFunds.IsPositive() {
		if err := ledger.SetBalance(admin, adminFunds); err != nil {
			t.Fatalf("cannot fund admin: %+v", err)
		}
	}
	rec := &payrolltest.Recorder{}
	tr, err := payroll.NewTreasury(ledger, []byte("org-1"), admin, "USDX", &payroll.TreasuryOptions{
		Emitter: rec,
	})
	if err != nil {
		t.Fatalf("cannot create treasury: %+v", err)
	}
	return tr, ledger, rec, admin
}

func TestDeposit(t *testing.T) {
	tr, ledger, rec, admin := newTestTreasury(t, coin.NewCoin(1500, 0, "USDX"))

	assert.Nil(t, tr.Deposit(admin, coin.NewCoin(1000, 0, "USDX")))

	balance, err := tr.Balance()
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(1000, 0, "USDX"), balance)
	// The depositor's account decreased by exactly the same amount.
	if !ledger.Holds(admin, coin.NewCoin(500, 0, "USDX")) {
		t.Fatal("depositor balance did not decrease by the deposited amount")
	}

	deposited, ok := rec.Latest().(payroll.Deposited)
	if !ok {
		t.Fatalf("unexpected fact: %#v", rec.Latest())
	}
	assert.Equal(t, admin, deposited.Depositor)
	assert.Equal(t, coin.NewCoin(1000, 0, "USDX"), deposited.Amount)
}

func TestDepositIsUnprivileged(t *testing.T) {
	tr, ledger, _, _ := newTestTreasury(t, coin.Coin{})

	// A complete stranger may top up the treasury.
	stranger := payrolltest.SequenceAddress(100)
	if err := ledger.SetBalance(stranger, coin.NewCoin(7, 0, "USDX")); err != nil {
		t.Fatalf("cannot fund stranger: %+v", err)
	}
	assert.Nil(t, tr.Deposit(stranger, coin.NewCoin(7, 0, "USDX")))

	balance, err := tr.Balance()
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(7, 0, "USDX"), balance)
}

func TestDepositInvalidInput(t *testing.T) {
	cases := map[string]struct {
		amount  coin.Coin
		wantErr *errors.Error
	}{
		"zero amount":     {coin.NewCoin(0, 0, "USDX"), errors.ErrAmount},
		"negative amount": {coin.NewCoin(-4, 0, "USDX"), errors.ErrAmount},
		"wrong currency":  {coin.NewCoin(4, 0, "EURX"), errors.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tr, _, rec, admin := newTestTreasury(t, coin.NewCoin(100, 0, "USDX"))
			assert.IsErr(t, tc.wantErr, tr.Deposit(admin, tc.amount))

			balance, err := tr.Balance()
			assert.Nil(t, err)
			if !balance.IsZero() {
				t.Fatalf("failed deposit must not move funds: %q", balance)
			}
			if got := rec.OfType(payroll.Deposited{}.EventType()); len(got) != 0 {
				t.Fatalf("failed deposit must not emit a fact: %v", got)
			}
		})
	}
}

func TestDepositWithoutFundsFails(t *testing.T) {
	tr, _, _, admin := newTestTreasury(t, coin.NewCoin(10, 0, "USDX"))

	err := tr.Deposit(admin, coin.NewCoin(11, 0, "USDX"))
	assert.IsErr(t, errors.ErrTransfer, err)

	balance, berr := tr.Balance()
	assert.Nil(t, berr)
	if !balance.IsZero() {
		t.Fatalf("refused deposit must not move funds: %q", balance)
	}
}

func TestDepositLedgerRefusal(t *testing.T) {
	tr, ledger, _, admin := newTestTreasury(t, coin.NewCoin(100, 0, "USDX"))
	ledger.MoveHook = func(src, dest treasury.Address, amount coin.Coin) error {
		return errors.ErrState.New("account frozen")
	}

	assert.IsErr(t, errors.ErrTransfer, tr.Deposit(admin, coin.NewCoin(10, 0, "USDX")))
}

func TestBalanceIsDerivedFromLedger(t *testing.T) {
	tr, ledger, _, _ := newTestTreasury(t, coin.Coin{})

	// Funds placed on the custody account outside of the engine are still
	// reported; there is no internal counter to drift from the ledger.
	if err := ledger.SetBalance(tr.Custody(), coin.NewCoin(42, 0, "USDX")); err != nil {
		t.Fatalf("cannot fund custody: %+v", err)
	}
	balance, err := tr.Balance()
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(42, 0, "USDX"), balance)

	// Holdings in other currencies are not reported.
	other := payrolltest.SequenceAddress(50)
	if err := ledger.SetBalance(other, coin.NewCoin(5, 0, "ABCD")); err != nil {
		t.Fatalf("cannot fund helper account: %+v", err)
	}
	if err := ledger.MoveCoins(other, tr.Custody(), coin.NewCoin(5, 0, "ABCD")); err != nil {
		t.Fatalf("cannot move helper funds: %+v", err)
	}
	balance, err = tr.Balance()
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(42, 0, "USDX"), balance)
}

func TestEmergencyWithdraw(t *testing.T) {
	tr, ledger, rec, admin := newTestTreasury(t, coin.NewCoin(1000, 0, "USDX"))
	assert.Nil(t, tr.Deposit(admin, coin.NewCoin(1000, 0, "USDX")))

	recipient := payrolltest.SequenceAddress(9)
	assert.Nil(t, tr.EmergencyWithdraw(admin, recipient, coin.NewCoin(1000, 0, "USDX")))

	balance, err := tr.Balance()
	assert.Nil(t, err)
	if !balance.IsZero() {
		t.Fatalf("custody must be drained, got %q", balance)
	}
	if !ledger.Holds(recipient, coin.NewCoin(1000, 0, "USDX")) {
		t.Fatal("recipient did not receive the withdrawn funds")
	}

	withdrawal, ok := rec.Latest().(payroll.EmergencyWithdrawal)
	if !ok {
		t.Fatalf("unexpected fact: %#v", rec.Latest())
	}
	assert.Equal(t, admin, withdrawal.Admin)
	assert.Equal(t, recipient, withdrawal.Recipient)
	assert.Equal(t, coin.NewCoin(1000, 0, "USDX"), withdrawal.Amount)
}

func TestEmergencyWithdrawInvalidInput(t *testing.T) {
	recipient := payrolltest.SequenceAddress(9)
	stranger := payrolltest.SequenceAddress(66)

	cases := map[string]struct {
		caller    treasury.Address
		recipient treasury.Address
		amount    coin.Coin
		wantErr   *errors.Error
	}{
		"non admin caller": {
			caller:    stranger,
			recipient: recipient,
			amount:    coin.NewCoin(1, 0, "USDX"),
			wantErr:   errors.ErrUnauthorized,
		},
		"null recipient": {
			caller:    payrolltest.SequenceAddress(1),
			recipient: nil,
			amount:    coin.NewCoin(1, 0, "USDX"),
			wantErr:   errors.ErrRecipient,
		},
		"zero amount": {
			caller:    payrolltest.SequenceAddress(1),
			recipient: recipient,
			amount:    coin.NewCoin(0, 0, "USDX"),
			wantErr:   errors.ErrAmount,
		},
		"over the balance": {
			caller:    payrolltest.SequenceAddress(1),
			recipient: recipient,
			amount:    coin.NewCoin(101, 0, "USDX"),
			wantErr:   errors.ErrInsufficientBalance,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tr, _, rec, admin := newTestTreasury(t, coin.NewCoin(100, 0, "USDX"))
			assert.Nil(t, tr.Deposit(admin, coin.NewCoin(100, 0, "USDX")))

			assert.IsErr(t, tc.wantErr, tr.EmergencyWithdraw(tc.caller, tc.recipient, tc.amount))

			balance, err := tr.Balance()
			assert.Nil(t, err)
			assert.Equal(t, coin.NewCoin(100, 0, "USDX"), balance)
			if got := rec.OfType(payroll.EmergencyWithdrawal{}.EventType()); len(got) != 0 {
				t.Fatalf("failed withdrawal must not emit a fact: %v", got)
			}
		})
	}
}
