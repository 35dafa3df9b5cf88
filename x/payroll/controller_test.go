package payroll_test

import (
	"testing"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/errors"
	"github.com/paydeck/treasury/payrolltest"
	"github.com/paydeck/treasury/payrolltest/assert"
	"github.com/paydeck/treasury/x/payroll"
)

func TestNewTreasury(t *testing.T) {
	admin := payrolltest.SequenceAddress(1)

	cases := map[string]struct {
		ledger  treasury.Ledger
		admin   treasury.Address
		ticker  string
		opts    *payroll.TreasuryOptions
		wantErr *errors.Error
	}{
		"proper": {
			ledger: &payrolltest.Ledger{},
			admin:  admin,
			ticker: "USDX",
		},
		"nil ledger": {
			ledger:  nil,
			admin:   admin,
			ticker:  "USDX",
			wantErr: errors.ErrInput,
		},
		"null admin": {
			ledger:  &payrolltest.Ledger{},
			admin:   nil,
			ticker:  "USDX",
			wantErr: errors.ErrInvalidAdmin,
		},
		"malformed ticker": {
			ledger:  &payrolltest.Ledger{},
			admin:   admin,
			ticker:  "us",
			wantErr: errors.ErrCurrency,
		},
		"broken configuration": {
			ledger:  &payrolltest.Ledger{},
			admin:   admin,
			ticker:  "USDX",
			opts:    &payroll.TreasuryOptions{Configuration: &payroll.Configuration{MaxBatchSize: -1}},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := payroll.NewTreasury(tc.ledger, []byte("org-1"), tc.admin, tc.ticker, tc.opts)
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestNewTreasuryEmitsCreated(t *testing.T) {
	var rec payrolltest.Recorder
	admin := payrolltest.SequenceAddress(1)

	tr, err := payroll.NewTreasury(&payrolltest.Ledger{}, []byte("org-1"), admin, "USDX", &payroll.TreasuryOptions{
		Emitter: &rec,
	})
	assert.Nil(t, err)

	if len(rec.Events) != 1 {
		t.Fatalf("want one fact, got %d", len(rec.Events))
	}
	created, ok := rec.Events[0].(payroll.TreasuryCreated)
	if !ok {
		t.Fatalf("unexpected fact: %#v", rec.Events[0])
	}
	assert.Equal(t, admin, created.Admin)
	assert.Equal(t, tr.Custody(), created.Custody)
	assert.Equal(t, "USDX", created.Ticker)
}

func TestSetAdmin(t *testing.T) {
	admin := payrolltest.SequenceAddress(1)
	next := payrolltest.SequenceAddress(2)
	stranger := payrolltest.SequenceAddress(3)

	cases := map[string]struct {
		caller   treasury.Address
		newAdmin treasury.Address
		wantErr  *errors.Error
	}{
		"admin rotates the identity": {
			caller:   admin,
			newAdmin: next,
		},
		"non admin caller": {
			caller:   stranger,
			newAdmin: next,
			wantErr:  errors.ErrUnauthorized,
		},
		"null new admin": {
			caller:   admin,
			newAdmin: nil,
			wantErr:  errors.ErrInvalidAdmin,
		},
		"malformed new admin": {
			caller:   admin,
			newAdmin: treasury.Address{1, 2, 3},
			wantErr:  errors.ErrInvalidAdmin,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var rec payrolltest.Recorder
			tr, err := payroll.NewTreasury(&payrolltest.Ledger{}, []byte("org-1"), admin, "USDX", &payroll.TreasuryOptions{
				Emitter: &rec,
			})
			assert.Nil(t, err)

			err = tr.SetAdmin(tc.caller, tc.newAdmin)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				// Failure must not affect the identity.
				assert.Equal(t, admin, tr.Admin())
				assert.Equal(t, uint64(1), tr.AdminVersion())
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.newAdmin, tr.Admin())
			assert.Equal(t, uint64(2), tr.AdminVersion())

			changed, ok := rec.Latest().(payroll.AdminChanged)
			if !ok {
				t.Fatalf("unexpected fact: %#v", rec.Latest())
			}
			assert.Equal(t, admin, changed.Previous)
			assert.Equal(t, tc.newAdmin, changed.New)
		})
	}
}

func TestSetAdminTransfersAllPower(t *testing.T) {
	admin := payrolltest.SequenceAddress(1)
	next := payrolltest.SequenceAddress(2)

	tr, err := payroll.NewTreasury(&payrolltest.Ledger{}, []byte("org-1"), admin, "USDX", nil)
	assert.Nil(t, err)

	assert.Nil(t, tr.SetAdmin(admin, next))

	// The previous admin is an ordinary identity now.
	assert.IsErr(t, errors.ErrUnauthorized, tr.SetAdmin(admin, admin))
	// The new admin can rotate back.
	assert.Nil(t, tr.SetAdmin(next, admin))
	assert.Equal(t, admin, tr.Admin())
	assert.Equal(t, uint64(3), tr.AdminVersion())
}
