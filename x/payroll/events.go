package payroll

import (
	"time"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
)

// TreasuryCreated is emitted once, when a treasury is initialized.
type TreasuryCreated struct {
	Admin   treasury.Address
	Custody treasury.Address
	Ticker  string
}

func (TreasuryCreated) EventType() string { return "payroll/treasury_created" }

// Deposited is emitted when funds arrive on the custody account.
type Deposited struct {
	Depositor treasury.Address
	Amount    coin.Coin
}

func (Deposited) EventType() string { return "payroll/deposited" }

// AdminChanged is emitted when the administrative identity is replaced.
type AdminChanged struct {
	Previous treasury.Address
	New      treasury.Address
}

func (AdminChanged) EventType() string { return "payroll/admin_changed" }

// EmergencyWithdrawal is emitted when the admin pulls funds out of custody
// outside of a regular disbursement.
type EmergencyWithdrawal struct {
	Admin     treasury.Address
	Recipient treasury.Address
	Amount    coin.Coin
}

func (EmergencyWithdrawal) EventType() string { return "payroll/emergency_withdrawal" }

// PayrollExecuted is emitted exactly once per fully completed disbursement.
// There is no corresponding fact for a failed attempt.
type PayrollExecuted struct {
	LinkageID      LinkageID
	Total          coin.Coin
	RecipientCount int
	ExecutedAt     time.Time
}

func (PayrollExecuted) EventType() string { return "payroll/executed" }
