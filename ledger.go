package treasury

import (
	"github.com/paydeck/treasury/coin"
)

// Ledger is the fungible ledger collaborator. It is the single source of
// truth for all token balances; the engine never keeps its own counters.
//
// A pull transfer (deposit) is MoveCoins from the depositor to the custody
// account, a push transfer (payout) is MoveCoins from the custody account
// to a recipient. Allowance, account freezing and similar policies are
// implemented behind this interface and surface as MoveCoins errors.
//
// Both methods are synchronous and must either fully apply or leave the
// ledger untouched.
type Ledger interface {
	// Balance returns all holdings of the given account. A missing
	// account is reported as empty holdings, not as an error.
	Balance(acct Address) (coin.Coins, error)

	// MoveCoins transfers the given amount from src to dest. If src does
	// not hold sufficient coins, or the ledger policy refuses the
	// transfer, it fails without any effect.
	MoveCoins(src Address, dest Address, amount coin.Coin) error
}
