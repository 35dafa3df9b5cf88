package main

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/errors"
	"github.com/paydeck/treasury/x/payroll"
)

// batchFile is the payout description consumed by the run command. The
// linkage ID is the hex encoded reference to the off-chain payroll record.
//
//   {
//     "linkage_id": "3fb0…",
//     "payments": [
//       {"recipient": "C2E53CC4…", "amount": "400 USDX"}
//     ]
//   }
type batchFile struct {
	LinkageID string    `json:"linkage_id"`
	Payments  []payment `json:"payments"`
}

type payment struct {
	Recipient treasury.Address `json:"recipient"`
	Amount    coin.Coin        `json:"amount"`
}

func loadBatch(path string) (*payroll.DisbursementMsg, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", path)
	}
	var b batchFile
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %q", path)
	}

	linkage, err := hex.DecodeString(b.LinkageID)
	if err != nil {
		return nil, errors.Wrap(err, "linkage id is not hex")
	}

	msg := payroll.DisbursementMsg{
		LinkageID: payroll.LinkageID(linkage),
	}
	for _, p := range b.Payments {
		msg.Recipients = append(msg.Recipients, p.Recipient)
		msg.Amounts = append(msg.Amounts, p.Amount)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "batch")
	}
	return &msg, nil
}
