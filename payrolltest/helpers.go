package payrolltest

import (
	"encoding/binary"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/x/payroll"
)

// SequenceAddress returns the i-th address of a deterministic sequence.
// Addresses of different indexes never collide. Use this to create test
// identities without key material.
func SequenceAddress(i uint64) treasury.Address {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, i)
	return treasury.NewAddress(raw)
}

// SequenceLinkageID returns the i-th linkage identifier of a deterministic
// sequence.
func SequenceLinkageID(i uint64) payroll.LinkageID {
	id := make(payroll.LinkageID, payroll.LinkageIDLength)
	binary.BigEndian.PutUint64(id[payroll.LinkageIDLength-8:], i)
	return id
}
