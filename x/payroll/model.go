package payroll

import (
	"encoding/hex"
	"strings"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/errors"
)

// LinkageIDLength is the exact size of a linkage identifier.
const LinkageIDLength = 32

// LinkageID is an opaque identifier correlating a disbursement with an
// external record. It is produced and interpreted entirely outside of this
// package. Two disbursements may carry the same linkage ID; the engine does
// not deduplicate.
type LinkageID []byte

// Validate returns an error unless the identifier is exactly
// LinkageIDLength bytes.
func (id LinkageID) Validate() error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "linkage id")
	}
	if len(id) != LinkageIDLength {
		return errors.Wrapf(errors.ErrInput, "linkage id length %d", len(id))
	}
	return nil
}

// Clone returns an independent copy of this identifier.
func (id LinkageID) Clone() LinkageID {
	if id == nil {
		return nil
	}
	return append(LinkageID(nil), id...)
}

// String returns a human readable hex representation.
func (id LinkageID) String() string {
	if len(id) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(id))
}

// CustodyAccount returns the address holding the funds of the treasury with
// the given identifier. The address is derived, so it has no private key
// and its funds can only move through engine code.
func CustodyAccount(treasuryID []byte) treasury.Address {
	return treasury.DeriveAddress("payroll", "custody", treasuryID)
}
