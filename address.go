package treasury

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/paydeck/treasury/bech32"
	"github.com/paydeck/treasury/errors"
)

// AddressLength is the length of all addresses. It must not change during
// the lifetime of the system as derived custody addresses depend on it.
const AddressLength = 20

// Bech32Prefix is the human readable part used when rendering an address in
// bech32 encoding.
const Bech32Prefix = "pay"

// Address represents a collision-free, one-way digest identifying an
// account on the fungible ledger. A nil address is the null identifier and
// never validates.
type Address []byte

// NewAddress hashes and truncates into the proper size
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := blake2b.Sum256(data)
	return h[:AddressLength]
}

// DeriveAddress computes a deterministic address owned by an extension
// rather than by a key holder. It is of the format:
//
//   blake2b(sprintf("%s/%s/%s", ext, typ, data))[:AddressLength]
//
// Derived addresses have no private key, so funds held by them can only
// move through the deriving extension's code.
func DeriveAddress(ext, typ string, data []byte) Address {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return NewAddress(append([]byte(pre), data...))
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns an independent copy of this address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns a human readable string.
// Currently hex, may move to bech32.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns a bech32 encoded representation of this address.
func (a Address) Bech32() (string, error) {
	raw, err := bech32.Encode(Bech32Prefix, a)
	if err != nil {
		return "", errors.Wrap(err, "bech32")
	}
	return string(raw), nil
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(a))
	return json.Marshal(s)
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}

	// If the encoded string starts with a prefix, cut it off and use
	// specified decoding method instead of default one.
	chunks := strings.SplitN(enc, ":", 2)
	format := chunks[0]
	if len(chunks) == 1 {
		format = "hex"
	} else {
		enc = chunks[1]
	}

	// No value zero the address.
	if len(enc) == 0 {
		*a = nil
		return nil
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return errors.Wrap(err, "cannot decode hex")
		}
		addr := Address(val)
		if err := addr.Validate(); err != nil {
			return err
		}
		*a = addr
		return nil
	case "bech32":
		hrp, payload, err := bech32.Decode(enc)
		if err != nil {
			return errors.Wrapf(err, "deserialize bech32: %s", err)
		}
		if hrp != Bech32Prefix {
			return errors.Wrapf(errors.ErrInput, "unexpected prefix %q", hrp)
		}
		addr := Address(payload)
		if err := addr.Validate(); err != nil {
			return err
		}
		*a = addr
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown format %q", chunks[0])
	}
}
