package payroll

import (
	"github.com/paydeck/treasury/errors"
)

// DefaultMaxBatchSize is the batch size cap applied when no configuration
// is provided. The value bounds the computational budget of a single
// disbursement call. It is a policy knob, not a correctness requirement.
const DefaultMaxBatchSize = 100

// Configuration holds the tunable policy knobs of a treasury.
type Configuration struct {
	// MaxBatchSize is the maximum number of recipients a single
	// disbursement may pay.
	MaxBatchSize int
}

// DefaultConfiguration returns the policy applied when the treasury owner
// does not specify one.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxBatchSize: DefaultMaxBatchSize,
	}
}

// Validate returns an error if this configuration cannot be used.
func (c Configuration) Validate() error {
	if c.MaxBatchSize < 1 {
		return errors.Wrap(errors.ErrState, "max batch size must be positive")
	}
	return nil
}
