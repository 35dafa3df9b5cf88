/*
Package errors implements the error handling used across the treasury
engine.

Every failure mode callers can react to is declared as a root error. Code
raising an error must wrap one of the root errors declared here, so that
the caller can match with the root's Is method without inspecting message
strings. Wrapping attaches context and, for the innermost wrap, a stack
trace.

	if err := t.Deposit(alice, amount); errors.ErrTransfer.Is(err) {
		// prompt for an allowance and retry
	}
*/
package errors
