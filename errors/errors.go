package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned whenever a caller attempts a protected
	// operation without holding the administrative identity.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrInvalidAdmin is returned when the administrative identity would
	// be replaced with an unusable value (null or malformed).
	ErrInvalidAdmin = Register(3, "invalid admin")

	// ErrAmount is returned for a zero, negative or otherwise malformed
	// token amount.
	ErrAmount = Register(4, "invalid amount")

	// ErrRecipient is returned when a transfer destination is null or
	// malformed.
	ErrRecipient = Register(5, "invalid recipient")

	// ErrLengthMismatch is returned when the recipient and amount lists
	// of a disbursement are of different length.
	ErrLengthMismatch = Register(6, "length mismatch")

	// ErrEmptyBatch is returned for a disbursement without a single
	// recipient.
	ErrEmptyBatch = Register(7, "empty batch")

	// ErrBatchTooLarge is returned when a disbursement exceeds the
	// configured maximum batch size.
	ErrBatchTooLarge = Register(8, "batch too large")

	// ErrInsufficientBalance is returned when the custody account does
	// not hold enough funds for the requested operation.
	ErrInsufficientBalance = Register(9, "insufficient balance")

	// ErrTransfer is returned when the fungible ledger refuses a
	// transfer, for example because of a missing allowance or a frozen
	// account. The ledger's own error is attached as the cause.
	ErrTransfer = Register(10, "transfer failed")

	// ErrReentrantCall is returned when a guarded operation is entered
	// again while a previous call on the same treasury is still in
	// flight.
	ErrReentrantCall = Register(11, "reentrant call")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(12, "value overflow")

	// ErrCurrency is returned for an unknown or mismatched currency
	// ticker.
	ErrCurrency = Register(13, "invalid currency")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(14, "invalid input")

	// ErrState is returned when an object is in an invalid state.
	ErrState = Register(15, "invalid state")

	// ErrEmpty is returned when a value fails a not-empty assertion.
	ErrEmpty = Register(16, "value is empty")

	// ErrInternal is the fallback for failures that must not leak
	// implementation details to the caller.
	ErrInternal = Register(17, "internal")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want
// to declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No
// two error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	// Code 1 is restricted for errors originating outside of this
	// package and must not be used.
	1: nil,
}

// Error represents a root error.
//
// The engine is using root errors to categorize issues. Each instance
// created during the runtime should wrap one of the declared root errors.
// This allows error tests and returning all errors to the client in a safe
// manner.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the stable numeric identifier of this error kind.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error. Returned instance is having the root cause set
// to this error. Below two lines are equal
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is checks if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		// If this is a collection of errors, this error is matching if
		// any of the contained errors is.
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If err is nil, this returns nil, avoiding the need for an if statement
// when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional functionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call
// this function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Redact replaces the panic root, which may carry sensitive system
// information, with a bare internal error before it crosses a trust
// boundary.
func Redact(err error) error {
	if ErrPanic.Is(err) {
		return ErrInternal
	}
	return err
}

// stackTrace returns the first found stack trace frames or nil.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

func isNilErr(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if err == nil {
		return true
	}
	if reflect.ValueOf(err).Kind() == reflect.Ptr {
		return reflect.ValueOf(err).IsNil()
	}
	return false
}

// causer is an interface implemented by an error that supports wrapping.
// Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

// unpacker is an interface implemented by an error that represents a
// collection of other errors.
type unpacker interface {
	Unpack() []error
}
