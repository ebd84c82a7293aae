package usecase

import "errors"

// Workflow error taxonomy. Handlers map these to HTTP statuses with
// errors.Is; services wrap them with context via fmt.Errorf("%w").
var (
	// ErrUnauthenticated: no valid identity for an operation that
	// requires one. Surfaced to the caller for a login re-prompt.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidInput: malformed or incomplete request data. Surfaced
	// for correction, never retried automatically.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials: login email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken: registration with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrOfferingNotFound: the service/package pair does not resolve.
	ErrOfferingNotFound = errors.New("offering not found")

	// ErrProcessorUnavailable: the payment gateway could not be reached
	// or timed out. Retryable by calling Initiate again; the same
	// payment order is never resubmitted.
	ErrProcessorUnavailable = errors.New("payment processor unavailable")

	// ErrVerificationFailed: signature or ID mismatch on a confirmation.
	// Terminal for that payment order.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrOrderNotFound: unknown payment order ID. Retryable by the
	// client in case the order is not yet visible.
	ErrOrderNotFound = errors.New("payment order not found")

	// ErrStateConflict: an operation arrived in a state that does not
	// accept it (e.g. confirming a cancelled order).
	ErrStateConflict = errors.New("payment order state conflict")

	// ErrBookingNotFound: unknown or inaccessible booking ID.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvariantViolation: a broken calling contract, e.g. the
	// materializer invoked on a non-paid order. Programming error; must
	// surface as a hard failure, never be masked.
	ErrInvariantViolation = errors.New("invariant violation")
)
