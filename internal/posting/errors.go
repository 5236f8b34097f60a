package posting

import "errors"

// Sentinel errors for the posting taxonomy. Validation failures wrap
// one of these so callers can classify with errors.Is.
var (
	ErrEmptyTransaction = errors.New("transaction has no lines")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownAccount   = errors.New("unknown account")
	ErrUnbalanced       = errors.New("transaction does not balance")
	ErrAlreadyReversed  = errors.New("transaction already reversed")
	ErrStorage          = errors.New("storage failure")
)
