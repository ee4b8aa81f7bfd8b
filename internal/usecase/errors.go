package usecase

import "errors"

// Input errors are terminal: the request itself is invalid and retrying
// the same call can never succeed. Conflict errors (slot taken, hold
// expired) live in the repository package next to the ledger that
// detects them.
var (
	ErrEmptyBundle           = errors.New("bundle has no services")
	ErrUnknownService        = errors.New("unknown or inactive service")
	ErrIncompatibleSameHuman = errors.New("no single human resource covers all bundle services")
	ErrUnknownRuleVariant    = errors.New("unknown bundle rule variant")
)
