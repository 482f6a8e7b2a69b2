package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user does not own the target resource.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientFunds indicates that a debit would take an account balance negative
// and negative balances were not explicitly allowed.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrRateUnavailable indicates that no exchange rate exists for a required
// currency pair and date, so a conversion cannot proceed.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrInvalidState indicates an operation attempted on an entity in the wrong
// lifecycle state (e.g. cancelling a transfer that is not COMPLETED).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrInternal indicates an unexpected internal failure that should not expose
// details to the caller.
var ErrInternal = errors.New("internal error")
