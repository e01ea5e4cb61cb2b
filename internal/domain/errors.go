// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the ledger core. Specific failures below wrap one
// of these base errors, so callers can match either the broad kind
// (errors.Is(err, ErrPayment)) or the exact cause (errors.Is(err, ErrSelfPayment)).
var (
	ErrUsername         = errors.New("username not valid")
	ErrCreditCard       = errors.New("credit card error")
	ErrPayment          = errors.New("payment error")
	ErrInvalidOperation = errors.New("invalid operation")
)

var (
	// Credit card failures.
	ErrCardAlreadyAttached = fmt.Errorf("%w: only one credit card per user", ErrCreditCard)
	ErrInvalidCardNumber   = fmt.Errorf("%w: invalid credit card number", ErrCreditCard)

	// Payment failures.
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be positive", ErrPayment)
	ErrSelfPayment       = fmt.Errorf("%w: user cannot pay themselves", ErrPayment)
	ErrNoCreditCard      = fmt.Errorf("%w: must have a credit card to make a payment", ErrPayment)

	// Friend failures.
	ErrSelfFriend = fmt.Errorf("%w: cannot add yourself as a friend", ErrInvalidOperation)
)
