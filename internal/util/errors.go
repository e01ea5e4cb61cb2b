// internal/util/errors.go
package util

import "errors"

// Registry-level errors. The ledger core's own error kinds live in
// internal/domain; these cover user lookup and registration.
var (
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// IsError reports whether err matches target, unwrapping as needed.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
