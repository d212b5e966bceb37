// Package auth covers the acting identity: password hashing, session tokens
// and the role gate every mutating or listing method checks before touching
// storage.
package auth

import "errors"

// ErrForbidden is the generic denial for a failed role check. Deliberately
// free of detail; the caller learns nothing about which roles would pass.
var ErrForbidden = errors.New("operation not permitted")

// Actor is the authenticated caller, carried explicitly into every service
// method instead of read from ambient state.
type Actor struct {
	UserID string
	Roles  []string
}

// HasAny reports whether the actor holds at least one of the named roles.
func (a Actor) HasAny(roles ...string) bool {
	for _, want := range roles {
		for _, have := range a.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Require is the role gate: it fails closed with ErrForbidden unless the
// actor holds one of the allowed roles. Called before any filter
// construction or mutation.
func Require(a Actor, allowed ...string) error {
	if !a.HasAny(allowed...) {
		return ErrForbidden
	}
	return nil
}
