// Package secrets verifies operator shared secrets. Both the grant header
// and the admin unlock password go through the one Verify helper so the
// comparison lives server-side only.
package secrets

import "crypto/subtle"

// Verify compares a presented secret against the expected value in constant
// time. An empty expected value never matches: an unset secret disables the
// capability instead of opening it.
func Verify(presented, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
