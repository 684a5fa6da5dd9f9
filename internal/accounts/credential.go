package accounts

import (
	"crypto/subtle"
	"strings"

	"github.com/sneakhead/sneakhead-backend/pkg/security"
)

// Credential is the stored secret for a user: an opaque verifiable value, not
// a cleartext string. Argon2id-encoded values verify through pkg/security;
// anything else falls back to exact comparison, which is how the legacy data
// files stored passwords.
type Credential string

// Matches reports whether the presented password verifies against the
// stored credential.
func (c Credential) Matches(password string) bool {
	if strings.HasPrefix(string(c), security.HashPrefix) {
		ok, err := security.VerifyPassword(password, string(c))
		return err == nil && ok
	}
	return subtle.ConstantTimeCompare([]byte(c), []byte(password)) == 1
}
