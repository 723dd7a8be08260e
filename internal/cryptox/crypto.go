// Package cryptox implements password hashing for stored credentials.
//
// Hashes are PBKDF2-HMAC-SHA256 with a per-user random salt. The salt is kept
// as its lowercase hex rendering and that text (not the decoded bytes) is the
// KDF salt input. Existing rows depend on this.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/globalos/accounts/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2Iterations is fixed; changing it invalidates every stored hash.
	PBKDF2Iterations = 200_000
	// KeyLength matches the SHA-256 output size.
	KeyLength = sha256.Size
	// SaltSize is the number of random bytes behind the 32-char hex salt.
	SaltSize = 16
)

// HashPassword derives a hash for password under a freshly generated salt.
// Both values are returned in their stored (text) form. Rejecting empty
// passwords is left to the caller.
func HashPassword(password string) (hash, salt string, err error) {
	salt, err = common.MakeRandHexString(SaltSize)
	if err != nil {
		return "", "", err
	}
	return derive(password, salt), salt, nil
}

// VerifyPassword reports whether password matches hash under salt.
// The comparison is constant time.
func VerifyPassword(password, hash, salt string) bool {
	candidate := derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}

func derive(password, salt string) string {
	dk := pbkdf2.Key([]byte(password), []byte(salt), PBKDF2Iterations, KeyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(dk)
}
