// Package auth signs and verifies the stateless bearer tokens handed out on
// login.
//
// Wire format:
//
//	base64url( "{username}:{role}:{unix_seconds}" + "." + HMAC-SHA256(secret, payload) )
//
// The token carries no server-side state, so a token stays usable until its
// TTL runs out.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/globalos/accounts/internal/common"
)

// TokenTTL is the maximum accepted token age.
const TokenTTL = 3600 * time.Second

const (
	fieldSep     = ":"
	signatureSep = '.'
)

var tokenEncoding = base64.URLEncoding

// Principal is the identity recovered from a valid token.
type Principal struct {
	Username string
	Role     string
}

// SignToken issues a token for username and role stamped with the current
// time. Fields that could not be recovered intact by VerifyToken are rejected
// with common.ErrInvalidTokenField.
func SignToken(username, role string, secret []byte) (string, error) {
	return signAt(username, role, secret, time.Now())
}

// VerifyToken returns the principal encoded in token. Every kind of failure
// (bad encoding, bad signature, wrong shape, expiry) yields false.
func VerifyToken(token string, secret []byte) (Principal, bool) {
	return verifyAt(token, secret, time.Now())
}

// ValidateFields reports whether username and role can be carried in a token
// and recovered intact.
func ValidateFields(username, role string) error {
	if !validField(username) || !validField(role) {
		return common.ErrInvalidTokenField
	}
	return nil
}

func signAt(username, role string, secret []byte, now time.Time) (string, error) {
	if err := ValidateFields(username, role); err != nil {
		return "", err
	}
	payload := []byte(username + fieldSep + role + fieldSep + strconv.FormatInt(now.Unix(), 10))

	raw := make([]byte, 0, len(payload)+1+sha256.Size)
	raw = append(raw, payload...)
	raw = append(raw, signatureSep)
	raw = append(raw, sign(payload, secret)...)

	return tokenEncoding.EncodeToString(raw), nil
}

func verifyAt(token string, secret []byte, now time.Time) (Principal, bool) {
	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return Principal{}, false
	}

	payload, sig, ok := splitSigned(raw)
	if !ok {
		return Principal{}, false
	}
	if !hmac.Equal(sign(payload, secret), sig) {
		return Principal{}, false
	}

	if !utf8.Valid(payload) {
		return Principal{}, false
	}
	fields := strings.Split(string(payload), fieldSep)
	if len(fields) != 3 {
		return Principal{}, false
	}
	issuedAt, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Principal{}, false
	}
	if now.Unix()-issuedAt > int64(TokenTTL/time.Second) {
		return Principal{}, false
	}

	return Principal{Username: fields[0], Role: fields[1]}, true
}

// splitSigned separates payload and signature at the last '.' that is
// followed by a complete HMAC. The signature is raw bytes and may itself
// contain '.', so the split position is fixed by the signature length.
func splitSigned(raw []byte) (payload, sig []byte, ok bool) {
	i := len(raw) - sha256.Size - 1
	if i < 0 || raw[i] != signatureSep {
		return nil, nil, false
	}
	return raw[:i], raw[i+1:], true
}

func sign(payload, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

func validField(s string) bool {
	if !utf8.ValidString(s) || strings.Contains(s, fieldSep) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
