package auth

import (
	"time"

	"github.com/globalos/accounts/internal/common"
)

// MinSecretLength is the shortest accepted signing key, in bytes.
const MinSecretLength = 32

// Codec binds the token functions to one signing secret. It is built once at
// startup and shared read-only by all request handlers.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces time.Now. Tests use it to pin issue and verify times.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec copies secret into a new Codec. Secrets shorter than
// MinSecretLength are rejected with common.ErrSecretTooShort.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, common.ErrSecretTooShort
	}
	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Sign issues a token for username and role.
func (c *Codec) Sign(username, role string) (string, error) {
	return signAt(username, role, c.secret, c.now())
}

// Verify returns the principal of a valid, unexpired token.
func (c *Codec) Verify(token string) (Principal, bool) {
	return verifyAt(token, c.secret, c.now())
}
