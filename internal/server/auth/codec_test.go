package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/globalos/accounts/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestNewCodec_RejectsShortSecret(t *testing.T) {
	_, err := NewCodec(make([]byte, MinSecretLength-1))
	if !errors.Is(err, common.ErrSecretTooShort) {
		t.Fatalf("expected ErrSecretTooShort, got %v", err)
	}
}

func TestNewCodec_CopiesSecret(t *testing.T) {
	secret := append([]byte(nil), testSecret...)
	c, err := NewCodec(secret)
	require.NoError(t, err)

	tok, err := c.Sign("alice", "user")
	require.NoError(t, err)

	// mutating the caller's slice must not affect the codec
	secret[0] ^= 0xFF

	_, ok := c.Verify(tok)
	assert.True(t, ok)
}

func TestCodec_SignVerifyWithClock(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	c, err := NewCodec(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := c.Sign("alice", "admin")
	require.NoError(t, err)
	assert.Equal(t, "YWxpY2U6YWRtaW46MTcwMDAwMDAwMC5MuM550CIEqQsBpwlG6VozCiKZ88C1ibf1sGZpzChTlQ==", tok)

	clock.t = clock.t.Add(3599 * time.Second)
	p, ok := c.Verify(tok)
	require.True(t, ok)
	assert.Equal(t, "admin", p.Role)

	clock.t = clock.t.Add(2 * time.Second)
	_, ok = c.Verify(tok)
	assert.False(t, ok)
}

func TestCodec_InteropWithPackageFunctions(t *testing.T) {
	c, err := NewCodec(testSecret)
	require.NoError(t, err)

	tok, err := SignToken("bob", "user", testSecret)
	require.NoError(t, err)

	p, ok := c.Verify(tok)
	require.True(t, ok)
	assert.Equal(t, Principal{Username: "bob", Role: "user"}, p)
}
