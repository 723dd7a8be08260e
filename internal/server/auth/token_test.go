package auth

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/globalos/accounts/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignAt_WireFormat(t *testing.T) {
	t.Parallel()

	// base64url("alice:admin:1700000000" + "." + HMAC-SHA256(secret, payload))
	const want = "YWxpY2U6YWRtaW46MTcwMDAwMDAwMC5MuM550CIEqQsBpwlG6VozCiKZ88C1ibf1sGZpzChTlQ=="

	got, err := signAt("alice", "admin", testSecret, time.Unix(1700000000, 0))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := SignToken("alice", "user", testSecret)
	require.NoError(t, err)

	p, ok := VerifyToken(tok, testSecret)
	require.True(t, ok)
	assert.Equal(t, Principal{Username: "alice", Role: "user"}, p)
}

func TestVerify_RoundTripManyIdentities(t *testing.T) {
	t.Parallel()

	issued := time.Unix(1700000000, 0)
	names := []string{"a", "john.doe", "user@example.com", "Ünïcødé", "with space", "x.y.z."}
	for i, name := range names {
		for j := 0; j < 40; j++ {
			at := issued.Add(time.Duration(i*40+j) * time.Second)
			tok, err := signAt(name, "admin", testSecret, at)
			require.NoError(t, err)

			p, ok := verifyAt(tok, testSecret, at)
			require.True(t, ok, "name=%q at=%d", name, at.Unix())
			require.Equal(t, Principal{Username: name, Role: "admin"}, p)
		}
	}
}

func TestVerify_SignatureContainingDelimiter(t *testing.T) {
	t.Parallel()

	// HMAC for this payload contains a 0x2E byte.
	const tok = "Ym9iOnVzZXI6MTcwMDAwMDAwNC6G5wuoTysBiy6vU3ul7TjzH3Cex_wtfUfCSATjDkDiQw=="

	got, err := signAt("bob", "user", testSecret, time.Unix(1700000004, 0))
	require.NoError(t, err)
	require.Equal(t, tok, got)

	p, ok := verifyAt(tok, testSecret, time.Unix(1700000004, 0))
	require.True(t, ok)
	assert.Equal(t, Principal{Username: "bob", Role: "user"}, p)
}

func TestVerify_TTLBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Unix(1700000000, 0)
	tok, err := signAt("alice", "user", testSecret, issued)
	require.NoError(t, err)

	tests := []struct {
		name  string
		after time.Duration
		want  bool
	}{
		{name: "immediately", after: 0, want: true},
		{name: "T+3599s", after: 3599 * time.Second, want: true},
		{name: "T+3600s", after: 3600 * time.Second, want: true},
		{name: "T+3601s", after: 3601 * time.Second, want: false},
		{name: "a day later", after: 24 * time.Hour, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := verifyAt(tok, testSecret, issued.Add(tt.after))
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerify_FlippedSignatureByteRejected(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 0)
	tok, err := signAt("alice", "admin", testSecret, at)
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(tok)
	require.NoError(t, err)

	sigStart := len(raw) - 32
	for i := sigStart; i < len(raw); i++ {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01
		_, ok := verifyAt(base64.URLEncoding.EncodeToString(tampered), testSecret, at)
		assert.False(t, ok, "flipped signature byte %d accepted", i-sigStart)
	}
}

func TestVerify_TamperedPayloadRejected(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 0)
	tok, err := signAt("alice", "user", testSecret, at)
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(tok)
	require.NoError(t, err)
	// "alice:user:..." -> "alice:root:..."
	copy(raw[6:10], "root")

	_, ok := verifyAt(base64.URLEncoding.EncodeToString(raw), testSecret, at)
	assert.False(t, ok)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := SignToken("alice", "user", testSecret)
	require.NoError(t, err)

	_, ok := VerifyToken(tok, []byte("another-secret-another-secret-!!"))
	assert.False(t, ok)
}

func TestVerify_MalformedInputs(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 0)
	signed := func(payload string) string {
		p := []byte(payload)
		raw := append(append(p, '.'), sign(p, testSecret)...)
		return base64.URLEncoding.EncodeToString(raw)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not base64", token: "%%%not-base64%%%"},
		{name: "std alphabet with padding chars", token: "ab+/cd=="},
		{name: "too short", token: base64.URLEncoding.EncodeToString([]byte("a.b"))},
		{name: "no delimiter before signature", token: base64.URLEncoding.EncodeToString(make([]byte, 40))},
		{name: "two fields", token: signed("alice:1700000000")},
		{name: "four fields", token: signed("alice:user:extra:1700000000")},
		{name: "non numeric timestamp", token: signed("alice:user:yesterday")},
		{name: "float timestamp", token: signed("alice:user:1700000000.5")},
		{name: "empty timestamp", token: signed("alice:user:")},
		{name: "invalid utf8", token: signed("al\xffice:user:1700000000")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := verifyAt(tt.token, testSecret, at)
			assert.False(t, ok)
			assert.Equal(t, Principal{}, p)
		})
	}
}

func TestVerify_FutureTimestampAccepted(t *testing.T) {
	t.Parallel()

	issued := time.Unix(1700000000, 0)
	tok, err := signAt("alice", "user", testSecret, issued)
	require.NoError(t, err)

	_, ok := verifyAt(tok, testSecret, issued.Add(-10*time.Minute))
	assert.True(t, ok)
}

func TestSign_RejectsFieldsThatCannotRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		role     string
	}{
		{name: "colon in username", username: "ali:ce", role: "user"},
		{name: "colon in role", username: "alice", role: "ad:min"},
		{name: "newline", username: "alice\n", role: "user"},
		{name: "nul byte", username: "al\x00ice", role: "user"},
		{name: "invalid utf8", username: "al\xffice", role: "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := SignToken(tt.username, tt.role, testSecret)
			assert.True(t, errors.Is(err, common.ErrInvalidTokenField), "got %v", err)
			assert.Empty(t, tok)
		})
	}
}

func TestValidateFields(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateFields("Zoë 李", "auditor"))
	assert.NoError(t, ValidateFields("", ""))
	assert.ErrorIs(t, ValidateFields("a:b", "user"), common.ErrInvalidTokenField)
	assert.ErrorIs(t, ValidateFields("alice", "ad\tmin"), common.ErrInvalidTokenField)
}
