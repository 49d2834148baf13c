package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestTokenRoundTrip(t *testing.T) {
	clock := newTestClock()
	tm := NewTokenManager(testSecret, 30*time.Minute, WithClock(clock.Now))

	token, exp, err := tm.GenerateToken("alice", "Alice Liddell")
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(30*time.Minute), exp)

	assert.True(t, tm.Validate(token))

	subject, err := tm.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", claims.FullName)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, clock.t, claims.IssuedAt.Time.UTC())
}

func TestTokenExpiresAfterLifetime(t *testing.T) {
	clock := newTestClock()
	tm := NewTokenManager(testSecret, 10*time.Minute, WithClock(clock.Now))

	token, _, err := tm.GenerateToken("alice", "Alice")
	require.NoError(t, err)

	clock.Advance(10*time.Minute - time.Second)
	assert.True(t, tm.Validate(token), "token should still be valid just before expiry")

	clock.Advance(time.Second)
	assert.False(t, tm.Validate(token), "expiry must be strictly in the future")

	clock.Advance(time.Hour)
	assert.False(t, tm.Validate(token))

	// Extraction only checks the signature.
	subject, err := tm.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenTamperingIsDetected(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, _, err := tm.GenerateToken("alice", "Alice")
	require.NoError(t, err)
	require.True(t, tm.Validate(token))

	for i := 0; i < len(token); i++ {
		b := []byte(token)
		b[i] ^= 0x01
		assert.Falsef(t, tm.Validate(string(b)), "flipped byte %d still validated", i)
	}
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("another-secret-another-secret-xx", time.Hour)
	verifier := NewTokenManager(testSecret, time.Hour)

	token, _, err := issuer.GenerateToken("mallory", "Mallory")
	require.NoError(t, err)

	assert.False(t, verifier.Validate(token))
	_, err = verifier.ExtractSubject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsUnexpectedAlgorithms(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	t.Run("none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		assert.False(t, tm.Validate(token))
	})

	t.Run("hs512 with same secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		assert.False(t, tm.Validate(token))
	})
}

func TestTokenWithoutExpiryIsRejected(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.False(t, tm.Validate(token))
}

func TestValidateGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	for _, in := range []string{"", "abc", "a.b.c", strings.Repeat(".", 10), "Bearer x.y.z"} {
		assert.Falsef(t, tm.Validate(in), "input %q", in)
	}
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewTokenManager(testSecret, 0).TTL())
}
