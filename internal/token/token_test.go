package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	m := NewManager("test-secret")

	signed, err := m.Sign(1, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)
	require.Equal(t, "alice", claims.Username)

	iat := claims.IssuedAt.Time
	exp := claims.ExpiresAt.Time
	require.Equal(t, time.Hour, exp.Sub(iat))
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-one").Sign(1, "alice")
	require.NoError(t, err)

	_, err = NewManager("secret-two").Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("test-secret")
	m.ttl = -time.Minute

	signed, err := m.Sign(1, "alice")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTampered(t *testing.T) {
	m := NewManager("test-secret")

	signed, err := m.Sign(1, "alice")
	require.NoError(t, err)

	// Flip one byte anywhere in the token; signature must fail
	for _, i := range []int{5, len(signed) / 2, len(signed) - 2} {
		tampered := []byte(signed)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		_, err := m.Verify(string(tampered))
		require.Error(t, err, "tampered at offset %d", i)
	}
}

func TestVerifyMalformed(t *testing.T) {
	m := NewManager("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := m.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
