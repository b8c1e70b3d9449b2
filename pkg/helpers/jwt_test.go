package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, exp, err := m.Issue("alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, _, err := m.Issue("alice")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}
