package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokens_IssueAndVerify(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue(time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, tokens.Verify(token))
}

func TestJWTTokens_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTTokens("secret-a")
	verifier := NewJWTTokens("secret-b")

	token, err := issuer.Issue(time.Hour)
	require.NoError(t, err)

	assert.Error(t, verifier.Verify(token))
}

func TestJWTTokens_VerifyRejectsExpired(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue(-time.Minute)
	require.NoError(t, err)

	assert.Error(t, tokens.Verify(token))
}

func TestJWTTokens_VerifyRejectsGarbage(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	assert.Error(t, tokens.Verify("not.a.jwt"))
	assert.Error(t, tokens.Verify(""))
}
