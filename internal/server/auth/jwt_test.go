package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, PurposeLogin, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseTokenFor(tok, PurposeLogin, secret)
	if err != nil {
		t.Fatalf("ParseTokenFor error: %v", err)
	}
	if claims.Subject != userID {
		t.Fatalf("userID mismatch: got %q want %q", claims.Subject, userID)
	}
}

func TestParseTokenFor_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", PurposeReset, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseTokenFor(tok, PurposeReset, secret)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseTokenFor_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", PurposeLogin, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseTokenFor(tok, PurposeLogin, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseTokenFor_WrongPurpose(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	login, err := GenerateToken("u3", PurposeLogin, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseTokenFor(login, PurposeReset, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken, "a login token must not reset passwords")

	reset, err := GenerateToken("u3", PurposeReset, secret, time.Hour)
	require.NoError(t, err)
	claims, err := ParseToken(reset, secret)
	require.NoError(t, err)
	assert.Equal(t, PurposeReset, claims.Purpose)
	assert.Equal(t, "u3", claims.Subject)
	assert.Len(t, claims.ID, 32)
	require.NotNil(t, claims.ExpiresAt)

	again, err := GenerateToken("u3", PurposeReset, secret, time.Hour)
	require.NoError(t, err)
	other, err := ParseToken(again, secret)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, other.ID)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u4"},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseTokenFor_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseTokenFor("not.a.jwt", PurposeLogin, []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
