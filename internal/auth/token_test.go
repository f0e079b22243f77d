package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(42, "alice", RoleUser)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestParseRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	valid, err := m.Issue(1, "bob", RoleUser)
	require.NoError(t, err)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(1, "bob", RoleUser)
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("other", time.Hour).Issue(1, "bob", RoleUser)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"missing", "", ErrMissingToken},
		{"malformed", "not-a-jwt", ErrMalformedToken},
		{"expired", expiredToken, ErrExpiredToken},
		{"wrong signature", otherSecret, ErrInvalidToken},
		{"tampered", valid[:len(valid)-2] + "xx", ErrInvalidToken},
		{"none algorithm", noneAlg, ErrInvalidToken},
		{"other hmac algorithm", hs512, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = BearerToken("bearer   abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = BearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = BearerToken("Bearer")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
