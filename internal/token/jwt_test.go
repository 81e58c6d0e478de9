package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	issued, err := j.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, issued.JTI)
	assert.Equal(t, 30*24*time.Hour, issued.ExpiresAt.Sub(issued.IssuedAt))

	claims, err := j.Parse(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, u, claims.UserID)
	assert.Equal(t, issued.JTI, claims.JTI)
}

func TestJWT_UniqueJTI(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	a, err := j.Generate(u)
	require.NoError(t, err)
	b, err := j.Generate(u)
	require.NoError(t, err)

	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestJWT_Parse_Errors(t *testing.T) {
	u := uuid.New()
	issued, err := NewJWT("secret").Generate(u)
	require.NoError(t, err)

	expired := NewJWT("secret")
	expired.now = func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }
	old, err := expired.Generate(u)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: u})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "wrong secret", secret: "other-secret", token: issued.Token},
		{name: "expired", secret: "secret", token: old.Token},
		{name: "garbage", secret: "secret", token: "not-a-token"},
		{name: "unsigned", secret: "secret", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWT(tt.secret).Parse(tt.token)
			require.Error(t, err)
		})
	}
}
