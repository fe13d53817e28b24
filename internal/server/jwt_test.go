package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meet-08/SIH2025-Prototype/internal/config"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	cfg, err := config.NewJWTConfig("test-secret-key-for-testing-only", 1)
	require.NoError(t, err)
	return NewJWTService(cfg)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.GetStudentID())
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWTService(t)

	a, err := svc.GenerateToken(1)
	require.NoError(t, err)
	b, err := svc.GenerateToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(5)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(5)
	require.NoError(t, err)

	otherCfg, err := config.NewJWTConfig("a-different-secret", 1)
	require.NoError(t, err)
	_, err = NewJWTService(otherCfg).ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc := newTestJWTService(t)
	secret := []byte("test-secret-key-for-testing-only")
	now := time.Now()

	tests := []struct {
		name   string
		claims *Claims
		method jwt.SigningMethod
	}{
		{
			name: "wrong issuer",
			claims: &Claims{StudentID: 1, RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
			method: jwt.SigningMethodHS256,
		},
		{
			name: "no student",
			claims: &Claims{RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
			method: jwt.SigningMethodHS256,
		},
		{
			name: "other HMAC algorithm",
			claims: &Claims{StudentID: 1, RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
			method: jwt.SigningMethodHS512,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(tt.method, tt.claims).SignedString(secret)
			require.NoError(t, err)

			_, err = svc.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(77)
	require.NoError(t, err)

	got, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(77), got.GetStudentID())
}
