package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPair(t *testing.T, issuer string, expiry time.Duration) (*JWTGenerator, *JWTValidator) {
	t.Helper()
	cfg := JWTConfig{SigningMethod: "HS256", SecretKey: "test-secret", Issuer: issuer, Audience: []string{"portfolio-admin"}}
	gen, err := NewJWTGenerator(cfg, expiry)
	require.NoError(t, err)
	val, err := NewJWTValidator(cfg)
	require.NoError(t, err)
	return gen, val
}

func TestJWTValidator_ValidToken(t *testing.T) {
	gen, val := newTestPair(t, "portfolio-backend", time.Hour)

	token, err := gen.GenerateToken("owner", []string{RoleAdmin})
	require.NoError(t, err)

	claims, err := val.ValidateToken("Bearer " + token)

	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	assert.True(t, claims.HasRole(RoleAdmin))
	assert.False(t, claims.HasRole("editor"))
}

func TestJWTValidator_Rejections(t *testing.T) {
	gen, val := newTestPair(t, "portfolio-backend", time.Hour)
	expiredGen, _ := newTestPair(t, "portfolio-backend", -time.Minute)
	otherIssuer, _ := newTestPair(t, "someone-else", time.Hour)
	wrongSecret, err := NewJWTGenerator(JWTConfig{SecretKey: "other", Issuer: "portfolio-backend", Audience: []string{"portfolio-admin"}}, time.Hour)
	require.NoError(t, err)

	good, _ := gen.GenerateToken("owner", nil)
	expired, _ := expiredGen.GenerateToken("owner", nil)
	foreign, _ := otherIssuer.GenerateToken("owner", nil)
	forged, _ := wrongSecret.GenerateToken("owner", nil)
	noSubject, _ := gen.GenerateToken("", nil)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"missing", "", ErrMissingToken},
		{"bearer only", "Bearer ", ErrMissingToken},
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"expired", expired, ErrExpiredToken},
		{"wrong issuer", foreign, ErrInvalidClaims},
		{"wrong secret", forged, ErrInvalidSignature},
		{"no subject", noSubject, ErrInvalidClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := val.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = val.ValidateToken(good)
	assert.NoError(t, err)
}

func TestNewJWTValidator_Config(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "RS256"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "ES512", SecretKey: "x"})
	assert.Error(t, err)
}

func TestClaimsContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithClaims(context.Background(), &Claims{Roles: []string{RoleAdmin}})
	claims, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.True(t, claims.HasRole(RoleAdmin))
}
