package auth

import (
	"testing"
	"time"

	"conectar_backend/internal/common"
	"conectar_backend/internal/config"
	"conectar_backend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService(secret string, expiry time.Duration) *JWTService {
	cfg := &config.Config{JWTSecret: secret, JWTAccessTokenExpiryMinutes: expiry, JWTIssuer: "conectar-api"}
	return NewJWTService(cfg, zap.NewNop()).(*JWTService)
}

func testUser() *user.User {
	u := &user.User{Name: "Ana", Email: "ana@x.com", Role: common.RoleAdmin}
	u.ID = uuid.New()
	return u
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService("secret", time.Hour)
	u := testUser()

	token, expiresAt, err := svc.GenerateAccessToken(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, common.RoleAdmin, claims.Role)
	assert.Equal(t, "conectar-api", claims.Issuer)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService("one", time.Hour).GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = newTestJWTService("two", time.Hour).ValidateToken(token)
	assert.EqualError(t, err, "token signature is invalid")
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService("secret", time.Minute)
	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.EqualError(t, err, "token has expired")
}

func TestJWTService_NoExpiry(t *testing.T) {
	svc := newTestJWTService("secret", 0)
	token, expiresAt, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())

	svc.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJWTService("secret", time.Hour)
	u := testUser()
	claims := jwt.MapClaims{"sub": u.ID.String(), "email": u.Email, "role": u.Role}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(none)
	assert.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(hs512)
	assert.Error(t, err)
}

func TestJWTService_Malformed(t *testing.T) {
	_, err := newTestJWTService("secret", time.Hour).ValidateToken("not-a-jwt")
	assert.EqualError(t, err, "token is malformed")
}

func TestJWTService_RejectsNonUUIDSubject(t *testing.T) {
	svc := newTestJWTService("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorContains(t, err, "invalid subject claim")
}
