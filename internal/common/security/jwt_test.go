package security

import (
	"testing"
	"time"

	"user_hub/internal/domain/model"
	"user_hub/internal/platform/config"

	"github.com/stretchr/testify/require"
)

func setupJWT(t *testing.T, exp time.Duration) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: exp,
	}
	InitJWT()
}

func TestGenerateAndDecodeToken(t *testing.T) {
	setupJWT(t, time.Hour)

	token, err := GenerateToken("user-1", model.RoleAuthenticated)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := DecodeToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
	require.Equal(t, model.RoleAuthenticated, role)
}

func TestDecodeToken_RoleBoundAtIssuance(t *testing.T) {
	setupJWT(t, time.Hour)

	token, err := GenerateToken("user-2", model.RoleAdmin)
	require.NoError(t, err)

	_, role, err := DecodeToken(token)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, role)
}

func TestDecodeToken_Expired(t *testing.T) {
	setupJWT(t, -1*time.Minute)

	token, err := GenerateToken("user-1", model.RoleAuthenticated)
	require.NoError(t, err)

	_, _, err = DecodeToken(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	setupJWT(t, time.Hour)

	token, err := GenerateToken("user-1", model.RoleAuthenticated)
	require.NoError(t, err)

	config.AppConfig.JWTKey = []byte("other-secret")
	_, _, err = DecodeToken(token)
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestDecodeToken_Malformed(t *testing.T) {
	setupJWT(t, time.Hour)

	_, _, err := DecodeToken("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestDecodeToken_UnknownRoleClaim(t *testing.T) {
	setupJWT(t, time.Hour)

	token, err := GenerateToken("user-1", model.Role("SUPERUSER"))
	require.NoError(t, err)

	_, _, err = DecodeToken(token)
	require.ErrorIs(t, err, ErrTokenClaims)
}
