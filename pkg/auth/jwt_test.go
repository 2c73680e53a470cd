package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey:  "test-secret",
		Issuer:     "forzeit-api",
		Audience:   []string{"forzeit-clients"},
		ExpiryTime: time.Hour,
	}
}

func TestJWT_RoundTrip(t *testing.T) {
	generator, err := NewJWTGenerator(testConfig())
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	token, err := generator.GenerateToken("u1", "alice@example.com", "Alice")
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_Rejections(t *testing.T) {
	validator, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := validator.ValidateToken("Bearer   ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.SecretKey = "other"
		generator, err := NewJWTGenerator(cfg)
		require.NoError(t, err)
		token, err := generator.GenerateToken("u1", "", "")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		generator, err := NewJWTGenerator(testConfig())
		require.NoError(t, err)
		generator.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := generator.GenerateToken("u1", "", "")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		cfg := testConfig()
		cfg.Audience = []string{"someone-else"}
		generator, err := NewJWTGenerator(cfg)
		require.NoError(t, err)
		token, err := generator.GenerateToken("u1", "", "")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		cfg := testConfig()
		cfg.Issuer = "elsewhere"
		generator, err := NewJWTGenerator(cfg)
		require.NoError(t, err)
		token, err := generator.GenerateToken("u1", "", "")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": "forzeit-api",
			"aud": []string{"forzeit-clients"},
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestJWT_ConfigErrors(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)

	_, err = NewJWTGenerator(JWTConfig{})
	assert.Error(t, err)

	generator, err := NewJWTGenerator(JWTConfig{SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, generator.ExpiryTime())

	_, err = generator.GenerateToken("", "", "")
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
