package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	PasswordHashCost = bcrypt.MinCost

	hash, err := HashPassword("password1")
	assert.Nil(t, err)
	assert.NotEqual(t, "password1", hash)
	assert.True(t, CheckPasswordHash("password1", hash))
	assert.False(t, CheckPasswordHash("password2", hash))
}

func TestEncodeAndDecodeJWT(t *testing.T) {
	keyPair := newTestKeyPair(t)

	claims := NewTokenClaims(42, "a@x.com", time.Hour)
	token, err := EncodeJWT(claims, keyPair)
	assert.Nil(t, err)

	decoded, err := DecodeJWT(token, keyPair)
	assert.Nil(t, err)
	assert.Equal(t, "a@x.com", decoded.Email)
	assert.Equal(t, claims.Id, decoded.Id)
	assert.NotEmpty(t, decoded.Id)

	userID, err := decoded.UserID()
	assert.Nil(t, err)
	assert.Equal(t, uint(42), userID)

	t.Run("expired token", func(t *testing.T) {
		token, err := EncodeJWT(NewTokenClaims(42, "a@x.com", -time.Minute), keyPair)
		assert.Nil(t, err)

		_, err = DecodeJWT(token, keyPair)
		assert.NotNil(t, err)
	})

	t.Run("token signed by another key", func(t *testing.T) {
		token, err := EncodeJWT(claims, newTestKeyPair(t))
		assert.Nil(t, err)

		_, err = DecodeJWT(token, keyPair)
		assert.NotNil(t, err)
	})

	t.Run("token with another signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		assert.Nil(t, err)

		_, err = DecodeJWT(token, keyPair)
		assert.NotNil(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeJWT("not-a-token", keyPair)
		assert.NotNil(t, err)
	})
}

func newTestKeyPair(t *testing.T) *key.KeyPair {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	keyPair, err := key.NewKeyPair(privateKey)
	if err != nil {
		t.Fatal(err)
	}
	return keyPair
}
