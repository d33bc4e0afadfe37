package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const TOKEN_ISSUER = "contactbook"

// PasswordHashCost is the bcrypt cost used by HashPassword. It is set once at startup.
var PasswordHashCost = bcrypt.DefaultCost

type ContactBookTokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// UserID returns the numeric id stored in the subject claim
func (claims *ContactBookTokenClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %v", claims.Subject, err)
	}
	return uint(id), nil
}

// ExpiresAtTime returns the 'exp' claim as a time.Time
func (claims *ContactBookTokenClaims) ExpiresAtTime() time.Time {
	return time.Unix(claims.ExpiresAt, 0)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NewTokenClaims builds the claims for a token issued now & valid for 'ttl'
func NewTokenClaims(userID uint, email string, ttl time.Duration) ContactBookTokenClaims {
	now := time.Now()
	return ContactBookTokenClaims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    TOKEN_ISSUER,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
}

func EncodeJWT(claims ContactBookTokenClaims, keyPair *key.KeyPair) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = keyPair.Kid

	tokenString, err := token.SignedString(keyPair.PrivateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeJWT(tokenString string, keyPair *key.KeyPair) (*ContactBookTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ContactBookTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return keyPair.PublicKey, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*ContactBookTokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to ContactBookTokenClaims")
	}

	if tokenClaims.Issuer != TOKEN_ISSUER {
		return nil, fmt.Errorf("invalid jwt: unexpected issuer %q", tokenClaims.Issuer)
	}

	return tokenClaims, nil
}
