package key

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/lestrrat-go/jwx/jwk"
)

type JWKS struct {
	Keys []interface{} `json:"keys"`
}

type KeyPair struct {
	Kid        string
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

// NewKeyPairFromRSAPrivateKeyPem parses a PKCS1 or PKCS8 PEM encoded RSA private key
func NewKeyPairFromRSAPrivateKeyPem(privateKeyPem []byte) (*KeyPair, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPem)
	if err != nil {
		return nil, fmt.Errorf("unable to parse RSA private key: %v", err)
	}

	return NewKeyPair(privateKey)
}

// NewKeyPair wraps 'privateKey', using the RFC 7638 thumbprint of its public half as key id
func NewKeyPair(privateKey *rsa.PrivateKey) (*KeyPair, error) {
	publicJWK, err := jwk.New(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("NewKeyPair: %v", err)
	}

	thumbprint, err := publicJWK.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("NewKeyPair: %v", err)
	}

	return &KeyPair{
		Kid:        base64.RawURLEncoding.EncodeToString(thumbprint),
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey}, nil
}

// JWK returns the public key as a signing JWK
func (keyPair *KeyPair) JWK() (jwk.Key, error) {
	keyPairJWK, err := jwk.New(keyPair.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("JWK: %v", err)
	}

	for name, value := range map[string]interface{}{
		jwk.KeyIDKey:     keyPair.Kid,
		jwk.AlgorithmKey: "RS256",
		jwk.KeyUsageKey:  "sig",
	} {
		if err := keyPairJWK.Set(name, value); err != nil {
			return nil, fmt.Errorf("JWK: %v", err)
		}
	}

	return keyPairJWK, nil
}

func ExportJWKAsJWKS(jwk jwk.Key) JWKS {
	return JWKS{Keys: []interface{}{jwk}}
}
