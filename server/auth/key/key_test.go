package key

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyPairFromRSAPrivateKeyPem(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(privateKey)
	assert.Nil(t, err)

	pemBlocks := map[string][]byte{
		"pkcs1": pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)}),
		"pkcs8": pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}),
	}

	for name, pemBlock := range pemBlocks {
		t.Run(name, func(t *testing.T) {
			keyPair, err := NewKeyPairFromRSAPrivateKeyPem(pemBlock)
			assert.Nil(t, err)
			assert.Equal(t, privateKey.PublicKey.N, keyPair.PublicKey.N)
			assert.NotEmpty(t, keyPair.Kid)
		})
	}

	_, err = NewKeyPairFromRSAPrivateKeyPem([]byte("not a pem"))
	assert.NotNil(t, err)
}

func TestExportJWKAsJWKS(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	keyPair, err := NewKeyPair(privateKey)
	assert.Nil(t, err)

	publicJWK, err := keyPair.JWK()
	assert.Nil(t, err)

	jwksBytes, err := json.Marshal(ExportJWKAsJWKS(publicJWK))
	assert.Nil(t, err)

	jwks := struct {
		Keys []map[string]interface{} `json:"keys"`
	}{}
	assert.Nil(t, json.Unmarshal(jwksBytes, &jwks))
	assert.Len(t, jwks.Keys, 1)
	assert.Equal(t, "RSA", jwks.Keys[0]["kty"])
	assert.Equal(t, "RS256", jwks.Keys[0]["alg"])
	assert.Equal(t, keyPair.Kid, jwks.Keys[0]["kid"])
	assert.NotContains(t, jwks.Keys[0], "d", "Expected no private key material")
}
