package server

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := readTestConfig(t, `
contactbook:
  privateKeyPem: "pem"
  listener:
    port: 3000
`)
		serverConfig, err := LoadConfig(config)
		assert.Nil(t, err)
		assert.Equal(t, DEFAULT_TOKEN_TTL_IN_HOURS, serverConfig.ContactBook.TokenTTLInHours)
		assert.Equal(t, bcrypt.DefaultCost, serverConfig.ContactBook.BcryptCost)
		assert.Equal(t, "UTC", serverConfig.ContactBook.Cron.TimeZone)
		assert.Equal(t, []string{"*"}, serverConfig.ContactBook.Cors.AllowedOrigins)
		assert.Equal(t, "", serverConfig.Sqlite.PassPhrase)
	})

	t.Run("missing private key", func(t *testing.T) {
		config := readTestConfig(t, `
contactbook:
  listener:
    port: 3000
`)
		_, err := LoadConfig(config)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "PrivateKeyPem")
	})

	t.Run("backups need a bucket", func(t *testing.T) {
		config := readTestConfig(t, `
contactbook:
  privateKeyPem: "pem"
  listener:
    port: 3000
google:
  storage:
    sqliteBackupSchedule: "0 * * * *"
    enableSqliteBackupAndSync: true
`)
		_, err := LoadConfig(config)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "Bucket")
	})

	t.Run("zero token ttl", func(t *testing.T) {
		config := readTestConfig(t, `
contactbook:
  privateKeyPem: "pem"
  tokenTTLInHours: 0
  listener:
    port: 3000
`)
		_, err := LoadConfig(config)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "TokenTTLInHours")
	})

	t.Run("invalid bcrypt cost", func(t *testing.T) {
		config := readTestConfig(t, `
contactbook:
  privateKeyPem: "pem"
  bcryptCost: 2
  listener:
    port: 3000
`)
		_, err := LoadConfig(config)
		assert.NotNil(t, err)
	})
}

func readTestConfig(t *testing.T, yml string) *viper.Viper {
	t.Helper()

	config := viper.New()
	config.SetConfigType("yaml")
	if err := config.ReadConfig(strings.NewReader(yml)); err != nil {
		t.Fatal(err)
	}
	return config
}
