package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Daskott/contactbook/server"
	"github.com/stretchr/testify/assert"
)

func TestServerConfig(t *testing.T) {
	t.Run("dev config", func(t *testing.T) {
		config, err := serverConfig("", true)
		assert.Nil(t, err)

		loaded, err := server.LoadConfig(config)
		assert.Nil(t, err)
		assert.Equal(t, 3000, loaded.ContactBook.Listener.Port)
		assert.False(t, loaded.Google.Storage.EnableSqliteBackupAndSync)
	})

	t.Run("config file with env override", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "server.yml")
		err := os.WriteFile(configFile, []byte(`
contactbook:
  privateKeyPem: "pem"
  listener:
    port: 3000
`), 0600)
		assert.Nil(t, err)

		t.Setenv("CONTACTBOOK_LISTENER_PORT", "8080")

		config, err := serverConfig(configFile, false)
		assert.Nil(t, err)

		loaded, err := server.LoadConfig(config)
		assert.Nil(t, err)
		assert.Equal(t, 8080, loaded.ContactBook.Listener.Port)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := serverConfig("", false)
		assert.NotNil(t, err)

		_, err = serverConfig(filepath.Join(t.TempDir(), "missing.yml"), false)
		assert.NotNil(t, err)
	})
}
