package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/contactbook/server/auth"
	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/Daskott/contactbook/server/cron"
	"github.com/Daskott/contactbook/server/gstorage"
	"github.com/Daskott/contactbook/server/logger"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/shared"
	"github.com/go-playground/validator"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const DEFAULT_TOKEN_TTL_IN_HOURS = 7 * 24

var logg = logger.NewLogger()

// LoadConfig fills in defaults, then decodes & validates the server config
func LoadConfig(config *viper.Viper) (*shared.ServerConfig, error) {
	config.SetDefault("contactbook.tokenTTLInHours", DEFAULT_TOKEN_TTL_IN_HOURS)
	config.SetDefault("contactbook.bcryptCost", bcrypt.DefaultCost)
	config.SetDefault("contactbook.cron.timeZone", "UTC")
	config.SetDefault("contactbook.cors.allowedOrigins", []string{"*"})

	serverConfig := shared.ServerConfig{}
	if err := config.Unmarshal(&serverConfig); err != nil {
		return nil, fmt.Errorf("unable to decode server config: %v", err)
	}

	if err := validator.New().Struct(serverConfig); err != nil {
		return nil, fmt.Errorf("invalid server config: %v", err)
	}

	return &serverConfig, nil
}

func Start(config *viper.Viper, devMode bool) {
	serverConfig, err := LoadConfig(config)
	fatalOnError(err)

	configDir, err := configDirectory(devMode)
	fatalOnError(err)

	auth.PasswordHashCost = serverConfig.ContactBook.BcryptCost

	var storage FileStorage
	dbFilePath := models.DbFilePath(configDir)
	if serverConfig.Google.Storage.EnableSqliteBackupAndSync {
		gStorage, err := gstorage.NewGStorage(
			context.Background(),
			serverConfig.Google.ApplicationCredentials,
			serverConfig.Google.Storage.Bucket,
			serverConfig.Google.Storage.Prefix,
		)
		fatalOnError(err)
		defer gStorage.Close()

		storage = gStorage
		_, err = models.DbDirectory(configDir)
		fatalOnError(err)
		fatalOnError(restoreSqliteDb(storage, dbFilePath))
	}

	fatalOnError(models.AutoMigrate(serverConfig.Sqlite.PassPhrase, configDir))

	keyPair, err := key.NewKeyPairFromRSAPrivateKeyPem([]byte(serverConfig.ContactBook.PrivateKeyPem))
	fatalOnError(err)

	scheduler := cron.NewScheduler(serverConfig.ContactBook.Cron.TimeZone)
	fatalOnError(scheduleJobs(scheduler, serverConfig, storage, dbFilePath))
	scheduler.Start()

	api := NewAPI(keyPair, time.Duration(serverConfig.ContactBook.TokenTTLInHours)*time.Hour)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%v", serverConfig.ContactBook.Listener.Port),
		Handler:           api.Router(serverConfig.ContactBook.Cors.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go serve(httpServer)

	// Wait for an interrupt
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	cleanup(scheduler, httpServer, storage, dbFilePath)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func cleanup(scheduler *cron.Scheduler, httpServer *http.Server, storage FileStorage, dbFilePath string) {
	scheduler.Stop()
	shutdown(httpServer)

	if storage != nil {
		if err := backupSqliteDb(storage, dbFilePath)(); err != nil {
			logg.Errorf("final sqlite backup failed: %v", err)
		}
	}

	if err := models.CloseDB(); err != nil {
		logg.Errorf("unable to close database: %v", err)
	}
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
