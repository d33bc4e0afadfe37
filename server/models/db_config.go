package models

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Daskott/contactbook/server/logger"
	"github.com/Daskott/contactbook/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "contactbook.db"

var logg = logger.NewLogger()
var db *gorm.DB

// AutoMigrate opens the database under 'dbRootDir' & migrates the schema.
// A non-empty 'passPhrase' opens an encrypted (sqlcipher) database.
func AutoMigrate(passPhrase string, dbRootDir string) error {
	err := openDB(passPhrase, dbRootDir)
	if err != nil {
		return err
	}

	return migrate()
}

// InitializeTestDb points the package at a fresh in-memory database
func InitializeTestDb() {
	var err error

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err = gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		log.Panicf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err = migrate(); err != nil {
		log.Panic(err)
	}
}

// CloseDB closes the underlying connection pool
func CloseDB() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Checkpoint flushes the write-ahead log into the main database file
func Checkpoint() error {
	return errors.Wrap(db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error, "checkpoint")
}

func DbFilePath(dbRootDir string) string {
	return filepath.Join(dbRootDir, "db", DB_NAME)
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//
func openDB(passPhrase string, dbRootDir string) error {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return fmt.Errorf("failed to create db directory: %v", err)
	}
	dbFilePath := filepath.Join(dbDir, DB_NAME)

	dialector := sqlite.Open(plainDSN(dbFilePath))
	if passPhrase != "" {
		dialector = sqliteEncrypt.Open(encryptedDSN(dbFilePath, passPhrase))
	} else {
		logg.Warn("sqlite.passPhrase is not set, database will not be encrypted")
	}

	db, err = gorm.Open(dialector, gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	// sqlite allows a single writer
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return nil
}

func migrate() error {
	err := db.AutoMigrate(
		&User{}, &Token{},
		&Person{}, &PhoneNumber{}, &EmailAddress{},
	)
	return errors.Wrap(err, "auto-migrate")
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

func plainDSN(dbFilePath string) string {
	return fmt.Sprintf("file:%v?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbFilePath)
}

func encryptedDSN(dbFilePath, passPhrase string) string {
	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000",
		dbFilePath,
		url.QueryEscape(passPhrase),
	)
}
