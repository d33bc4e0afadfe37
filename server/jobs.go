package server

import (
	"context"
	"errors"
	"time"

	"github.com/Daskott/contactbook/server/cron"
	"github.com/Daskott/contactbook/server/gstorage"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/shared"
	"github.com/Daskott/contactbook/utils"
)

const (
	REAP_TOKENS_JOB   = "reapExpiredTokens"
	BACKUP_SQLITE_JOB = "backupSqliteDb"

	REAP_TOKENS_INTERVAL = time.Hour
	STORAGE_TIMEOUT      = 50 * time.Second
)

// FileStorage is where sqlite backups are kept
type FileStorage interface {
	UploadFile(ctx context.Context, filePath string) error
	DownloadFile(ctx context.Context, destFilePath string) error
}

func reapExpiredTokens() error {
	count, err := models.DeleteExpiredTokens(time.Now())
	if err != nil {
		return err
	}

	if count > 0 {
		logg.Infof("removed %v expired token(s)", count)
		reapedTokensTotal.Add(float64(count))
	}
	return nil
}

// backupSqliteDb returns a job that flushes the WAL & uploads the db file at 'dbFilePath'
func backupSqliteDb(storage FileStorage, dbFilePath string) cron.Job {
	return func() error {
		if err := models.Checkpoint(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), STORAGE_TIMEOUT)
		defer cancel()

		return storage.UploadFile(ctx, dbFilePath)
	}
}

// restoreSqliteDb pulls the last backup into 'dbFilePath' when no local db exists yet
func restoreSqliteDb(storage FileStorage, dbFilePath string) error {
	exists, err := utils.FileExist(dbFilePath)
	if err != nil || exists {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), STORAGE_TIMEOUT)
	defer cancel()

	err = storage.DownloadFile(ctx, dbFilePath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Info("no sqlite backup found, starting with an empty database")
		return nil
	}

	return err
}

func scheduleJobs(scheduler *cron.Scheduler, config *shared.ServerConfig, storage FileStorage, dbFilePath string) error {
	err := scheduler.Every(REAP_TOKENS_INTERVAL, REAP_TOKENS_JOB, reapExpiredTokens)
	if err != nil {
		return err
	}

	if storage == nil || !config.Google.Storage.EnableSqliteBackupAndSync {
		return nil
	}

	return scheduler.PeriodicallyPerform(
		config.Google.Storage.SqliteBackupSchedule,
		BACKUP_SQLITE_JOB,
		backupSqliteDb(storage, dbFilePath),
	)
}
