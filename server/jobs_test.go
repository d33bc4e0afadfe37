package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Daskott/contactbook/server/cron"
	"github.com/Daskott/contactbook/server/gstorage"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/shared"
	"github.com/stretchr/testify/assert"
)

type fakeStorage struct {
	uploaded    []string
	downloaded  []string
	downloadErr error
}

func (storage *fakeStorage) UploadFile(ctx context.Context, filePath string) error {
	storage.uploaded = append(storage.uploaded, filePath)
	return nil
}

func (storage *fakeStorage) DownloadFile(ctx context.Context, destFilePath string) error {
	storage.downloaded = append(storage.downloaded, destFilePath)
	return storage.downloadErr
}

func TestReapExpiredTokens(t *testing.T) {
	models.InitializeTestDb()

	user := models.User{Email: "a@x.com", Password: "password1"}
	assert.Nil(t, models.CreateUser(&user))
	assert.Nil(t, user.SaveToken("expired", time.Now().Add(-time.Hour)))

	assert.Nil(t, reapExpiredTokens())

	_, err := user.StoredToken()
	assert.NotNil(t, err, "Expected expired token to be removed")
}

func TestBackupSqliteDb(t *testing.T) {
	models.InitializeTestDb()
	storage := &fakeStorage{}

	assert.Nil(t, backupSqliteDb(storage, "/tmp/contactbook.db")())
	assert.Equal(t, []string{"/tmp/contactbook.db"}, storage.uploaded)
}

func TestRestoreSqliteDb(t *testing.T) {
	dbFilePath := filepath.Join(t.TempDir(), models.DB_NAME)

	t.Run("no backup", func(t *testing.T) {
		storage := &fakeStorage{downloadErr: gstorage.ErrObjectNotExist}
		assert.Nil(t, restoreSqliteDb(storage, dbFilePath))
		assert.Equal(t, []string{dbFilePath}, storage.downloaded)
	})

	t.Run("local db exists", func(t *testing.T) {
		existingDbFilePath := filepath.Join(t.TempDir(), models.DB_NAME)
		assert.Nil(t, os.WriteFile(existingDbFilePath, []byte("db"), 0600))

		storage := &fakeStorage{}
		assert.Nil(t, restoreSqliteDb(storage, existingDbFilePath))
		assert.Empty(t, storage.downloaded, "Expected local db to be kept")
	})
}

func TestScheduleJobs(t *testing.T) {
	config := &shared.ServerConfig{}
	config.Google.Storage.SqliteBackupSchedule = "0 */6 * * *"

	scheduler := cron.NewScheduler("UTC")
	assert.Nil(t, scheduleJobs(scheduler, config, nil, ""))
	assert.Equal(t, 1, scheduler.JobCount(), "Expected only the token reaper without storage")

	config.Google.Storage.EnableSqliteBackupAndSync = true
	scheduler = cron.NewScheduler("UTC")
	assert.Nil(t, scheduleJobs(scheduler, config, &fakeStorage{}, "/tmp/contactbook.db"))
	assert.Equal(t, 2, scheduler.JobCount())
}
