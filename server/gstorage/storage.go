package gstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/Daskott/contactbook/server/logger"
	"google.golang.org/api/option"
)

var ErrObjectNotExist = storage.ErrObjectNotExist

var logg = logger.NewLogger()

type GStorage struct {
	storageClient *storage.Client
	bucket        string
	prefix        string
}

// NewGStorage returns a client for 'bucket'. Object names are joined to 'prefix'.
// Without a credentials file the application default credentials are used.
func NewGStorage(ctx context.Context, credentialsFilePath, bucket, prefix string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("NewGStorage: %v", err)
	}

	return &GStorage{storageClient: client, bucket: bucket, prefix: prefix}, nil
}

func (gs *GStorage) ObjectName(fileName string) string {
	return path.Join(gs.prefix, fileName)
}

// UploadFile uploads the file at 'filePath' under its base name
func (gs *GStorage) UploadFile(ctx context.Context, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("os.Open: %v", err)
	}
	defer f.Close()

	object := gs.ObjectName(filepath.Base(filePath))
	wc := gs.storageClient.Bucket(gs.bucket).Object(object).NewWriter(ctx)
	if _, err = io.Copy(wc, f); err != nil {
		wc.Close()
		return fmt.Errorf("io.Copy: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}

	logg.Infof("blob %v uploaded to bucket %v", object, gs.bucket)
	return nil
}

// DownloadFile downloads the object named after 'destFilePath' into it.
// ErrObjectNotExist is returned as is & leaves 'destFilePath' untouched.
func (gs *GStorage) DownloadFile(ctx context.Context, destFilePath string) error {
	object := gs.ObjectName(filepath.Base(destFilePath))

	rc, err := gs.storageClient.Bucket(gs.bucket).Object(object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrObjectNotExist
	}
	if err != nil {
		return fmt.Errorf("Object(%q).NewReader: %v", object, err)
	}
	defer rc.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destFilePath), filepath.Base(destFilePath)+".*.download")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, rc); err != nil {
		tmpFile.Close()
		return fmt.Errorf("io.Copy: %v", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("f.Close: %v", err)
	}
	if err = os.Rename(tmpFile.Name(), destFilePath); err != nil {
		return fmt.Errorf("os.Rename: %v", err)
	}

	logg.Infof("blob %v downloaded to local file %v", object, destFilePath)
	return nil
}

func (gs *GStorage) Close() error {
	return gs.storageClient.Close()
}
