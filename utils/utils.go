package utils

import (
	"os"
)

// FileExist reports whether 'filePath' exists. Errors other than not-exist are returned.
func FileExist(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func CreateDirIfNotExist(dir string) error {
	return os.MkdirAll(dir, 0755)
}
