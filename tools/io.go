package tools

import (
	"os"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}

// Returns the size of the file in a human readable form, eg. "12.3MB"
func HumanFileSize(filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "cannot stat %s", filePath)
	}
	return units.HumanSize(float64(info.Size())), nil
}
