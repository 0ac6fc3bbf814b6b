package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

var supportedExtensions = map[string]bool{
	".las": true,
	".laz": true,
}

// Resolves the point cloud file the voxelizer has to process
type FileFinder interface {
	GetLasFileToProcess(opts *voxelizer.VoxelizerOptions) (string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

// Returns the input file if it is a las/laz file. If the input is a folder, the first las/laz file
// in it (in lexical order, not recursing) is returned.
func (f *StandardFileFinder) GetLasFileToProcess(opts *voxelizer.VoxelizerOptions) (string, error) {
	info, err := os.Stat(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("input file %s not found", opts.Input)
		}
		return "", errors.Wrapf(err, "cannot access %s", opts.Input)
	}

	if !info.IsDir() {
		if !IsPointCloudFile(opts.Input) {
			return "", errors.Errorf("do not know how to read file %s, expected a .las or .laz file", opts.Input)
		}
		return opts.Input, nil
	}

	return f.getLasFileFromInputFolder(opts.Input)
}

func (f *StandardFileFinder) getLasFileFromInputFolder(folder string) (string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", errors.Wrapf(err, "cannot list %s", folder)
	}

	var lasFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && IsPointCloudFile(entry.Name()) {
			lasFiles = append(lasFiles, filepath.Join(folder, entry.Name()))
		}
	}

	if len(lasFiles) == 0 {
		return "", errors.Errorf("no las/laz file found in %s", folder)
	}
	sort.Strings(lasFiles)

	return lasFiles[0], nil
}

func IsPointCloudFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
