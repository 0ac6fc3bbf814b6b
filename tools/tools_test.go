package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

func TestFmtJSONString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, FmtJSONString(map[string]int{"a": 1}))
	assert.Equal(t, "marshal data fail", FmtJSONString(make(chan int)))
}

func TestCreateDirectoryIfDoesNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, CreateDirectoryIfDoesNotExist(dir))
	assert.DirExists(t, dir)
	require.NoError(t, CreateDirectoryIfDoesNotExist(dir))
}

func TestHumanFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 2000), 0644))

	size, err := HumanFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, "2kB", size)

	_, err = HumanFileSize(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestGetLasFileToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.LAZ", "a.las", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	finder := NewStandardFileFinder()

	got, err := finder.GetLasFileToProcess(&voxelizer.VoxelizerOptions{Input: filepath.Join(dir, "b.LAZ")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.LAZ"), got)

	got, err = finder.GetLasFileToProcess(&voxelizer.VoxelizerOptions{Input: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.las"), got)

	_, err = finder.GetLasFileToProcess(&voxelizer.VoxelizerOptions{Input: filepath.Join(dir, "notes.txt")})
	assert.ErrorContains(t, err, "do not know how to read file")

	_, err = finder.GetLasFileToProcess(&voxelizer.VoxelizerOptions{Input: filepath.Join(dir, "missing.las")})
	assert.ErrorContains(t, err, "not found")

	_, err = finder.GetLasFileToProcess(&voxelizer.VoxelizerOptions{Input: t.TempDir()})
	assert.ErrorContains(t, err, "no las/laz file")
}
