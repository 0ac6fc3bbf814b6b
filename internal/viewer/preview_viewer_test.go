package viewer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

func sampleCloud(colored bool) *data.Cloud {
	cloud := data.NewCloud(0, colored)
	for i := 0; i < 10; i++ {
		f := float64(i)
		cloud.Append(r3.Vector{X: f, Y: 2 * f, Z: f / 2}, data.Color{R: f / 10, G: 0.5, B: 1 - f/10})
	}
	return cloud
}

func writeFakeViewer(t *testing.T, dir string) (string, string) {
	t.Helper()

	marker := filepath.Join(dir, "opened")
	script := filepath.Join(dir, "fake_viewer.sh")
	content := "#!/bin/sh\necho \"$@\" > \"" + marker + "\"\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0755))

	return script, marker
}

func TestRenderPreview(t *testing.T) {
	for _, colored := range []bool{true, false} {
		imagePath := filepath.Join(t.TempDir(), "preview", "cloud.png")

		require.NoError(t, RenderPreview(sampleCloud(colored), "test", imagePath))

		info, err := os.Stat(imagePath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderPreviewEmptyCloud(t *testing.T) {
	err := RenderPreview(data.NewCloud(0, false), "empty", filepath.Join(t.TempDir(), "empty.png"))
	assert.Error(t, err)
}

func TestShowWithoutViewerCommand(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "cloud.png")

	require.NoError(t, NewPreviewViewer(imagePath, "").Show(sampleCloud(true), "test"))
	assert.FileExists(t, imagePath)
}

func TestShowWaitsForViewer(t *testing.T) {
	dir := t.TempDir()
	script, marker := writeFakeViewer(t, dir)
	imagePath := filepath.Join(dir, "cloud.png")

	require.NoError(t, NewPreviewViewer(imagePath, script+" --fullscreen").Show(sampleCloud(false), "test"))

	// the viewer has already exited when Show returns
	out, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "--fullscreen "+imagePath, strings.TrimSpace(string(out)))
}

func TestShowReportsViewerFailure(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "cloud.png")

	err := NewPreviewViewer(imagePath, "false").Show(sampleCloud(true), "test")
	assert.Error(t, err)
}

func TestPreviewIndices(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, previewIndices(3, 10))
	assert.Equal(t, []int{0, 3, 6, 9}, previewIndices(10, 4))
	assert.Empty(t, previewIndices(0, 4))
}

func TestElevationColor(t *testing.T) {
	low := ElevationColor(0)
	high := ElevationColor(1)

	assert.InDelta(t, 1.0, low.B, 1e-9)
	assert.InDelta(t, 0.0, low.R, 1e-9)
	assert.InDelta(t, 1.0, high.R, 1e-9)
	assert.InDelta(t, 0.0, high.B, 1e-9)
	assert.Equal(t, ElevationColor(1), ElevationColor(5))
}
