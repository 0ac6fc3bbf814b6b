package viewer

import (
	"bytes"
	"image/color"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ecopia-map/las_voxelizer/internal/data"
	"github.com/ecopia-map/las_voxelizer/internal/geometry"
	"github.com/ecopia-map/las_voxelizer/tools"
)

const (
	// above this many points the preview draws an evenly strided subset
	MaxPreviewPoints = 250000
	previewSize      = 8 * vg.Inch
)

// Renders a top-down view of the cloud into an image and optionally opens it with an external program,
// waiting for the program to exit.
type PreviewViewer struct {
	imagePath     string
	viewerCommand string
}

func NewPreviewViewer(imagePath string, viewerCommand string) Viewer {
	return &PreviewViewer{
		imagePath:     imagePath,
		viewerCommand: viewerCommand,
	}
}

func (v *PreviewViewer) Show(cloud *data.Cloud, title string) error {
	if err := RenderPreview(cloud, title, v.imagePath); err != nil {
		return err
	}
	tools.LogOutput("> preview rendered to", v.imagePath)

	if strings.TrimSpace(v.viewerCommand) == "" {
		return nil
	}

	return v.openViewer()
}

// Runs the viewer command on the preview image and blocks until it terminates
func (v *PreviewViewer) openViewer() error {
	args := strings.Fields(v.viewerCommand)
	args = append(args, v.imagePath)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	tools.LogOutput("> waiting for the viewer to be closed...")
	if err := cmd.Run(); err != nil {
		glog.Errorf("viewer failed, stdout: %s, stderr: %s", stdout.String(), stderr.String())
		return errors.Wrapf(err, "cannot run viewer %s", args[0])
	}
	glog.V(2).Infof("viewer exited, stdout: %s", stdout.String())

	return nil
}

// Draws the XY projection of the cloud into the given file. The image format follows the file extension.
func RenderPreview(cloud *data.Cloud, title string, imagePath string) error {
	if cloud == nil || cloud.Len() == 0 {
		return errors.New("cannot render an empty point cloud")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	indices := previewIndices(cloud.Len(), MaxPreviewPoints)
	xys := make(plotter.XYs, len(indices))
	for i, idx := range indices {
		xys[i].X = cloud.Positions[idx].X
		xys[i].Y = cloud.Positions[idx].Y
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "cannot build preview scatter")
	}

	colors := pointColors(cloud, indices)
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  colors[i],
			Radius: vg.Points(1),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(imagePath)); err != nil {
		return errors.Wrap(err, "cannot create preview directory")
	}
	if err := p.Save(previewSize, previewSize, imagePath); err != nil {
		return errors.Wrapf(err, "cannot save preview %s", imagePath)
	}

	return nil
}

// Picks at most max indices evenly spread over [0,n)
func previewIndices(n int, max int) []int {
	stride := 1
	if n > max {
		stride = (n + max - 1) / max
	}

	indices := make([]int, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		indices = append(indices, i)
	}
	return indices
}

// Uses the cloud colors when present, otherwise colors the points by elevation from blue (lowest) to red (highest)
func pointColors(cloud *data.Cloud, indices []int) []color.Color {
	colors := make([]color.Color, len(indices))

	if cloud.HasColor() {
		for i, idx := range indices {
			c := cloud.Colors[idx]
			colors[i] = colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
		}
		return colors
	}

	bbox := geometry.NewBoundingBoxFromPositions(cloud.Positions)
	height := bbox.Zmax - bbox.Zmin
	for i, idx := range indices {
		t := 0.0
		if height > 0 {
			t = (cloud.Positions[idx].Z - bbox.Zmin) / height
		}
		colors[i] = ElevationColor(t)
	}
	return colors
}

// Maps a relative elevation in [0,1] to a hue ramp going from blue to red
func ElevationColor(t float64) colorful.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return colorful.Hsv(240*(1-t), 1, 1)
}
