package pkg

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ecopia-map/las_voxelizer/internal/converters/color"
	"github.com/ecopia-map/las_voxelizer/internal/data"
	"github.com/ecopia-map/las_voxelizer/internal/geometry"
	"github.com/ecopia-map/las_voxelizer/internal/io"
	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
	"github.com/ecopia-map/las_voxelizer/pkg/algorithm_manager"
	"github.com/ecopia-map/las_voxelizer/tools"
)

const Generator = "las_voxelizer"

type IVoxelizer interface {
	RunVoxelizer(opts *voxelizer.VoxelizerOptions) error
}

type Voxelizer struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewVoxelizer(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IVoxelizer {
	return &Voxelizer{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Runs load, color normalization, sampling, voxel reduction, optional preview and PLY export
func (v *Voxelizer) RunVoxelizer(opts *voxelizer.VoxelizerOptions) error {
	defer v.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	if err := opts.Validate(); err != nil {
		return err
	}

	filePath, err := v.fileFinder.GetLasFileToProcess(opts)
	if err != nil {
		return err
	}

	cloud, err := v.readLasData(filePath, opts)
	if err != nil {
		return err
	}

	sampled := v.sample(cloud, opts)

	reduced, err := v.reduce(sampled)
	if err != nil {
		return err
	}

	v.logExtent(reduced, opts)

	if opts.Visualize && reduced.Len() == 0 {
		tools.LogOutput("> empty point cloud, skipping preview")
	} else if opts.Visualize {
		tools.LogOutput("> rendering preview...")
		title := fmt.Sprintf("%s, voxel size %s", filepath.Base(filePath), voxelizer.FormatOutputPath(voxelizer.VoxelSizePlaceholder, opts.VoxelSize))
		if err := v.algorithmManager.GetViewerAlgorithm().Show(reduced, title); err != nil {
			return err
		}
	}

	return v.exportPly(reduced, filePath, opts)
}

func (v *Voxelizer) readLasData(filePath string, opts *voxelizer.VoxelizerOptions) (*data.Cloud, error) {
	tools.LogOutput("> reading data from las file...", filepath.Base(filePath))
	start := time.Now()

	raw, err := v.algorithmManager.GetLoaderAlgorithm().LoadLasFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load %s", filePath)
	}
	tools.LogOutput(fmt.Sprintf("> loaded %d points in %s", raw.Len(), time.Since(start)))

	if raw.HasColor() {
		tools.LogOutput("> normalizing", opts.GetColorDepth().String(), "colors")
	}
	return color.NormalizeCloud(raw, opts.GetColorDepth()), nil
}

func (v *Voxelizer) sample(cloud *data.Cloud, opts *voxelizer.VoxelizerOptions) *data.Cloud {
	if opts.Fraction >= 1 {
		return cloud
	}

	sampled := v.algorithmManager.GetSamplerAlgorithm().Sample(cloud)
	tools.LogOutput(fmt.Sprintf("> random sampling retained %d of %d points", sampled.Len(), cloud.Len()))
	return sampled
}

func (v *Voxelizer) reduce(cloud *data.Cloud) (*data.Cloud, error) {
	tools.LogOutput("> building voxel grid...")

	reducer, err := v.algorithmManager.GetReducerAlgorithm()
	if err != nil {
		return nil, err
	}
	reducer.AddCloud(cloud)
	if err := reducer.Build(); err != nil {
		return nil, err
	}

	stats := reducer.Stats()
	tools.LogOutput(fmt.Sprintf("> voxel reduction: %d -> %d points, %.2f points per cell (std dev %.2f, max %d)",
		stats.InputPoints, stats.OutputPoints, stats.MeanPointsPerCell, stats.StdDevPointsPerCell, stats.MaxPointsPerCell))

	return reducer.Cloud(), nil
}

// Logs the extent of the cloud in the target reference system. Positions are left untouched.
func (v *Voxelizer) logExtent(cloud *data.Cloud, opts *voxelizer.VoxelizerOptions) {
	bbox := geometry.NewBoundingBoxFromPositions(cloud.Positions)
	if bbox == nil {
		return
	}
	tools.LogOutput(fmt.Sprintf("> extent EPSG:%d x [%f, %f] y [%f, %f] z [%f, %f]",
		opts.Srid, bbox.Xmin, bbox.Xmax, bbox.Ymin, bbox.Ymax, bbox.Zmin, bbox.Zmax))

	if opts.TargetSrid == 0 || opts.TargetSrid == opts.Srid {
		return
	}
	converted, err := v.algorithmManager.GetCoordinateConverterAlgorithm().ConvertBoundingBoxSrid(opts.Srid, opts.TargetSrid, bbox)
	if err != nil {
		glog.Warningf("cannot report extent in EPSG:%d: %v", opts.TargetSrid, err)
		return
	}
	tools.LogOutput(fmt.Sprintf("> extent EPSG:%d x [%f, %f] y [%f, %f]",
		opts.TargetSrid, converted.Xmin, converted.Xmax, converted.Ymin, converted.Ymax))
}

func (v *Voxelizer) exportPly(cloud *data.Cloud, sourcePath string, opts *voxelizer.VoxelizerOptions) error {
	outputPath := opts.OutputPath()
	tools.LogOutput("> writing", outputPath)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := tools.CreateDirectoryIfDoesNotExist(dir); err != nil {
			return errors.Wrapf(err, "cannot create output directory %s", dir)
		}
	}

	comments := []string{
		"generator " + Generator,
		"run_id " + uuid.NewString(),
		"source " + filepath.Base(sourcePath),
		"voxel_size " + voxelizer.FormatOutputPath(voxelizer.VoxelSizePlaceholder, opts.VoxelSize),
	}
	if err := io.WritePlyFile(outputPath, cloud, comments...); err != nil {
		return errors.Wrapf(err, "cannot write %s", outputPath)
	}

	if size, err := tools.HumanFileSize(outputPath); err == nil {
		tools.LogOutput(fmt.Sprintf("> done, %d points written to %s (%s)", cloud.Len(), outputPath, size))
	}
	return nil
}
