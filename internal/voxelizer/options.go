package voxelizer

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/las_voxelizer/internal/converters/color"
)

// Placeholder replaced by the voxel size in the output path template
const VoxelSizePlaceholder = "{voxel}"

const (
	DefaultInput         = "Data/427001_Prio_3_Meentstraat_Erichem_PC_RD.laz"
	DefaultOutput        = "voxel_downsampled_prio3_" + VoxelSizePlaceholder + ".ply"
	DefaultFraction      = 1.0
	DefaultVoxelSize     = 0.2
	DefaultSrid          = 28992
	DefaultTargetSrid    = 4326
	DefaultLaszipPath    = "laszip"
	DefaultPreviewPath   = "voxel_preview.png"
	DefaultInspectOffset = 2.5
)

type Command string

const (
	CommandVoxelize Command = "voxelize"
	CommandInspect  Command = "inspect"
)

func ParseCommand(value string) Command {
	normalizedValue := strings.Trim(strings.ToLower(value), " ")
	if normalizedValue == string(CommandVoxelize) {
		return CommandVoxelize
	} else if normalizedValue == string(CommandInspect) {
		return CommandInspect
	}
	return ""
}

// Contains the options needed for the voxelization pipeline
type VoxelizerOptions struct {
	Input          string  // Input LAS/LAZ file
	Output         string  // Output PLY path template, may contain {voxel}
	Fraction       float64 // Fraction of points retained by the random sampler, in (0,1]
	VoxelSize      float64 // Edge length of the voxel grid cells
	Seed           int64   // Seed of the random sampler
	EightBitColors bool    // if true assume that LAS uses 8bit color depth
	Srid           int     // EPSG code for SRID of input points
	TargetSrid     int     // EPSG code used to report the cloud extent
	LaszipPath     string  // laszip executable used to decompress LAZ input
	Visualize      bool    // Renders the reduced cloud before writing it
	PreviewPath    string  // Where the preview image is rendered
	ViewerCommand  string  // Program the preview is opened with, blocks until it exits

	Command        Command
	InspectOptions *InspectOptions
}

// Options specific to the inspect command
type InspectOptions struct {
	Index      int     // Index of the point to inspect, -1 to select by X/Y
	X          float64 // X of the point to look up when Index is -1
	Y          float64 // Y of the point to look up when Index is -1
	ZOffset    float64 // Vertical offset added to the reported height, in meters
	TargetSrid int     // EPSG code used to report the point coordinates
}

// Returns the options used when neither a config file nor flags override them
func DefaultVoxelizerOptions() *VoxelizerOptions {
	return &VoxelizerOptions{
		Input:       DefaultInput,
		Output:      DefaultOutput,
		Fraction:    DefaultFraction,
		VoxelSize:   DefaultVoxelSize,
		Seed:        time.Now().UnixNano(),
		Srid:        DefaultSrid,
		TargetSrid:  DefaultTargetSrid,
		LaszipPath:  DefaultLaszipPath,
		PreviewPath: DefaultPreviewPath,
		Command:     CommandVoxelize,
	}
}

func DefaultInspectOptions() *InspectOptions {
	return &InspectOptions{
		Index:      0,
		ZOffset:    DefaultInspectOffset,
		TargetSrid: DefaultTargetSrid,
	}
}

func (opt *VoxelizerOptions) GetColorDepth() color.Depth {
	if opt.EightBitColors {
		return color.Depth8Bit
	}
	return color.Depth16Bit
}

// Returns the output path with the voxel size placeholder replaced by the voxel size
func (opt *VoxelizerOptions) OutputPath() string {
	return FormatOutputPath(opt.Output, opt.VoxelSize)
}

// Replaces the voxel size placeholder in the template. The size is rendered through a decimal
// so that 0.2 does not turn into 0.20000000000000001.
func FormatOutputPath(template string, voxelSize float64) string {
	return strings.ReplaceAll(template, VoxelSizePlaceholder, decimal.NewFromFloat(voxelSize).String())
}

// Checks the options for the voxelize command
func (opt *VoxelizerOptions) Validate() error {
	if opt.Input == "" {
		return errors.New("input file not specified")
	}
	if opt.Output == "" {
		return errors.New("output path not specified")
	}
	if opt.Fraction <= 0 || opt.Fraction > 1 {
		return errors.Errorf("fraction must be in (0,1], got %v", opt.Fraction)
	}
	if opt.VoxelSize <= 0 {
		return errors.Errorf("voxel-size must be greater than 0, got %v", opt.VoxelSize)
	}
	if opt.Visualize && opt.PreviewPath == "" {
		return errors.New("preview path required when visualization is enabled")
	}
	return nil
}

// Checks the options for the inspect command
func (opt *VoxelizerOptions) ValidateInspect() error {
	if opt.Input == "" {
		return errors.New("input file not specified")
	}
	if opt.InspectOptions == nil {
		return errors.New("inspect options not specified")
	}
	if opt.InspectOptions.Index < -1 {
		return errors.Errorf("index must be positive, got %d", opt.InspectOptions.Index)
	}
	return nil
}

func (opt *VoxelizerOptions) Copy() *VoxelizerOptions {
	newOpt := *opt
	newOpt.InspectOptions = nil

	if opt.InspectOptions != nil {
		inspectOpt := *opt.InspectOptions
		newOpt.InspectOptions = &inspectOpt
	}

	return &newOpt
}
