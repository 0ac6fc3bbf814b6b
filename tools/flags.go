package tools

import (
	"flag"
	"io"

	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type FlagsForCommandVoxelize struct {
	Config         *string  `json:"config"`
	Input          *string  `json:"input"`
	Output         *string  `json:"output"`
	Fraction       *float64 `json:"fraction"`
	VoxelSize      *float64 `json:"voxel_size"`
	Seed           *int64   `json:"seed"`
	EightBitColors *bool    `json:"eight_bit_colors"`
	Srid           *int     `json:"srid"`
	TargetSrid     *int     `json:"target_srid"`
	LaszipPath     *string  `json:"laszip_path"`
	Visualize      *bool    `json:"visualize"`
	PreviewPath    *string  `json:"preview_path"`
	ViewerCommand  *string  `json:"viewer_command"`
	Silent         *bool    `json:"silent"`
	LogTimestamp   *bool    `json:"timestamp"`
	Help           *bool    `json:"help"`
	Version        *bool    `json:"version"`

	flagCommand *commandFlagSet
}

type FlagsForCommandInspect struct {
	Input      *string  `json:"input"`
	Index      *int     `json:"index"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Srid       *int     `json:"srid"`
	TargetSrid *int     `json:"target_srid"`
	ZOffset    *float64 `json:"zoffset"`
	Help       *bool    `json:"help"`

	flagCommand *commandFlagSet
}

// FlagSet remembering the long name of each shorthand so that explicitly set flags can be
// recognized whatever spelling was used
type commandFlagSet struct {
	*flag.FlagSet
	longNames map[string]string
	set       map[string]bool
}

func newCommandFlagSet(name string) *commandFlagSet {
	return &commandFlagSet{
		FlagSet:   flag.NewFlagSet(name, flag.ContinueOnError),
		longNames: make(map[string]string),
		set:       make(map[string]bool),
	}
}

func (f *commandFlagSet) parse(args []string) error {
	if err := f.Parse(args); err != nil {
		return err
	}
	f.Visit(func(fl *flag.Flag) {
		if long, ok := f.longNames[fl.Name]; ok {
			f.set[long] = true
		} else {
			f.set[fl.Name] = true
		}
	})
	return nil
}

func (f *commandFlagSet) isSet(name string) bool {
	return f != nil && f.set[name]
}

func (f *commandFlagSet) printDefaults(w io.Writer) {
	f.SetOutput(w)
	f.PrintDefaults()
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// -v is glog's verbosity on the global flag set
	version := defineBoolFlag("version", "", false, "Displays the version of las_voxelizer.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandVoxelize(args []string) (FlagsForCommandVoxelize, error) {
	flagCommand := newCommandFlagSet("command-voxelize")

	configPath := defineStringFlagCommand(flagCommand, "config", "", "", "Optional YAML file with the voxelize options. Flags given on the command line take precedence.")
	input := defineStringFlagCommand(flagCommand, "input", "i", voxelizer.DefaultInput, "Specifies the input las/laz file.")
	output := defineStringFlagCommand(flagCommand, "output", "o", voxelizer.DefaultOutput, "Output ply file. The "+voxelizer.VoxelSizePlaceholder+" placeholder is replaced by the voxel size.")
	fraction := defineFloat64FlagCommand(flagCommand, "fraction", "f", voxelizer.DefaultFraction, "Fraction of the points randomly retained before the voxel reduction, in (0,1].")
	voxelSize := defineFloat64FlagCommand(flagCommand, "voxel-size", "x", voxelizer.DefaultVoxelSize, "Edge length of the voxel grid cells, in the units of the input coordinates.")
	seed := defineInt64FlagCommand(flagCommand, "seed", "", 0, "Seed of the random sampler. Defaults to a time based seed.")
	eightBit := defineBoolFlagCommand(flagCommand, "8bit", "b", false, "Assumes the input LAS has colors encoded in eight bit format. Default is false (LAS has 16 bit color depth)")
	srid := defineIntFlagCommand(flagCommand, "srid", "e", voxelizer.DefaultSrid, "EPSG srid code of input points.")
	targetSrid := defineIntFlagCommand(flagCommand, "target-srid", "", voxelizer.DefaultTargetSrid, "EPSG srid code used to report the extent of the cloud. Points are never reprojected.")
	laszipPath := defineStringFlagCommand(flagCommand, "laszip", "", voxelizer.DefaultLaszipPath, "laszip executable used to decompress laz input.")
	visualize := defineBoolFlagCommand(flagCommand, "visualize", "w", false, "Renders the reduced cloud before writing it.")
	previewPath := defineStringFlagCommand(flagCommand, "preview", "", voxelizer.DefaultPreviewPath, "Image where the preview is rendered.")
	viewerCommand := defineStringFlagCommand(flagCommand, "viewer", "", "", "Program used to open the preview. The tool waits for it to exit before writing the output.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of las_voxelizer.")

	if err := flagCommand.parse(args); err != nil {
		return FlagsForCommandVoxelize{}, err
	}

	return FlagsForCommandVoxelize{
		Config:         configPath,
		Input:          input,
		Output:         output,
		Fraction:       fraction,
		VoxelSize:      voxelSize,
		Seed:           seed,
		EightBitColors: eightBit,
		Srid:           srid,
		TargetSrid:     targetSrid,
		LaszipPath:     laszipPath,
		Visualize:      visualize,
		PreviewPath:    previewPath,
		ViewerCommand:  viewerCommand,
		Silent:         silent,
		LogTimestamp:   logTimestamp,
		Help:           help,
		Version:        version,
		flagCommand:    flagCommand,
	}, nil
}

// Reports whether the flag, given by its long name, was passed on the command line
func (flags *FlagsForCommandVoxelize) IsSet(name string) bool {
	return flags.flagCommand.isSet(name)
}

func (flags *FlagsForCommandVoxelize) PrintDefaults(w io.Writer) {
	flags.flagCommand.printDefaults(w)
}

// Copies the flags explicitly passed on the command line into the options
func (flags *FlagsForCommandVoxelize) ApplyTo(opts *voxelizer.VoxelizerOptions) {
	if flags.IsSet("input") {
		opts.Input = *flags.Input
	}
	if flags.IsSet("output") {
		opts.Output = *flags.Output
	}
	if flags.IsSet("fraction") {
		opts.Fraction = *flags.Fraction
	}
	if flags.IsSet("voxel-size") {
		opts.VoxelSize = *flags.VoxelSize
	}
	if flags.IsSet("seed") {
		opts.Seed = *flags.Seed
	}
	if flags.IsSet("8bit") {
		opts.EightBitColors = *flags.EightBitColors
	}
	if flags.IsSet("srid") {
		opts.Srid = *flags.Srid
	}
	if flags.IsSet("target-srid") {
		opts.TargetSrid = *flags.TargetSrid
	}
	if flags.IsSet("laszip") {
		opts.LaszipPath = *flags.LaszipPath
	}
	if flags.IsSet("visualize") {
		opts.Visualize = *flags.Visualize
	}
	if flags.IsSet("preview") {
		opts.PreviewPath = *flags.PreviewPath
	}
	if flags.IsSet("viewer") {
		opts.ViewerCommand = *flags.ViewerCommand
	}
}

func ParseFlagsForCommandInspect(args []string) (FlagsForCommandInspect, error) {
	flagCommand := newCommandFlagSet("command-inspect")

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the ply file to inspect.")
	index := defineIntFlagCommand(flagCommand, "index", "", 0, "Index of the point to inspect.")
	x := defineFloat64FlagCommand(flagCommand, "x", "", 0, "X of the point to inspect. When x or y are given the nearest point in XY is inspected.")
	y := defineFloat64FlagCommand(flagCommand, "y", "", 0, "Y of the point to inspect. When x or y are given the nearest point in XY is inspected.")
	srid := defineIntFlagCommand(flagCommand, "srid", "e", voxelizer.DefaultSrid, "EPSG srid code of the ply points.")
	targetSrid := defineIntFlagCommand(flagCommand, "target-srid", "", voxelizer.DefaultTargetSrid, "EPSG srid code used to report the point position.")
	zOffset := defineFloat64FlagCommand(flagCommand, "zoffset", "z", voxelizer.DefaultInspectOffset, "Vertical offset added to the reported height, in meters.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	if err := flagCommand.parse(args); err != nil {
		return FlagsForCommandInspect{}, err
	}

	return FlagsForCommandInspect{
		Input:       input,
		Index:       index,
		X:           x,
		Y:           y,
		Srid:        srid,
		TargetSrid:  targetSrid,
		ZOffset:     zOffset,
		Help:        help,
		flagCommand: flagCommand,
	}, nil
}

func (flags *FlagsForCommandInspect) IsSet(name string) bool {
	return flags.flagCommand.isSet(name)
}

func (flags *FlagsForCommandInspect) PrintDefaults(w io.Writer) {
	flags.flagCommand.printDefaults(w)
}

// Builds the options of the inspect command. Passing x or y switches the lookup from index to position.
func (flags *FlagsForCommandInspect) ToOptions() *voxelizer.VoxelizerOptions {
	inspectOpts := &voxelizer.InspectOptions{
		Index:      *flags.Index,
		X:          *flags.X,
		Y:          *flags.Y,
		ZOffset:    *flags.ZOffset,
		TargetSrid: *flags.TargetSrid,
	}
	if flags.IsSet("x") || flags.IsSet("y") {
		inspectOpts.Index = -1
	}

	return &voxelizer.VoxelizerOptions{
		Input:          *flags.Input,
		Srid:           *flags.Srid,
		TargetSrid:     *flags.TargetSrid,
		Command:        voxelizer.CommandInspect,
		InspectOptions: inspectOpts,
	}
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *commandFlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		flagCommand.longNames[shortHand] = name
	}

	return &output
}

func defineIntFlagCommand(flagCommand *commandFlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		flagCommand.longNames[shortHand] = name
	}

	return &output
}

func defineInt64FlagCommand(flagCommand *commandFlagSet, name string, shortHand string, defaultValue int64, usage string) *int64 {
	var output int64
	flagCommand.Int64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Int64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		flagCommand.longNames[shortHand] = name
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *commandFlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		flagCommand.longNames[shortHand] = name
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *commandFlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
		flagCommand.longNames[shortHand] = name
	}
	return &output
}
