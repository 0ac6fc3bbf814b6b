package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
)

// Options of the voxelize command as read from a YAML file. Keys missing from the file are nil
// and leave the corresponding option untouched.
type Config struct {
	Input          *string  `yaml:"input,omitempty"`
	Output         *string  `yaml:"output,omitempty"`
	Fraction       *float64 `yaml:"fraction,omitempty"`
	VoxelSize      *float64 `yaml:"voxel_size,omitempty"`
	Seed           *int64   `yaml:"seed,omitempty"`
	EightBitColors *bool    `yaml:"eight_bit_colors,omitempty"`
	Srid           *int     `yaml:"srid,omitempty"`
	TargetSrid     *int     `yaml:"target_srid,omitempty"`
	LaszipPath     *string  `yaml:"laszip_path,omitempty"`
	Visualize      *bool    `yaml:"visualize,omitempty"`
	PreviewPath    *string  `yaml:"preview_path,omitempty"`
	ViewerCommand  *string  `yaml:"viewer_command,omitempty"`
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("config file not found: %s", path)
		}
		return nil, errors.Wrap(err, "reading config file")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "parsing config YAML")
	}

	return &config, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshaling config YAML")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}

// Builds a config holding every value of the given options
func FromOptions(opts *voxelizer.VoxelizerOptions) *Config {
	o := opts.Copy()
	return &Config{
		Input:          &o.Input,
		Output:         &o.Output,
		Fraction:       &o.Fraction,
		VoxelSize:      &o.VoxelSize,
		Seed:           &o.Seed,
		EightBitColors: &o.EightBitColors,
		Srid:           &o.Srid,
		TargetSrid:     &o.TargetSrid,
		LaszipPath:     &o.LaszipPath,
		Visualize:      &o.Visualize,
		PreviewPath:    &o.PreviewPath,
		ViewerCommand:  &o.ViewerCommand,
	}
}

// Overwrites the options with the values present in the config
func (c *Config) ApplyTo(opts *voxelizer.VoxelizerOptions) {
	if c.Input != nil {
		opts.Input = *c.Input
	}
	if c.Output != nil {
		opts.Output = *c.Output
	}
	if c.Fraction != nil {
		opts.Fraction = *c.Fraction
	}
	if c.VoxelSize != nil {
		opts.VoxelSize = *c.VoxelSize
	}
	if c.Seed != nil {
		opts.Seed = *c.Seed
	}
	if c.EightBitColors != nil {
		opts.EightBitColors = *c.EightBitColors
	}
	if c.Srid != nil {
		opts.Srid = *c.Srid
	}
	if c.TargetSrid != nil {
		opts.TargetSrid = *c.TargetSrid
	}
	if c.LaszipPath != nil {
		opts.LaszipPath = *c.LaszipPath
	}
	if c.Visualize != nil {
		opts.Visualize = *c.Visualize
	}
	if c.PreviewPath != nil {
		opts.PreviewPath = *c.PreviewPath
	}
	if c.ViewerCommand != nil {
		opts.ViewerCommand = *c.ViewerCommand
	}
}
