// Package lasread loads LAS and LAZ point clouds into memory.
package lasread

import (
	"path/filepath"
	"strings"

	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Notice logged when the source has no red/green/blue attributes
const NoColorNotice = "No color information found in the LAS file."

// Loads a point cloud file into memory
type Loader interface {
	LoadLasFile(filePath string) (*data.RawCloud, error)
}

// An opened point cloud file
type pointSource interface {
	NumberOfPoints() int
	HasColor() bool
	Point(i int) (r3.Vector, data.RawColor, error)
	Close() error
}

type LasFileLoader struct {
	decompressor *LazDecompressor
	open         func(filePath string) (pointSource, error)
	warn         func(args ...interface{})
}

func NewLasFileLoader(decompressor *LazDecompressor) *LasFileLoader {
	return &LasFileLoader{
		decompressor: decompressor,
		open:         openLidarioSource,
		warn:         glog.Warningln,
	}
}

// Reads all the points of a LAS or LAZ file. Colors are loaded only if the point format declares them,
// otherwise the returned cloud has no colors and a notice is logged.
func (l *LasFileLoader) LoadLasFile(filePath string) (cloud *data.RawCloud, err error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".las":
	case ".laz":
		lasPath, cleanup, err := l.decompressor.Decompress(filePath)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		filePath = lasPath
	default:
		return nil, errors.Errorf("do not know how to read file %q", filePath)
	}

	source, err := l.open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filePath)
	}
	defer func() {
		err = multierr.Combine(err, source.Close())
	}()

	return l.readPoints(source)
}

func (l *LasFileLoader) readPoints(source pointSource) (*data.RawCloud, error) {
	numberOfPoints := source.NumberOfPoints()
	hasColor := source.HasColor()

	cloud := &data.RawCloud{
		Positions: make([]r3.Vector, numberOfPoints),
	}
	if hasColor {
		cloud.RawColors = make([]data.RawColor, numberOfPoints)
	} else {
		l.warn(NoColorNotice)
	}

	for i := 0; i < numberOfPoints; i++ {
		position, rgb, err := source.Point(i)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read point %d", i)
		}
		cloud.Positions[i] = position
		if hasColor {
			cloud.RawColors[i] = rgb
		}
	}

	glog.Infof("loaded %d points, color: %v", numberOfPoints, hasColor)
	return cloud, nil
}

type lidarioSource struct {
	lasFile *lidario.LasFile
}

// Shortest point record of each point format lidario can decode, intensity and user data omitted
var minPointRecordLengths = map[byte]int{0: 17, 1: 25, 2: 23, 3: 31}

func openLidarioSource(filePath string) (pointSource, error) {
	if err := checkLasHeader(filePath); err != nil {
		return nil, err
	}

	lf, err := lidario.NewLasFile(filePath, "r")
	if err != nil {
		if lf != nil {
			_ = lf.Close()
		}
		return nil, err
	}
	return &lidarioSource{lasFile: lf}, nil
}

// Reads only the header, so that files lidario cannot decode are rejected before their points are read
func checkLasHeader(filePath string) (err error) {
	lf, err := lidario.NewLasFile(filePath, "rh")
	if err != nil {
		if lf != nil {
			_ = lf.Close()
		}
		return err
	}
	defer func() {
		err = multierr.Combine(err, lf.Close())
	}()

	return checkPointFormat(lf.Header.PointFormatID, lf.Header.PointRecordLength)
}

// Only the LAS 1.0-1.3 point formats 0 to 3 are supported
func checkPointFormat(format byte, recordLength int) error {
	minLength, ok := minPointRecordLengths[format]
	if !ok {
		return errors.Errorf("unsupported LAS point format %d", format)
	}
	if recordLength < minLength {
		return errors.Errorf("point record length %d too short for point format %d", recordLength, format)
	}
	return nil
}

func (s *lidarioSource) NumberOfPoints() int {
	return s.lasFile.Header.NumberPoints
}

// Point formats 2 and 3 carry red, green and blue
func (s *lidarioSource) HasColor() bool {
	format := s.lasFile.Header.PointFormatID
	return format == 2 || format == 3
}

func (s *lidarioSource) Point(i int) (r3.Vector, data.RawColor, error) {
	p, err := s.lasFile.LasPoint(i)
	if err != nil {
		return r3.Vector{}, data.RawColor{}, err
	}

	pointData := p.PointData()
	position := r3.Vector{X: pointData.X, Y: pointData.Y, Z: pointData.Z}

	var rgb data.RawColor
	if s.HasColor() && p.RgbData() != nil {
		rgb = data.RawColor{R: p.RgbData().Red, G: p.RgbData().Green, B: p.RgbData().Blue}
	}

	return position, rgb, nil
}

func (s *lidarioSource) Close() error {
	return s.lasFile.Close()
}
