package io

import (
	"bufio"
	"encoding/binary"
	goio "io"
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Writes the cloud to a binary little endian PLY file, replacing the file if it exists.
// Positions are stored as doubles, colors, if any, as red/green/blue uchar.
func WritePlyFile(filePath string, cloud *data.Cloud, comments ...string) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", filePath)
	}
	defer func() {
		err = multierr.Combine(err, file.Close())
	}()

	return WritePly(file, cloud, comments...)
}

func WritePly(w goio.Writer, cloud *data.Cloud, comments ...string) error {
	out := bufio.NewWriter(w)

	header := &plyHeader{
		format:      PlyBinaryLittleEndian,
		comments:    comments,
		numVertices: cloud.Len(),
		properties: []plyProperty{
			{name: "x", dataType: "double"},
			{name: "y", dataType: "double"},
			{name: "z", dataType: "double"},
		},
	}
	vertexSize := 24
	if cloud.HasColor() {
		header.properties = append(header.properties,
			plyProperty{name: "red", dataType: "uchar"},
			plyProperty{name: "green", dataType: "uchar"},
			plyProperty{name: "blue", dataType: "uchar"},
		)
		vertexSize += 3
	}

	if err := writePlyHeader(out, header); err != nil {
		return err
	}

	buf := make([]byte, vertexSize)
	for i, p := range cloud.Positions {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(p.Z))
		if cloud.HasColor() {
			c := cloud.Colors[i]
			buf[24] = ColorToUint8(c.R)
			buf[25] = ColorToUint8(c.G)
			buf[26] = ColorToUint8(c.B)
		}
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}

	return out.Flush()
}

// Converts a [0,1] channel to the 0-255 range
func ColorToUint8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
