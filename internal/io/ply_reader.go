package io

import (
	"bufio"
	"encoding/binary"
	goio "io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Reads the vertices of a PLY file. Colors are loaded if the vertex has red, green and blue properties.
func ReadPlyFile(filePath string) (*data.Cloud, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadPly(file)
}

func ReadPly(r goio.Reader) (*data.Cloud, error) {
	in := bufio.NewReader(r)
	header, err := readPlyHeader(in)
	if err != nil {
		return nil, err
	}

	switch header.format {
	case PlyAscii:
		return readPlyAscii(in, header)
	case PlyBinaryLittleEndian:
		return readPlyBinary(in, header, binary.LittleEndian)
	default:
		return readPlyBinary(in, header, binary.BigEndian)
	}
}

func readPlyAscii(in *bufio.Reader, header *plyHeader) (*data.Cloud, error) {
	cloud := data.NewCloud(header.initialCapacity(), header.hasColor())
	values := make([]float64, len(header.properties))

	for i := 0; i < header.numVertices; i++ {
		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, goio.EOF) && line != "") {
			return nil, errors.Wrapf(err, "error reading vertex %d", i)
		}
		tokens := strings.Fields(line)
		if len(tokens) != len(header.properties) {
			return nil, errors.Errorf("unexpected number of fields in vertex %d", i)
		}
		for j, token := range tokens {
			values[j], err = strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, errors.Errorf("invalid vertex %d field %s", i, token)
			}
		}
		appendVertex(cloud, header, values)
	}

	return cloud, nil
}

func readPlyBinary(in *bufio.Reader, header *plyHeader, order binary.ByteOrder) (*data.Cloud, error) {
	sizes := make([]int, len(header.properties))
	vertexSize := 0
	for i, p := range header.properties {
		size, err := p.size()
		if err != nil {
			return nil, err
		}
		sizes[i] = size
		vertexSize += size
	}

	cloud := data.NewCloud(header.initialCapacity(), header.hasColor())
	values := make([]float64, len(header.properties))
	buf := make([]byte, vertexSize)

	for i := 0; i < header.numVertices; i++ {
		if _, err := goio.ReadFull(in, buf); err != nil {
			return nil, errors.Wrapf(err, "error reading vertex %d", i)
		}
		offset := 0
		for j, p := range header.properties {
			values[j] = decodeBinaryValue(buf[offset:offset+sizes[j]], p.dataType, order)
			offset += sizes[j]
		}
		appendVertex(cloud, header, values)
	}

	return cloud, nil
}

func decodeBinaryValue(b []byte, dataType string, order binary.ByteOrder) float64 {
	switch dataType {
	case "char", "int8":
		return float64(int8(b[0]))
	case "uchar", "uint8":
		return float64(b[0])
	case "short", "int16":
		return float64(int16(order.Uint16(b)))
	case "ushort", "uint16":
		return float64(order.Uint16(b))
	case "int", "int32":
		return float64(int32(order.Uint32(b)))
	case "uint", "uint32":
		return float64(order.Uint32(b))
	case "float", "float32":
		return float64(math.Float32frombits(order.Uint32(b)))
	default:
		return math.Float64frombits(order.Uint64(b))
	}
}

func appendVertex(cloud *data.Cloud, header *plyHeader, values []float64) {
	position := r3.Vector{
		X: values[header.propertyIndex("x")],
		Y: values[header.propertyIndex("y")],
		Z: values[header.propertyIndex("z")],
	}
	var c data.Color
	if cloud.HasColor() {
		c = data.Color{
			R: values[header.propertyIndex("red")] / 255,
			G: values[header.propertyIndex("green")] / 255,
			B: values[header.propertyIndex("blue")] / 255,
		}
	}
	cloud.Append(position, c)
}
