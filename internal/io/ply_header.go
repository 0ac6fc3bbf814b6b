package io

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type PlyFormat string

const (
	PlyAscii              PlyFormat = "ascii"
	PlyBinaryLittleEndian PlyFormat = "binary_little_endian"
	PlyBinaryBigEndian    PlyFormat = "binary_big_endian"
)

const plyVertexElement = "vertex"

// Upper bound of the vertices preallocated from the header count, larger clouds grow while being read
const maxPreallocatedVertices = 1 << 20

// A comment ends at the first line break
var plyCommentReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// A scalar property of the vertex element
type plyProperty struct {
	name     string
	dataType string
}

// size in bytes of the property in binary formats
func (p plyProperty) size() (int, error) {
	switch p.dataType {
	case "char", "int8", "uchar", "uint8":
		return 1, nil
	case "short", "int16", "ushort", "uint16":
		return 2, nil
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4, nil
	case "double", "float64":
		return 8, nil
	}
	return 0, errors.Errorf("unsupported ply property type %q", p.dataType)
}

type plyHeader struct {
	format      PlyFormat
	comments    []string
	numVertices int
	properties  []plyProperty
}

func (h *plyHeader) propertyIndex(name string) int {
	for i, p := range h.properties {
		if p.name == name {
			return i
		}
	}
	return -1
}

func (h *plyHeader) initialCapacity() int {
	if h.numVertices > maxPreallocatedVertices {
		return maxPreallocatedVertices
	}
	return h.numVertices
}

func (h *plyHeader) hasColor() bool {
	return h.propertyIndex("red") >= 0 && h.propertyIndex("green") >= 0 && h.propertyIndex("blue") >= 0
}

func writePlyHeader(out *bufio.Writer, h *plyHeader) error {
	lines := []string{"ply", fmt.Sprintf("format %s 1.0", h.format)}
	for _, c := range h.comments {
		lines = append(lines, "comment "+plyCommentReplacer.Replace(c))
	}
	lines = append(lines, fmt.Sprintf("element %s %d", plyVertexElement, h.numVertices))
	for _, p := range h.properties {
		lines = append(lines, fmt.Sprintf("property %s %s", p.dataType, p.name))
	}
	lines = append(lines, "end_header")

	for _, line := range lines {
		if _, err := out.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func readPlyHeader(in *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := in.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("not a ply file")
	}

	currentElement := ""
	for {
		line, err := in.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(err, "error reading ply header")
		}
		line = strings.TrimSpace(line)
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		switch tokens[0] {
		case "format":
			if len(tokens) != 3 {
				return nil, errors.Errorf("invalid format line %q", line)
			}
			header.format = PlyFormat(tokens[1])
			if header.format != PlyAscii && header.format != PlyBinaryLittleEndian && header.format != PlyBinaryBigEndian {
				return nil, errors.Errorf("unsupported ply format %s", tokens[1])
			}
		case "comment", "obj_info":
			header.comments = append(header.comments, strings.TrimSpace(strings.TrimPrefix(line, tokens[0])))
		case "element":
			if len(tokens) != 3 {
				return nil, errors.Errorf("invalid element line %q", line)
			}
			currentElement = tokens[1]
			if currentElement == plyVertexElement {
				header.numVertices, err = strconv.Atoi(tokens[2])
				if err != nil || header.numVertices < 0 {
					return nil, errors.Errorf("invalid vertex count %s", tokens[2])
				}
			}
		case "property":
			if currentElement != plyVertexElement {
				continue
			}
			if len(tokens) != 3 {
				return nil, errors.Errorf("unsupported property line %q", line)
			}
			header.properties = append(header.properties, plyProperty{dataType: tokens[1], name: tokens[2]})
		case "end_header":
			if header.format == "" {
				return nil, errors.New("ply header has no format line")
			}
			for _, name := range []string{"x", "y", "z"} {
				if header.propertyIndex(name) < 0 {
					return nil, errors.Errorf("ply vertex has no %s property", name)
				}
			}
			return header, nil
		default:
			return nil, errors.Errorf("unexpected ply header line %q", line)
		}
	}
}
