// Package ply decodes PLY triangle-mesh files (ASCII and binary
// little-endian) into scene.Mesh assets. Faces must be triangular;
// optional per-vertex normals, colors, and texture coordinates are
// carried through when present.
package ply

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"scene-manager/core/registry"
	"scene-manager/scene"
)

const (
	formatASCII    = "ascii"
	formatBinaryLE = "binary_little_endian"
	formatBinaryBE = "binary_big_endian"
)

// Loader decodes one PLY file.
type Loader struct{}

// New returns a PLY loader.
func New() registry.Loader { return &Loader{} }

// property is one property declaration from the header.
type property struct {
	name     string
	typ      string
	isList   bool
	listType string // count type for list properties
	dataType string // element type for list properties
}

// header is the parsed PLY header.
type header struct {
	format      string
	vertexCount int
	faceCount   int
	vertexProps []property
	faceProps   []property
}

// Load implements registry.Loader.
func (l *Loader) Load(ctx context.Context, src *registry.Source) (scene.Asset, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY source: %w", err)
	}
	defer rc.Close()

	r := bufio.NewReaderSize(rc, 1<<20)

	hdr, err := parseHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	mesh := &scene.Mesh{Name: meshName(src)}

	switch hdr.format {
	case formatASCII:
		err = readASCII(ctx, r, hdr, mesh)
	case formatBinaryLE:
		err = readBinaryLE(ctx, r, hdr, mesh)
	case formatBinaryBE:
		return nil, fmt.Errorf("binary big-endian PLY is not supported")
	default:
		return nil, fmt.Errorf("unsupported PLY format %q", hdr.format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY body: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

func meshName(src *registry.Source) string {
	if src.Path == "" {
		return ""
	}
	base := filepath.Base(src.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseHeader reads lines up to end_header. The reader is left
// positioned at the first byte of the body.
func parseHeader(r *bufio.Reader) (*header, error) {
	magic, err := readHeaderLine(r)
	if err != nil {
		return nil, err
	}
	if magic != "ply" {
		return nil, fmt.Errorf("not a PLY file (magic %q)", magic)
	}

	hdr := &header{}
	currentElement := ""
	for {
		line, err := readHeaderLine(r)
		if err != nil {
			return nil, err
		}
		if line == "end_header" {
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "comment", "obj_info":
			// Ignored.
		case "format":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed format line %q", line)
			}
			hdr.format = fields[1]
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line %q", line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count %q", fields[2])
			}
			currentElement = fields[1]
			switch currentElement {
			case "vertex":
				hdr.vertexCount = count
			case "face":
				hdr.faceCount = count
			}
		case "property":
			prop, err := parseProperty(fields[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				if prop.isList {
					return nil, fmt.Errorf("list property %q on vertex element is not supported", prop.name)
				}
				hdr.vertexProps = append(hdr.vertexProps, prop)
			case "face":
				hdr.faceProps = append(hdr.faceProps, prop)
			}
		}
	}

	if hdr.format == "" {
		return nil, fmt.Errorf("header has no format line")
	}
	return hdr, nil
}

func readHeaderLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("unexpected end of header")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parseProperty(fields []string) (property, error) {
	if len(fields) < 2 {
		return property{}, fmt.Errorf("malformed property declaration")
	}
	if fields[0] == "list" {
		if len(fields) < 4 {
			return property{}, fmt.Errorf("malformed list property declaration")
		}
		return property{
			name:     fields[3],
			isList:   true,
			listType: fields[1],
			dataType: fields[2],
		}, nil
	}
	return property{name: fields[1], typ: fields[0]}, nil
}

// vertexAttrs collects per-vertex values while reading the body.
type vertexAttrs struct {
	pos      scene.Vec3
	normal   scene.Vec3
	color    scene.Vec3
	uv       scene.Vec2
	hasNorm  bool
	hasColor bool
	hasUV    bool
}

func (a *vertexAttrs) set(name string, value float64) {
	switch name {
	case "x":
		a.pos[0] = value
	case "y":
		a.pos[1] = value
	case "z":
		a.pos[2] = value
	case "nx":
		a.normal[0], a.hasNorm = value, true
	case "ny":
		a.normal[1], a.hasNorm = value, true
	case "nz":
		a.normal[2], a.hasNorm = value, true
	case "red", "r":
		a.color[0], a.hasColor = value/255, true
	case "green", "g":
		a.color[1], a.hasColor = value/255, true
	case "blue", "b":
		a.color[2], a.hasColor = value/255, true
	case "u", "s", "texture_u":
		a.uv[0], a.hasUV = value, true
	case "v", "t", "texture_v":
		a.uv[1], a.hasUV = value, true
	}
}

func appendVertex(mesh *scene.Mesh, a *vertexAttrs) {
	mesh.Positions = append(mesh.Positions, a.pos)
	if a.hasNorm {
		mesh.Normals = append(mesh.Normals, a.normal)
	}
	if a.hasColor {
		mesh.Colors = append(mesh.Colors, a.color)
	}
	if a.hasUV {
		mesh.UVs = append(mesh.UVs, a.uv)
	}
}

func readASCII(ctx context.Context, r *bufio.Reader, hdr *header, mesh *scene.Mesh) error {
	mesh.Positions = make([]scene.Vec3, 0, hdr.vertexCount)
	mesh.Indices = make([]int, 0, hdr.faceCount*3)

	for i := 0; i < hdr.vertexCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields, err := readBodyLine(r)
		if err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
		if len(fields) < len(hdr.vertexProps) {
			return fmt.Errorf("vertex %d has %d values, expected %d", i, len(fields), len(hdr.vertexProps))
		}
		attrs := &vertexAttrs{}
		for j, prop := range hdr.vertexProps {
			value, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return fmt.Errorf("vertex %d property %q: %w", i, prop.name, err)
			}
			attrs.set(prop.name, value)
		}
		appendVertex(mesh, attrs)
	}

	for i := 0; i < hdr.faceCount; i++ {
		fields, err := readBodyLine(r)
		if err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("face %d vertex count: %w", i, err)
		}
		if count != 3 {
			return fmt.Errorf("face %d has %d vertices, only triangles are supported", i, count)
		}
		if len(fields) < 4 {
			return fmt.Errorf("face %d is truncated", i)
		}
		for _, f := range fields[1:4] {
			idx, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("face %d index: %w", i, err)
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}
	return nil
}

func readBodyLine(r *bufio.Reader) ([]string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields, nil
		}
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
	}
}

func readBinaryLE(ctx context.Context, r *bufio.Reader, hdr *header, mesh *scene.Mesh) error {
	mesh.Positions = make([]scene.Vec3, 0, hdr.vertexCount)
	mesh.Indices = make([]int, 0, hdr.faceCount*3)

	for i := 0; i < hdr.vertexCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		attrs := &vertexAttrs{}
		for _, prop := range hdr.vertexProps {
			value, err := readScalar(r, prop.typ)
			if err != nil {
				return fmt.Errorf("vertex %d property %q: %w", i, prop.name, err)
			}
			attrs.set(prop.name, value)
		}
		appendVertex(mesh, attrs)
	}

	for i := 0; i < hdr.faceCount; i++ {
		for _, prop := range hdr.faceProps {
			if prop.isList && (prop.name == "vertex_indices" || prop.name == "vertex_index") {
				count, err := readScalar(r, prop.listType)
				if err != nil {
					return fmt.Errorf("face %d vertex count: %w", i, err)
				}
				if int(count) != 3 {
					return fmt.Errorf("face %d has %d vertices, only triangles are supported", i, int(count))
				}
				for k := 0; k < 3; k++ {
					idx, err := readScalar(r, prop.dataType)
					if err != nil {
						return fmt.Errorf("face %d index %d: %w", i, k, err)
					}
					mesh.Indices = append(mesh.Indices, int(idx))
				}
				continue
			}
			if err := skipProperty(r, prop); err != nil {
				return fmt.Errorf("face %d property %q: %w", i, prop.name, err)
			}
		}
	}
	return nil
}

// readScalar reads one little-endian scalar of the named PLY type and
// widens it to float64.
func readScalar(r io.Reader, typ string) (float64, error) {
	size := typeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("unsupported PLY type %q", typ)
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, err
	}
	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(binary.LittleEndian.Uint16(buf[:2]))), nil
	case "ushort", "uint16":
		return float64(binary.LittleEndian.Uint16(buf[:2])), nil
	case "int", "int32":
		return float64(int32(binary.LittleEndian.Uint32(buf[:4]))), nil
	case "uint", "uint32":
		return float64(binary.LittleEndian.Uint32(buf[:4])), nil
	case "float", "float32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[:4]))), nil
	case "double", "float64":
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[:8])), nil
	default:
		return 0, fmt.Errorf("unsupported PLY type %q", typ)
	}
}

func skipProperty(r *bufio.Reader, prop property) error {
	if !prop.isList {
		_, err := readScalar(r, prop.typ)
		return err
	}
	count, err := readScalar(r, prop.listType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := readScalar(r, prop.dataType); err != nil {
			return err
		}
	}
	return nil
}

func typeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
